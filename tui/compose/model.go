package compose

import (
	"fmt"
	"os/exec"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/espectro-app/espectro/domain"
)

// --- Mode ---

type mode int

const (
	editorMode mode = iota
	inlineMode
)

// --- Messages ---

// DoneMsg is sent when composing is complete (success or cancel).
type DoneMsg struct {
	Body string // Empty if cancelled
	Err  error
}

// editorFinishedMsg is sent after the external editor exits.
type editorFinishedMsg struct {
	tmpPath string
	err     error
}

// Editor prepares and reads back an external editor session.
type Editor interface {
	Cmd(draft, title string) (*exec.Cmd, string, error)
	ReadContent(path string) (string, error)
}

// --- Model ---

// Model holds the state of the comment composer.
type Model struct {
	mode     mode
	editor   Editor
	title    string // what is being commented on
	status   string
	textarea textarea.Model // Only used in inline mode
}

// NewEditor creates a composer that opens $EDITOR via tea.ExecProcess.
func NewEditor(ed Editor, title string) Model {
	return Model{
		mode:   editorMode,
		editor: ed,
		title:  title,
		status: "Opening editor...",
	}
}

// NewInline creates a composer with an inline textarea.
func NewInline(title string) Model {
	ta := textarea.New()
	ta.Placeholder = "Share your experience..."
	ta.CharLimit = domain.MaxCommentLength
	ta.SetWidth(72)
	ta.SetHeight(5)
	ta.Focus()

	return Model{
		mode:     inlineMode,
		title:    title,
		textarea: ta,
	}
}

// Init returns the initial command for the active mode.
func (m Model) Init() tea.Cmd {
	switch m.mode {
	case editorMode:
		return m.launchEditor()
	case inlineMode:
		return textarea.Blink
	}
	return nil
}

func (m Model) launchEditor() tea.Cmd {
	cmd, tmpPath, err := m.editor.Cmd("", m.title)
	if err != nil {
		return done(DoneMsg{Err: fmt.Errorf("preparing editor: %w", err)})
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{tmpPath: tmpPath, err: err}
	})
}

// Update handles messages for the composer.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case editorFinishedMsg:
		if msg.err != nil {
			return m, done(DoneMsg{Err: fmt.Errorf("editor: %w", msg.err)})
		}
		body, err := m.editor.ReadContent(msg.tmpPath)
		if err != nil {
			return m, done(DoneMsg{Err: err})
		}
		return m, done(DoneMsg{Body: body})

	case tea.KeyMsg:
		if m.mode != inlineMode {
			break
		}
		switch msg.String() {
		case "esc":
			return m, done(DoneMsg{})
		case "ctrl+d":
			return m, done(DoneMsg{Body: m.textarea.Value()})
		}
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}

	if m.mode == inlineMode {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}
	return m, nil
}

// done wraps a DoneMsg into a tea.Cmd for immediate delivery.
func done(msg DoneMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}
