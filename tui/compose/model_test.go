package compose

import (
	"errors"
	"os"
	"os/exec"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeEditor struct {
	content string
	readErr error
	read    string
}

func (f *fakeEditor) Cmd(draft, title string) (*exec.Cmd, string, error) {
	return exec.Command("true"), "/tmp/espectro-comment-test", nil
}

func (f *fakeEditor) ReadContent(path string) (string, error) {
	f.read = path
	return f.content, f.readErr
}

func doneOf(t *testing.T, cmd tea.Cmd) DoneMsg {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	msg, ok := cmd().(DoneMsg)
	if !ok {
		t.Fatalf("expected DoneMsg")
	}
	return msg
}

func TestInline_SubmitAndCancel(t *testing.T) {
	m := NewInline("Visual schedules")
	for _, r := range "Helpful" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	if got := doneOf(t, cmd); got.Body != "Helpful" || got.Err != nil {
		t.Fatalf("unexpected submit: %#v", got)
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if got := doneOf(t, cmd); got.Body != "" {
		t.Fatalf("esc must cancel, got %#v", got)
	}
}

func TestEditor_ReadsBackContent(t *testing.T) {
	ed := &fakeEditor{content: "From vim"}
	m := NewEditor(ed, "Sensory bin")

	_, cmd := m.Update(editorFinishedMsg{tmpPath: "/tmp/x"})
	if got := doneOf(t, cmd); got.Body != "From vim" {
		t.Fatalf("unexpected body: %#v", got)
	}
	if ed.read != "/tmp/x" {
		t.Fatalf("expected temp file to be read, got %q", ed.read)
	}
}

func TestEditor_Failures(t *testing.T) {
	m := NewEditor(&fakeEditor{}, "x")
	_, cmd := m.Update(editorFinishedMsg{err: os.ErrNotExist})
	if got := doneOf(t, cmd); !errors.Is(got.Err, os.ErrNotExist) {
		t.Fatalf("expected editor error, got %#v", got)
	}

	m = NewEditor(&fakeEditor{readErr: errors.New("gone")}, "x")
	_, cmd = m.Update(editorFinishedMsg{tmpPath: "/tmp/x"})
	if got := doneOf(t, cmd); got.Err == nil {
		t.Fatalf("expected read error")
	}
}
