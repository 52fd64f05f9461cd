package profiles

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/espectro-app/espectro/app"
	"github.com/espectro-app/espectro/domain"
	"github.com/espectro-app/espectro/interaction"
	"github.com/espectro-app/espectro/tui/common"
)

type loadedMsg struct {
	profiles []domain.AutismProfile
	err      error
}

type deletedMsg struct {
	id  string
	err error
}

// editMsg carries a freshly fetched profile to open in the editor.
type editMsg struct {
	profile domain.AutismProfile
	err     error
}

type savedMsg struct {
	profile domain.AutismProfile
	err     error
}

// Model lists the autism profiles the user manages.
type Model struct {
	svc     app.ProfileService
	notices interaction.Notifier
	logger  *zap.Logger
	keys    common.KeyMap
	spinner spinner.Model

	profiles   []domain.AutismProfile
	err        error
	loading    bool
	cursor     int
	expanded   string // ID of the profile showing every field
	confirming string // ID awaiting delete confirmation
	editing    bool
	form       form
	width      int
	now        func() time.Time
}

// New creates the profiles pane.
func New(svc app.ProfileService, notices interaction.Notifier, logger *zap.Logger) Model {
	if notices == nil {
		notices = interaction.NotifierFunc(func(interaction.Notice) {})
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	return Model{
		svc:     svc,
		notices: notices,
		logger:  logger.With(zap.String("view", "profiles")),
		keys:    common.DefaultKeyMap(),
		spinner: s,
		loading: true,
		width:   80,
		now:     time.Now,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.Mount())
}

// Remount refetches the list and shows the spinner until it lands.
func (m Model) Remount() (tea.Model, tea.Cmd) {
	m.loading = true
	return m, tea.Batch(m.spinner.Tick, m.Mount())
}

// Mount refetches the list.
func (m Model) Mount() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		list, err := svc.List(context.Background())
		return loadedMsg{profiles: list, err: err}
	}
}

func (m Model) remove(id string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		return deletedMsg{id: id, err: svc.Delete(context.Background(), id)}
	}
}

func (m Model) edit(id string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		p, err := svc.Get(context.Background(), id)
		return editMsg{profile: p, err: err}
	}
}

func (m Model) save() (tea.Model, tea.Cmd) {
	p, errs := m.form.check(m.now())
	m.form.errs = errs
	if len(errs) > 0 {
		m.notices.Notify(interaction.Notice{Level: interaction.LevelError, Text: "Check the highlighted fields."})
		return m, nil
	}
	m.form.saving = true
	svc, creating := m.svc, m.form.creating()
	return m, func() tea.Msg {
		var (
			saved domain.AutismProfile
			err   error
		)
		if creating {
			saved, err = svc.Create(context.Background(), p)
		} else {
			saved, err = svc.Update(context.Background(), p)
		}
		return savedMsg{profile: saved, err: err}
	}
}

// Capturing reports whether typed keys belong to the pane: a delete
// confirmation or the profile editor.
func (m Model) Capturing() bool { return m.confirming != "" || m.editing }

// ShortHelp lists the keys the pane answers to.
func (m Model) ShortHelp() []key.Binding {
	if m.editing {
		return []key.Binding{m.keys.Save, m.keys.Back}
	}
	return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Open, m.keys.New, m.keys.Edit, m.keys.Delete, m.keys.Refresh}
}

// Editing reports whether the profile editor is open.
func (m Model) Editing() bool { return m.editing }

// Profiles returns the loaded profiles.
func (m Model) Profiles() []domain.AutismProfile { return m.profiles }

// Expanded returns the ID of the expanded profile, if any.
func (m Model) Expanded() string { return m.expanded }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadedMsg:
		m.loading = false
		m.profiles, m.err = msg.profiles, msg.err
		if msg.err != nil {
			m.logger.Error("load profiles", zap.Error(msg.err))
			m.notices.Notify(interaction.Notice{Level: interaction.LevelError, Text: "Could not load profiles."})
		}
		m.cursor = min(m.cursor, max(0, len(m.profiles)-1))
		return m, nil

	case deletedMsg:
		if msg.err != nil {
			m.logger.Error("delete profile", zap.String("id", msg.id), zap.Error(msg.err))
			m.notices.Notify(interaction.Notice{Level: interaction.LevelError, Text: "Could not delete profile."})
			return m, nil
		}
		for i, p := range m.profiles {
			if p.ID == msg.id {
				m.profiles = append(m.profiles[:i:i], m.profiles[i+1:]...)
				break
			}
		}
		if m.expanded == msg.id {
			m.expanded = ""
		}
		m.cursor = min(m.cursor, max(0, len(m.profiles)-1))
		m.notices.Notify(interaction.Notice{Level: interaction.LevelInfo, Text: "Profile deleted."})
		return m, nil

	case editMsg:
		if msg.err != nil {
			m.logger.Error("load profile", zap.Error(msg.err))
			text := "Could not open profile."
			if errors.Is(msg.err, domain.ErrNotFound) {
				text = "This profile no longer exists."
			}
			m.notices.Notify(interaction.Notice{Level: interaction.LevelError, Text: text})
			return m, nil
		}
		m.editing = true
		m.form = newForm(msg.profile)
		return m, nil

	case savedMsg:
		m.form.saving = false
		if msg.err != nil {
			m.logger.Error("save profile", zap.Error(msg.err))
			mergeValidation(m.form.errs, msg.err)
			m.notices.Notify(interaction.Notice{Level: interaction.LevelError, Text: "Could not save profile."})
			return m, nil
		}
		m.editing = false
		m.upsert(msg.profile)
		m.notices.Notify(interaction.Notice{Level: interaction.LevelInfo, Text: "Profile saved."})
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateForm(msg)
		}
		return m.updateKey(msg)
	}
	return m, nil
}

// upsert replaces the profile with the same ID or appends it, and selects it.
func (m *Model) upsert(p domain.AutismProfile) {
	for i := range m.profiles {
		if m.profiles[i].ID == p.ID {
			m.profiles[i] = p
			m.cursor = i
			return
		}
	}
	m.profiles = append(m.profiles, p)
	m.cursor = len(m.profiles) - 1
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form.saving {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Back):
		m.editing = false
		return m, nil
	case key.Matches(msg, m.keys.Save):
		return m.save()
	case msg.Type == tea.KeyEnter && m.form.focus == fieldCount-1:
		return m.save()
	case msg.Type == tea.KeyTab, msg.Type == tea.KeyDown, msg.Type == tea.KeyEnter:
		m.form.move(1)
		return m, nil
	case msg.Type == tea.KeyShiftTab, msg.Type == tea.KeyUp:
		m.form.move(-1)
		return m, nil
	}
	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirming != "" {
		id := m.confirming
		m.confirming = ""
		if key.Matches(msg, m.keys.Confirm) {
			return m, m.remove(id)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Refresh):
		return m.Remount()
	case key.Matches(msg, m.keys.New):
		m.editing = true
		m.form = newForm(domain.AutismProfile{})
		return m, nil
	case len(m.profiles) == 0:
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.cursor = max(0, m.cursor-1)
	case key.Matches(msg, m.keys.Down):
		m.cursor = min(len(m.profiles)-1, m.cursor+1)
	case key.Matches(msg, m.keys.Open):
		id := m.profiles[m.cursor].ID
		if m.expanded == id {
			m.expanded = ""
		} else {
			m.expanded = id
		}
	case key.Matches(msg, m.keys.Back):
		m.expanded = ""
	case key.Matches(msg, m.keys.Edit):
		return m, m.edit(m.profiles[m.cursor].ID)
	case key.Matches(msg, m.keys.Delete):
		m.confirming = m.profiles[m.cursor].ID
	}
	return m, nil
}
