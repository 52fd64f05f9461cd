package detail

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/espectro-app/espectro/app"
	"github.com/espectro-app/espectro/domain"
	"github.com/espectro-app/espectro/interaction"
	"github.com/espectro-app/espectro/tui/common"
	"github.com/espectro-app/espectro/tui/compose"
)

// Config describes the item a detail view shows.
type Config[T domain.Content[T]] struct {
	ID           string
	Fetch        func(ctx context.Context) (T, error)
	Interactions app.InteractionService
	Comments     app.CommentService
	Editor       compose.Editor
	Notices      interaction.Notifier
	Logger       *zap.Logger
	Body         func(item T, width int, now time.Time) string
}

// BackMsg asks the root to close the detail view.
type BackMsg struct{}

type loadedMsg struct {
	id  string
	err error
}

type commentsMsg struct {
	id       string
	comments []domain.Comment
	err      error
}

type toggledMsg struct{ err error }

type commentPostedMsg struct {
	comment domain.Comment
	err     error
}

// Model shows one article or activity with its comments. Likes and favorites
// go through a single-item controller, so they follow the same rules as lists.
type Model[T domain.Content[T]] struct {
	cfg     Config[T]
	ref     domain.ContentRef
	ctrl    *interaction.Controller[T]
	keys    common.KeyMap
	spinner spinner.Model

	loading     bool
	comments    []domain.Comment
	commentsErr error
	composing   bool
	compose     compose.Model
	posting     bool
	width       int
	now         func() time.Time
}

// New creates a detail view. Init loads it.
func New[T domain.Content[T]](cfg Config[T]) Model[T] {
	if cfg.Notices == nil {
		cfg.Notices = interaction.NotifierFunc(func(interaction.Notice) {})
	}
	source := func(ctx context.Context) ([]T, error) {
		item, err := cfg.Fetch(ctx)
		if err != nil {
			return nil, err
		}
		return []T{item}, nil
	}
	ctrl := interaction.NewController(source, cfg.Interactions, cfg.Notices, cfg.Logger, interaction.WithName("item"))
	s := spinner.New()
	s.Spinner = spinner.Dot
	return Model[T]{
		cfg:     cfg,
		ref:     domain.RefFor(ctrl.Kind(), cfg.ID),
		ctrl:    ctrl,
		keys:    common.DefaultKeyMap(),
		spinner: s,
		loading: true,
		width:   80,
		now:     time.Now,
	}
}

// Init loads the item, memberships and comments.
func (m Model[T]) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.Mount(), m.loadComments())
}

// Mount reloads the item and memberships.
func (m Model[T]) Mount() tea.Cmd {
	ctrl, id := m.ctrl, m.cfg.ID
	return func() tea.Msg {
		return loadedMsg{id: id, err: ctrl.Mount(context.Background())}
	}
}

// Remount reloads the item, memberships and comments. Controls stay inert
// until the item lands.
func (m Model[T]) Remount() (tea.Model, tea.Cmd) {
	m.loading = true
	return m, tea.Batch(m.spinner.Tick, m.Mount(), m.loadComments())
}

func (m Model[T]) loadComments() tea.Cmd {
	svc, ref := m.cfg.Comments, m.ref
	return func() tea.Msg {
		list, err := svc.List(context.Background(), ref)
		return commentsMsg{id: ref.ID(), comments: list, err: err}
	}
}

func (m Model[T]) toggle(target interaction.Target) tea.Cmd {
	ctrl, id := m.ctrl, m.cfg.ID
	return func() tea.Msg {
		_, err := ctrl.HandleClick(context.Background(), interaction.Click{ItemID: id, Target: target})
		return toggledMsg{err: err}
	}
}

func (m Model[T]) postComment(body string) tea.Cmd {
	svc, ref := m.cfg.Comments, m.ref
	return func() tea.Msg {
		c, err := svc.Add(context.Background(), ref, body)
		return commentPostedMsg{comment: c, err: err}
	}
}

// Capturing reports whether typed keys belong to the composer.
func (m Model[T]) Capturing() bool { return m.composing }

// ShortHelp lists the keys the detail view answers to.
func (m Model[T]) ShortHelp() []key.Binding {
	if m.composing {
		return nil
	}
	return m.keys.DetailHelp()
}

// Controller exposes the single-item controller.
func (m Model[T]) Controller() *interaction.Controller[T] { return m.ctrl }

// Comments returns the loaded comments.
func (m Model[T]) Comments() []domain.Comment { return m.comments }

// Update handles messages for the detail view.
func (m Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		if msg.id != m.cfg.ID {
			return m, nil
		}
		m.loading = m.ctrl.Mounting()
		return m, nil

	case commentsMsg:
		if msg.id != m.cfg.ID {
			return m, nil
		}
		m.comments, m.commentsErr = msg.comments, msg.err
		return m, nil

	case toggledMsg:
		return m, nil

	case compose.DoneMsg:
		m.composing = false
		if msg.Err != nil {
			m.cfg.Notices.Notify(interaction.Notice{Level: interaction.LevelError, Text: "Could not open editor."})
			return m, nil
		}
		if strings.TrimSpace(msg.Body) == "" {
			return m, nil
		}
		m.posting = true
		return m, m.postComment(msg.Body)

	case commentPostedMsg:
		m.posting = false
		if msg.err != nil {
			m.cfg.Notices.Notify(interaction.Notice{Level: interaction.LevelError, Text: commentFailure(msg.err)})
			return m, nil
		}
		m.comments = append(m.comments, msg.comment)
		m.cfg.Notices.Notify(interaction.Notice{Level: interaction.LevelInfo, Text: "Comment posted."})
		return m, nil

	case tea.KeyMsg:
		if m.composing {
			var cmd tea.Cmd
			m.compose, cmd = m.compose.Update(msg)
			return m, cmd
		}
		return m.updateKey(msg)
	}

	if m.composing {
		var cmd tea.Cmd
		m.compose, cmd = m.compose.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model[T]) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return BackMsg{} }
	case m.loading || m.ctrl.Err() != nil:
		if key.Matches(msg, m.keys.Refresh) {
			return m.Remount()
		}
		return m, nil
	case key.Matches(msg, m.keys.Like):
		return m, m.toggle(interaction.TargetLike)
	case key.Matches(msg, m.keys.Favorite):
		return m, m.toggle(interaction.TargetFavorite)
	case key.Matches(msg, m.keys.Comment):
		m.composing = true
		m.compose = compose.NewInline(m.title())
		return m, m.compose.Init()
	case key.Matches(msg, m.keys.CommentEditor) && m.cfg.Editor != nil:
		m.composing = true
		m.compose = compose.NewEditor(m.cfg.Editor, m.title())
		return m, m.compose.Init()
	case key.Matches(msg, m.keys.Refresh):
		return m.Remount()
	}
	return m, nil
}

func (m Model[T]) title() string {
	if item, ok := m.ctrl.Item(m.cfg.ID); ok {
		return item.Headline()
	}
	return m.ref.String()
}

func commentFailure(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyComment):
		return "Comment is empty."
	case errors.Is(err, domain.ErrCommentTooLong):
		return fmt.Sprintf("Comments are limited to %d characters.", domain.MaxCommentLength)
	case errors.Is(err, domain.ErrUnauthorized):
		return "Session expired. Log in again to comment."
	default:
		return "Could not post comment. Try again."
	}
}
