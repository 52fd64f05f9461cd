package library

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/espectro-app/espectro/app"
	"github.com/espectro-app/espectro/domain"
	"github.com/espectro-app/espectro/interaction"
	"github.com/espectro-app/espectro/tui/common"
)

// Config describes one list view.
type Config[T domain.Content[T]] struct {
	ID           string // routes async results to this view
	Title        string
	Fetch        func(ctx context.Context, f app.Filter) ([]T, error)
	Interactions app.InteractionService
	Notices      interaction.Notifier
	Logger       *zap.Logger
	Prune        []domain.InteractionKind
	Collection   []domain.InteractionKind // marks every fetched item carries
	Categories   []string
	Difficulties []string
	Searchable   bool
	Search       string // initial search
	Card         func(item T, width int, now time.Time) string
}

// query is the filter the next mount fetches with. The source closure reads
// it from the mount goroutine while the model may be editing it.
type query struct {
	mu sync.Mutex
	f  app.Filter
}

func (q *query) get() app.Filter {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.f
}

func (q *query) set(f app.Filter) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.f = f
}

// Model is a list of content cards over an interaction.Controller.
type Model[T domain.Content[T]] struct {
	cfg     Config[T]
	ctrl    *interaction.Controller[T]
	query   *query
	keys    common.KeyMap
	spinner spinner.Model
	search  textinput.Model

	searching bool
	loading   bool
	cursor    int
	width     int
	now       func() time.Time
}

// New creates a list view. Call Mount (or Init) to load it.
func New[T domain.Content[T]](cfg Config[T]) Model[T] {
	q := &query{f: app.Filter{Search: cfg.Search}}
	opts := []interaction.Option{interaction.WithName(cfg.Title)}
	for _, k := range cfg.Prune {
		opts = append(opts, interaction.WithPrune(k))
	}
	for _, k := range cfg.Collection {
		opts = append(opts, interaction.WithCollectionMembership(k))
	}
	source := func(ctx context.Context) ([]T, error) {
		return cfg.Fetch(ctx, q.get())
	}

	s := spinner.New()
	s.Spinner = spinner.Dot

	ti := textinput.New()
	ti.Placeholder = "search titles and summaries"
	ti.Prompt = "/ "
	ti.CharLimit = 80
	ti.SetValue(cfg.Search)

	return Model[T]{
		cfg:     cfg,
		ctrl:    interaction.NewController(source, cfg.Interactions, cfg.Notices, cfg.Logger, opts...),
		query:   q,
		keys:    common.DefaultKeyMap(),
		spinner: s,
		search:  ti,
		loading: true,
		width:   80,
		now:     time.Now,
	}
}

// --- Messages ---

// OpenMsg asks the root to show the detail view of an item.
type OpenMsg struct {
	Kind domain.ContentKind
	ID   string
}

type mountedMsg struct {
	view string
	err  error
}

type clickResultMsg struct {
	view    string
	outcome interaction.Outcome
	err     error
}

// Init starts the spinner and the first mount.
func (m Model[T]) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.Mount())
}

// Mount fetches the collection and memberships afresh.
func (m Model[T]) Mount() tea.Cmd {
	ctrl, view := m.ctrl, m.cfg.ID
	return func() tea.Msg {
		return mountedMsg{view: view, err: ctrl.Mount(context.Background())}
	}
}

func (m Model[T]) click(c interaction.Click) tea.Cmd {
	ctrl, view := m.ctrl, m.cfg.ID
	return func() tea.Msg {
		out, err := ctrl.HandleClick(context.Background(), c)
		return clickResultMsg{view: view, outcome: out, err: err}
	}
}

// Capturing reports whether typed keys belong to the search box.
func (m Model[T]) Capturing() bool { return m.searching }

// ShortHelp lists the keys the list answers to.
func (m Model[T]) ShortHelp() []key.Binding {
	if m.searching {
		return nil
	}
	bindings := []key.Binding{m.keys.Open, m.keys.Like, m.keys.Favorite, m.keys.Refresh}
	if m.cfg.Searchable {
		bindings = append(bindings, m.keys.Search)
	}
	if len(m.cfg.Categories) > 0 {
		bindings = append(bindings, m.keys.Category)
	}
	if len(m.cfg.Difficulties) > 0 && m.ctrl.Kind() == domain.KindActivity {
		bindings = append(bindings, m.keys.Difficulty)
	}
	return bindings
}

// Title returns the view title.
func (m Model[T]) Title() string { return m.cfg.Title }

// Filter returns the filter the view currently fetches with.
func (m Model[T]) Filter() app.Filter { return m.query.get() }

// Controller exposes the underlying controller.
func (m Model[T]) Controller() *interaction.Controller[T] { return m.ctrl }

// Loading reports whether a mount is in flight.
func (m Model[T]) Loading() bool { return m.loading }

// Cursor returns the index of the selected card.
func (m Model[T]) Cursor() int { return m.cursor }

func (m Model[T]) selected() (T, bool) {
	items := m.ctrl.Items()
	if m.cursor < 0 || m.cursor >= len(items) {
		var zero T
		return zero, false
	}
	return items[m.cursor], true
}
