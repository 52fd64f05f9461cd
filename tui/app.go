package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/espectro-app/espectro/app"
	"github.com/espectro-app/espectro/domain"
	"github.com/espectro-app/espectro/infra/config"
	"github.com/espectro-app/espectro/interaction"
	"github.com/espectro-app/espectro/tui/common"
	"github.com/espectro-app/espectro/tui/compose"
	"github.com/espectro-app/espectro/tui/detail"
	"github.com/espectro-app/espectro/tui/library"
	"github.com/espectro-app/espectro/tui/profiles"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Content      app.ContentService
	Interactions app.InteractionService
	Comments     app.CommentService
	Profiles     app.ProfileService
	Editor       compose.Editor
	Notices      *interaction.NoticeLog
	Logger       *zap.Logger
	User         domain.User
	State        config.UIState
	SaveState    func(config.UIState) error
}

var (
	articleCategories  = []string{"routines", "sensory", "communication"}
	activityCategories = []string{"sensory", "social", "communication"}
	difficulties       = []string{"easy", "medium", "hard"}
)

type tab int

const (
	libraryTab tab = iota
	activitiesTab
	favoritesTab
	likedTab
	profilesTab
)

var tabNames = []string{"Library", "Activities", "Favorites", "Liked", "Profiles"}

// pane is a tab body or the detail view.
type pane interface {
	tea.Model
	Capturing() bool
	ShortHelp() []key.Binding
	// Remount refetches the pane's data and holds its controls until the
	// result lands.
	Remount() (tea.Model, tea.Cmd)
}

// App is the root Bubble Tea model. It routes between tabs and the detail view.
type App struct {
	deps      Deps
	keys      common.KeyMap
	help      help.Model
	panes     []pane
	active    tab
	detail    pane // nil unless an item is open
	showHints bool
	status    *interaction.Notice
	width     int
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	if deps.Notices == nil {
		deps.Notices = interaction.NewNoticeLog()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	keys := common.DefaultKeyMap()

	panes := make([]pane, len(tabNames))
	panes[libraryTab] = library.New(library.Config[domain.Article]{
		ID:           "library",
		Title:        "Library",
		Fetch:        deps.Content.ListArticles,
		Interactions: deps.Interactions,
		Notices:      deps.Notices,
		Logger:       deps.Logger,
		Categories:   articleCategories,
		Searchable:   true,
		Search:       deps.State.Search,
		Card:         common.ArticleCard,
	})
	panes[activitiesTab] = library.New(library.Config[domain.Activity]{
		ID:           "activities",
		Title:        "Activities",
		Fetch:        deps.Content.ListActivities,
		Interactions: deps.Interactions,
		Notices:      deps.Notices,
		Logger:       deps.Logger,
		Categories:   activityCategories,
		Difficulties: difficulties,
		Searchable:   true,
		Card:         common.ActivityCard,
	})
	panes[favoritesTab] = newPair(deps, keys, domain.Favorite, "Favorites")
	panes[likedTab] = newPair(deps, keys, domain.Like, "Liked")
	panes[profilesTab] = profiles.New(deps.Profiles, deps.Notices, deps.Logger)

	active := tab(deps.State.Tab)
	if active < 0 || int(active) >= len(panes) {
		active = libraryTab
	}
	return App{
		deps:   deps,
		keys:   keys,
		help:   help.New(),
		panes:  panes,
		active: active,
		width:  80,
	}
}

func newPair(deps Deps, keys common.KeyMap, kind domain.InteractionKind, title string) pair {
	id := strings.ToLower(title)
	return pair{
		keys: keys,
		articles: library.New(library.Config[domain.Article]{
			ID:           id + "-articles",
			Title:        title,
			Fetch:        mine(deps.Interactions, kind, nestedArticle),
			Interactions: deps.Interactions,
			Notices:      deps.Notices,
			Logger:       deps.Logger,
			Prune:        []domain.InteractionKind{kind},
			Collection:   []domain.InteractionKind{kind},
			Card:         common.ArticleCard,
		}),
		activities: library.New(library.Config[domain.Activity]{
			ID:           id + "-activities",
			Title:        title,
			Fetch:        mine(deps.Interactions, kind, nestedActivity),
			Interactions: deps.Interactions,
			Notices:      deps.Notices,
			Logger:       deps.Logger,
			Prune:        []domain.InteractionKind{kind},
			Collection:   []domain.InteractionKind{kind},
			Card:         common.ActivityCard,
		}),
	}
}

// Init mounts the active tab.
func (a App) Init() tea.Cmd {
	return a.panes[a.active].Init()
}

// Update handles messages and routes to the active pane.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		a, cmd = a.updateKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.help.Width = msg.Width
		cmd = a.broadcast(msg)

	case library.OpenMsg:
		opened, _ := a.openDetail(msg).Update(tea.WindowSizeMsg{Width: a.width})
		a.detail = opened.(pane)
		cmd = a.detail.Init()

	case detail.BackMsg:
		a.detail = nil
		// counts may have moved inside the detail view
		cmd = a.remount(a.active)

	default:
		cmd = a.broadcast(msg)
	}
	a.drainNotices()
	return a, cmd
}

func (a App) updateKey(msg tea.KeyMsg) (App, tea.Cmd) {
	if key.Matches(msg, a.keys.ForceQuit) {
		return a, a.quit()
	}

	if a.detail != nil {
		updated, cmd := a.detail.Update(msg)
		a.detail = updated.(pane)
		return a, cmd
	}

	current := a.panes[a.active]
	if current.Capturing() {
		updated, cmd := current.Update(msg)
		a.panes[a.active] = updated.(pane)
		return a, cmd
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, a.quit()
	case key.Matches(msg, a.keys.ToggleHints):
		a.showHints = !a.showHints
		return a, nil
	case key.Matches(msg, a.keys.NextTab):
		return a.switchTo((a.active + 1) % tab(len(a.panes)))
	case key.Matches(msg, a.keys.PrevTab):
		return a.switchTo((a.active + tab(len(a.panes)) - 1) % tab(len(a.panes)))
	}
	for i, b := range a.keys.Tabs {
		if key.Matches(msg, b) && i < len(a.panes) {
			return a.switchTo(tab(i))
		}
	}

	updated, cmd := current.Update(msg)
	a.panes[a.active] = updated.(pane)
	return a, cmd
}

// switchTo activates t and re-mounts it so memberships are fetched afresh.
func (a App) switchTo(t tab) (App, tea.Cmd) {
	a.active = t
	return a, a.remount(t)
}

func (a *App) remount(t tab) tea.Cmd {
	updated, cmd := a.panes[t].Remount()
	a.panes[t] = updated.(pane)
	return cmd
}

// broadcast forwards non-key messages to every pane. Async results carry the
// ID of the view that asked for them, so other panes ignore them.
func (a *App) broadcast(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(a.panes)+1)
	for i, p := range a.panes {
		updated, cmd := p.Update(msg)
		a.panes[i] = updated.(pane)
		cmds = append(cmds, cmd)
	}
	if a.detail != nil {
		updated, cmd := a.detail.Update(msg)
		a.detail = updated.(pane)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (a *App) drainNotices() {
	notices := a.deps.Notices.Drain()
	if len(notices) == 0 {
		return
	}
	last := notices[len(notices)-1]
	a.status = &last
}

func (a App) openDetail(msg library.OpenMsg) pane {
	id := msg.ID
	if msg.Kind == domain.KindActivity {
		return detail.New(detail.Config[domain.Activity]{
			ID: id,
			Fetch: func(ctx context.Context) (domain.Activity, error) {
				return a.deps.Content.GetActivity(ctx, id)
			},
			Interactions: a.deps.Interactions,
			Comments:     a.deps.Comments,
			Editor:       a.deps.Editor,
			Notices:      a.deps.Notices,
			Logger:       a.deps.Logger,
			Body:         common.ActivityBody,
		})
	}
	return detail.New(detail.Config[domain.Article]{
		ID: id,
		Fetch: func(ctx context.Context) (domain.Article, error) {
			return a.deps.Content.GetArticle(ctx, id)
		},
		Interactions: a.deps.Interactions,
		Comments:     a.deps.Comments,
		Editor:       a.deps.Editor,
		Notices:      a.deps.Notices,
		Logger:       a.deps.Logger,
		Body:         common.ArticleBody,
	})
}

// State returns what is persisted between runs.
func (a App) State() config.UIState {
	st := config.UIState{Tab: int(a.active)}
	if lib, ok := a.panes[libraryTab].(library.Model[domain.Article]); ok {
		st.Search = lib.Filter().Search
	}
	return st
}

func (a App) quit() tea.Cmd {
	if a.deps.SaveState != nil {
		if err := a.deps.SaveState(a.State()); err != nil {
			a.deps.Logger.Warn("save ui state", zap.Error(err))
		}
	}
	return tea.Quit
}

// View renders the header, the active pane, the status bar and key hints.
func (a App) View() string {
	var b strings.Builder
	b.WriteString(common.AppTitleStyle.Render("espectro"))
	if a.deps.User.Name != "" {
		b.WriteString(" " + common.TaglineStyle.Render(a.deps.User.Name))
	}
	b.WriteString("\n")

	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		if tab(i) == a.active {
			tabs[i] = common.TabActiveStyle.Render(name)
		} else {
			tabs[i] = common.TabInactiveStyle.Render(name)
		}
	}
	b.WriteString(strings.Join(tabs, " ") + "\n\n")

	body := a.panes[a.active]
	if a.detail != nil {
		body = a.detail
	}
	b.WriteString(body.View())

	if a.status != nil {
		style := common.StatusBarStyle
		if a.status.Level == interaction.LevelError {
			style = common.ErrorStyle
		}
		b.WriteString("\n" + style.Render(a.status.Text))
	}

	b.WriteString("\n")
	if a.showHints {
		b.WriteString(a.help.FullHelpView([][]key.Binding{body.ShortHelp(), a.keys.GlobalHelp()}))
	} else {
		b.WriteString(a.help.ShortHelpView(append(body.ShortHelp(), a.keys.ToggleHints, a.keys.Quit)))
	}
	return b.String()
}
