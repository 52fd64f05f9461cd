package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/espectro-app/espectro/app"
	"github.com/espectro-app/espectro/domain"
	"github.com/espectro-app/espectro/tui/common"
)

// pair shows the articles and activities the user marked with one
// interaction kind, one sub-list at a time.
type pair struct {
	articles       pane
	activities     pane
	showActivities bool
	keys           common.KeyMap
}

func (p pair) current() pane {
	if p.showActivities {
		return p.activities
	}
	return p.articles
}

func (p *pair) setCurrent(v pane) {
	if p.showActivities {
		p.activities = v
	} else {
		p.articles = v
	}
}

func (p pair) Init() tea.Cmd { return p.current().Init() }

func (p pair) Remount() (tea.Model, tea.Cmd) {
	updated, cmd := p.current().Remount()
	p.setCurrent(updated.(pane))
	return p, cmd
}

func (p pair) Capturing() bool { return p.current().Capturing() }

func (p pair) ShortHelp() []key.Binding {
	return append(p.current().ShortHelp(), p.keys.SwitchKind)
}

func (p pair) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		if !p.Capturing() && key.Matches(k, p.keys.SwitchKind) {
			p.showActivities = !p.showActivities
			return p.Remount()
		}
		updated, cmd := p.current().Update(msg)
		p.setCurrent(updated.(pane))
		return p, cmd
	}
	articles, c1 := p.articles.Update(msg)
	activities, c2 := p.activities.Update(msg)
	p.articles, p.activities = articles.(pane), activities.(pane)
	return p, tea.Batch(c1, c2)
}

func (p pair) View() string {
	labels := []string{"Articles", "Activities"}
	active := 0
	if p.showActivities {
		active = 1
	}
	for i, l := range labels {
		if i == active {
			labels[i] = common.TabActiveStyle.Render(l)
		} else {
			labels[i] = common.TabInactiveStyle.Render(l)
		}
	}
	return strings.Join(labels, " ") + "\n" + p.current().View()
}

// mine lists the content of the user's interaction records, skipping records
// whose content the server no longer has.
func mine[T any](svc app.InteractionService, kind domain.InteractionKind, pick func(domain.Interaction) *T) func(context.Context, app.Filter) ([]T, error) {
	return func(ctx context.Context, _ app.Filter) ([]T, error) {
		records, err := svc.ListMine(ctx, kind)
		if err != nil {
			return nil, fmt.Errorf("listing %s records: %w", kind, err)
		}
		out := make([]T, 0, len(records))
		for _, r := range records {
			if c := pick(r); c != nil {
				out = append(out, *c)
			}
		}
		return out, nil
	}
}

func nestedArticle(r domain.Interaction) *domain.Article   { return r.Article }
func nestedActivity(r domain.Interaction) *domain.Activity { return r.Activity }
