package library

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/espectro-app/espectro/domain"
	"github.com/espectro-app/espectro/interaction"
	"github.com/espectro-app/espectro/tui/common"
)

// Update handles messages for the list view.
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

	case mountedMsg:
		if msg.view != m.cfg.ID {
			return m, nil
		}
		// a superseded mount reports in while the newer one is still loading
		m.loading = m.ctrl.Mounting()
		m.clampCursor()
		return m, nil

	case clickResultMsg:
		if msg.view != m.cfg.ID {
			return m, nil
		}
		m.clampCursor()
		if msg.err == nil && msg.outcome.Navigate {
			open := OpenMsg{Kind: m.ctrl.Kind(), ID: msg.outcome.ItemID}
			return m, func() tea.Msg { return open }
		}
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKey(msg)
	}
	return m, nil
}

func (m Model[T]) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.ctrl.Items())-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Open):
		return m, m.clickSelected(interaction.TargetCard)

	case key.Matches(msg, m.keys.Like):
		return m, m.clickSelected(interaction.TargetLike)

	case key.Matches(msg, m.keys.Favorite):
		return m, m.clickSelected(interaction.TargetFavorite)

	case key.Matches(msg, m.keys.Refresh):
		return m.remount()

	case key.Matches(msg, m.keys.Search) && m.cfg.Searchable:
		m.searching = true
		m.search.Focus()
		return m, nil

	case key.Matches(msg, m.keys.Category) && len(m.cfg.Categories) > 0:
		f := m.query.get()
		f.Category = common.Cycle(m.cfg.Categories, f.Category)
		m.query.set(f)
		return m.remount()

	case key.Matches(msg, m.keys.Difficulty) && len(m.cfg.Difficulties) > 0 && m.ctrl.Kind() == domain.KindActivity:
		f := m.query.get()
		f.Difficulty = common.Cycle(m.cfg.Difficulties, f.Difficulty)
		m.query.set(f)
		return m.remount()
	}
	return m, nil
}

func (m Model[T]) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		f := m.query.get()
		f.Search = strings.TrimSpace(m.search.Value())
		m.query.set(f)
		return m.remount()
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue(m.query.get().Search)
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// remount refetches after the filter changed.
func (m Model[T]) remount() (tea.Model, tea.Cmd) {
	m.cursor = 0
	return m.Remount()
}

// Remount refetches the collection and memberships. Controls stay inert
// until the new state lands.
func (m Model[T]) Remount() (tea.Model, tea.Cmd) {
	m.loading = true
	return m, tea.Batch(m.spinner.Tick, m.Mount())
}

func (m Model[T]) clickSelected(target interaction.Target) tea.Cmd {
	if m.loading {
		return nil
	}
	item, ok := m.selected()
	if !ok {
		return nil
	}
	return m.click(interaction.Click{ItemID: item.ContentID(), Target: target})
}

func (m *Model[T]) clampCursor() {
	n := len(m.ctrl.Items())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
