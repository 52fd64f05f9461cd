package library

import (
	"fmt"
	"strings"

	"github.com/espectro-app/espectro/domain"
	"github.com/espectro-app/espectro/interaction"
	"github.com/espectro-app/espectro/tui/common"
)

// View renders the list.
func (m Model[T]) View() string {
	var b strings.Builder

	if filters := m.filterLine(); filters != "" {
		b.WriteString(common.TimestampStyle.Render(filters) + "\n")
	}
	if m.searching {
		b.WriteString(m.search.View() + "\n")
	}
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString(fmt.Sprintf("%s Loading %s...\n", m.spinner.View(), strings.ToLower(m.cfg.Title)))
		return b.String()
	case m.ctrl.Err() != nil:
		b.WriteString(common.ErrorStyle.Render("Could not load "+strings.ToLower(m.cfg.Title)+".") + "\n")
		b.WriteString(common.TimestampStyle.Render("Press r to retry.") + "\n")
		return b.String()
	case m.ctrl.Empty():
		b.WriteString(common.TimestampStyle.Render("Nothing here yet.") + "\n")
		return b.String()
	}

	now := m.now()
	inner := max(20, m.width-6)
	for i, e := range m.ctrl.Entries() {
		card := m.cfg.Card(e.Item, inner, now) + "\n" + controls(e)
		style := common.UnselectedStyle
		if i == m.cursor {
			style = common.SelectedStyle
		}
		b.WriteString(style.Width(inner+2).Render(card) + "\n")
	}
	return b.String()
}

func controls[T domain.Content[T]](e interaction.Entry[T]) string {
	counts := e.Item.ContentCounts()
	likeSym, favSym := "♡", "☆"
	if e.Liked {
		likeSym = "♥"
	}
	if e.Favorited {
		favSym = "★"
	}
	return strings.Join([]string{
		common.Marker(likeSym, counts.Of(domain.Like), e.Liked),
		common.Marker(favSym, counts.Of(domain.Favorite), e.Favorited),
		common.UnmarkedStyle.Render(fmt.Sprintf("💬 %d", counts.Comments)),
	}, "   ")
}

func (m Model[T]) filterLine() string {
	f := m.query.get()
	var parts []string
	if f.Category != "" {
		parts = append(parts, "category: "+f.Category)
	}
	if f.Difficulty != "" {
		parts = append(parts, "difficulty: "+f.Difficulty)
	}
	if f.Search != "" && !m.searching {
		parts = append(parts, fmt.Sprintf("search: %q", f.Search))
	}
	return strings.Join(parts, " · ")
}
