package detail

import (
	"errors"
	"fmt"
	"strings"

	"github.com/espectro-app/espectro/domain"
	"github.com/espectro-app/espectro/interaction"
	"github.com/espectro-app/espectro/tui/common"
)

// View renders the item, its controls and its comments.
func (m Model[T]) View() string {
	if m.loading {
		return m.spinner.View() + " Loading...\n"
	}
	if err := m.ctrl.Err(); err != nil {
		msg := "Could not load this item."
		if errors.Is(err, domain.ErrNotFound) {
			msg = "This item is no longer available."
		}
		return common.ErrorStyle.Render(msg) + "\n" + common.TimestampStyle.Render("r: retry • esc: back") + "\n"
	}
	e, ok := m.ctrl.Lookup(m.cfg.ID)
	if !ok {
		return common.TimestampStyle.Render("This item is no longer available.") + "\n"
	}

	var b strings.Builder
	width := max(20, m.width-4)
	b.WriteString(m.cfg.Body(e.Item, width, m.now()))
	b.WriteString("\n")
	b.WriteString(controls(e))
	b.WriteString("\n\n")

	if m.composing {
		b.WriteString(m.compose.View())
		b.WriteString("\n")
	}
	b.WriteString(m.commentsView())
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
	return common.Marker(likeSym, counts.Of(domain.Like), e.Liked) + "   " +
		common.Marker(favSym, counts.Of(domain.Favorite), e.Favorited)
}

func (m Model[T]) commentsView() string {
	var b strings.Builder
	b.WriteString(common.AuthorStyle.Render(fmt.Sprintf("Comments (%d)", len(m.comments))))
	b.WriteString("\n")
	if m.commentsErr != nil {
		b.WriteString(common.ErrorStyle.Render("Could not load comments.") + "\n")
		return b.String()
	}
	if len(m.comments) == 0 {
		b.WriteString(common.TimestampStyle.Render("No comments yet. Press c to write one.") + "\n")
	}
	now := m.now()
	for _, c := range m.comments {
		b.WriteString(common.AuthorStyle.Render(c.AuthorName))
		if ago := common.Ago(c.CreatedAt, now); ago != "" {
			b.WriteString(" " + common.TimestampStyle.Render(ago))
		}
		b.WriteString("\n  " + common.ContentStyle.Render(c.Body) + "\n")
	}
	if m.posting {
		b.WriteString(common.TimestampStyle.Render("Posting...") + "\n")
	}
	return b.String()
}
