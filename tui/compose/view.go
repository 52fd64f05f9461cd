package compose

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/espectro-app/espectro/domain"
	"github.com/espectro-app/espectro/tui/common"
)

// View renders the composer based on the active mode.
func (m Model) View() string {
	switch m.mode {
	case editorMode:
		return m.status + "\n"

	case inlineMode:
		var b strings.Builder
		b.WriteString(common.AuthorStyle.Render("Comment on: "))
		b.WriteString(common.Truncate(m.title, 60))
		b.WriteString("\n\n")
		b.WriteString(m.textarea.View())
		b.WriteString("\n")
		b.WriteString(common.StatusBarStyle.Render(
			fmt.Sprintf("  ctrl+d: post • esc: cancel • %d/%d chars",
				utf8.RuneCountInString(m.textarea.Value()), domain.MaxCommentLength),
		))
		return b.String()
	}
	return ""
}
