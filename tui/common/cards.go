package common

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/espectro-app/espectro/domain"
)

func byline(author string, created time.Time, now time.Time) string {
	parts := []string{}
	if author != "" {
		parts = append(parts, AuthorStyle.Render(author))
	}
	if ago := Ago(created, now); ago != "" {
		parts = append(parts, TimestampStyle.Render(ago))
	}
	return strings.Join(parts, TimestampStyle.Render(" · "))
}

// ArticleCard renders the summary lines of an article card.
func ArticleCard(a domain.Article, width int, now time.Time) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(Truncate(a.Title, width)))
	b.WriteString("\n")
	b.WriteString(byline(a.Author, a.CreatedAt, now))
	if a.Category != "" {
		b.WriteString("  " + BadgeStyle.Render("#"+a.Category))
	}
	if summary := FirstLine(a.Summary); summary != "" {
		b.WriteString("\n")
		b.WriteString(ContentStyle.Render(Truncate(summary, width)))
	}
	return b.String()
}

// ActivityCard renders the summary lines of an activity card.
func ActivityCard(a domain.Activity, width int, now time.Time) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(Truncate(a.Title, width)))
	b.WriteString("\n")
	b.WriteString(byline(a.Author, a.CreatedAt, now))
	b.WriteString("  " + BadgeStyle.Render(activityBadges(a)))
	if desc := FirstLine(a.Description); desc != "" {
		b.WriteString("\n")
		b.WriteString(ContentStyle.Render(Truncate(desc, width)))
	}
	return b.String()
}

func activityBadges(a domain.Activity) string {
	var badges []string
	if a.Category != "" {
		badges = append(badges, "#"+a.Category)
	}
	if a.Difficulty != "" {
		badges = append(badges, a.Difficulty)
	}
	if a.DurationMinutes > 0 {
		badges = append(badges, fmt.Sprintf("%d min", a.DurationMinutes))
	}
	return strings.Join(badges, " · ")
}

// ArticleBody renders the full text of an article for the detail view.
func ArticleBody(a domain.Article, width int, now time.Time) string {
	wrap := lipgloss.NewStyle().Width(max(20, width))
	var b strings.Builder
	b.WriteString(TitleStyle.Render(a.Title) + "\n")
	b.WriteString(byline(a.Author, a.CreatedAt, now) + "\n")
	if len(a.Tags) > 0 {
		b.WriteString(BadgeStyle.Render("#"+strings.Join(a.Tags, " #")) + "\n")
	}
	if a.Summary != "" {
		b.WriteString("\n" + wrap.Italic(true).Render(a.Summary) + "\n")
	}
	b.WriteString("\n" + ContentStyle.Inherit(wrap).Render(a.Body) + "\n")
	return b.String()
}

// ActivityBody renders the full description of an activity for the detail view.
func ActivityBody(a domain.Activity, width int, now time.Time) string {
	wrap := lipgloss.NewStyle().Width(max(20, width))
	var b strings.Builder
	b.WriteString(TitleStyle.Render(a.Title) + "\n")
	b.WriteString(byline(a.Author, a.CreatedAt, now) + "\n")
	b.WriteString(BadgeStyle.Render(activityBadges(a)) + "\n")
	b.WriteString("\n" + ContentStyle.Inherit(wrap).Render(a.Description) + "\n")
	if len(a.Materials) > 0 {
		b.WriteString("\n" + AuthorStyle.Render("Materials") + "\n")
		for _, m := range a.Materials {
			b.WriteString("  • " + m + "\n")
		}
	}
	return b.String()
}
