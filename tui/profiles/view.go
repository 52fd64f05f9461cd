package profiles

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/espectro-app/espectro/domain"
	"github.com/espectro-app/espectro/tui/common"
)

var communicationLabels = map[string]string{
	domain.CommunicationVerbal:          "verbal",
	domain.CommunicationMinimallyVerbal: "minimally verbal",
	domain.CommunicationNonverbal:       "nonverbal",
	domain.CommunicationAAC:             "AAC",
}

func (m Model) View() string {
	if m.editing {
		return m.formView()
	}
	if m.loading {
		return m.spinner.View() + " Loading profiles...\n"
	}
	if m.err != nil {
		return common.ErrorStyle.Render("Could not load profiles.") + "\n" +
			common.TimestampStyle.Render("Press r to retry.") + "\n"
	}
	if len(m.profiles) == 0 {
		return common.TimestampStyle.Render("No profiles yet.") + "\n"
	}

	now := m.now()
	var b strings.Builder
	for i, p := range m.profiles {
		card := common.TitleStyle.Render(p.Name) + "  " +
			common.BadgeStyle.Render(p.AgeLabel(now)+" · "+p.SupportLabel())
		if p.ID == m.expanded {
			card += "\n" + details(p, now)
		}
		style := common.UnselectedStyle
		if i == m.cursor {
			style = common.SelectedStyle
		}
		b.WriteString(style.Width(max(20, m.width-4)).Render(card))
		b.WriteString("\n")
	}
	if m.confirming != "" {
		b.WriteString(common.ConfirmStyle.Render("Delete this profile? y to confirm, any other key to cancel"))
		b.WriteString("\n")
	}
	return b.String()
}

func details(p domain.AutismProfile, now time.Time) string {
	var lines []string
	add := func(label, value string) {
		if value != "" {
			lines = append(lines, common.AuthorStyle.Render(label+": ")+common.ContentStyle.Render(value))
		}
	}
	if !p.BirthDate.IsZero() {
		add("Born", p.BirthDate.Format("2 Jan 2006"))
	}
	if !p.DiagnosisDate.IsZero() {
		add("Diagnosed", fmt.Sprintf("%s (%s)", p.DiagnosisDate.Format("2 Jan 2006"), humanize.RelTime(p.DiagnosisDate, now, "ago", "from now")))
	}
	add("Communication", communicationLabels[p.Communication])
	add("Sensitivities", strings.Join(p.Sensitivities, ", "))
	add("Interests", strings.Join(p.Interests, ", "))
	add("Notes", p.Notes)
	return strings.Join(lines, "\n")
}

func (m Model) formView() string {
	f := m.form
	title := "Edit profile"
	if f.creating() {
		title = "New profile"
	}
	var b strings.Builder
	b.WriteString(common.TitleStyle.Render(title) + "\n\n")
	for i := range fieldCount {
		label := fmt.Sprintf("%-15s", fieldLabels[i])
		if i == f.focus {
			label = common.AuthorStyle.Render(label)
		} else {
			label = common.TimestampStyle.Render(label)
		}
		b.WriteString(label + " " + f.inputs[i].View())
		if i == fieldBirth {
			if born, ok := f.birthDate(); ok {
				age := domain.AutismProfile{BirthDate: born}.AgeLabel(m.now())
				b.WriteString("  " + common.BadgeStyle.Render(age))
			}
		}
		b.WriteString("\n")
		if msg, ok := f.errs[fieldKeys[i]]; ok {
			b.WriteString(strings.Repeat(" ", 16) + common.ErrorStyle.Render(msg) + "\n")
		}
	}
	if msg, ok := f.errs["form"]; ok {
		b.WriteString(common.ErrorStyle.Render(msg) + "\n")
	}
	if f.saving {
		b.WriteString(common.TimestampStyle.Render("Saving...") + "\n")
	}
	return b.String()
}
