package domain

import (
	"errors"
	"fmt"
	"time"
)

// Communication modes recorded on an autism profile.
const (
	CommunicationVerbal          = "verbal"
	CommunicationMinimallyVerbal = "minimally_verbal"
	CommunicationNonverbal       = "nonverbal"
	CommunicationAAC             = "aac"
)

// AutismProfile describes a person a caregiver or professional supports.
type AutismProfile struct {
	ID            string
	OwnerID       string
	Name          string `validate:"required,max=120"`
	BirthDate     time.Time
	DiagnosisDate time.Time
	SupportLevel  int    `validate:"omitempty,min=1,max=3"`
	Communication string `validate:"omitempty,oneof=verbal minimally_verbal nonverbal aac"`
	Sensitivities []string
	Interests     []string
	Notes         string `validate:"max=2000"`
}

// Validate checks the record as of now.
func (p AutismProfile) Validate(now time.Time) error {
	verr := &ValidationError{}
	if err := validationError(validate.Struct(p)); err != nil {
		var fields *ValidationError
		if !errors.As(err, &fields) {
			return err
		}
		verr = fields
	}
	switch {
	case p.BirthDate.IsZero():
		verr.add("birthdate", "required")
	case p.BirthDate.After(now):
		verr.add("birthdate", "cannot be in the future")
	}
	if !p.DiagnosisDate.IsZero() && !p.BirthDate.IsZero() && p.DiagnosisDate.Before(p.BirthDate) {
		verr.add("diagnosisdate", "cannot be before birth")
	}
	return verr.orNil()
}

// Age returns completed years at now. Unknown or future birth dates give 0.
func (p AutismProfile) Age(now time.Time) int {
	if p.BirthDate.IsZero() {
		return 0
	}
	b := p.BirthDate
	now = now.In(b.Location())
	years := now.Year() - b.Year()
	if now.Month() < b.Month() || (now.Month() == b.Month() && now.Day() < b.Day()) {
		years--
	}
	return max(0, years)
}

// AgeInMonths returns completed months at now.
func (p AutismProfile) AgeInMonths(now time.Time) int {
	if p.BirthDate.IsZero() {
		return 0
	}
	b := p.BirthDate
	now = now.In(b.Location())
	months := (now.Year()-b.Year())*12 + int(now.Month()-b.Month())
	if now.Day() < b.Day() {
		months--
	}
	return max(0, months)
}

// AgeLabel renders the derived age for display; babies are shown in months.
func (p AutismProfile) AgeLabel(now time.Time) string {
	if p.BirthDate.IsZero() {
		return "age unknown"
	}
	if years := p.Age(now); years >= 1 {
		return plural(years, "year")
	}
	return plural(p.AgeInMonths(now), "month")
}

// SupportLabel renders the DSM-5 support level.
func (p AutismProfile) SupportLabel() string {
	if p.SupportLevel == 0 {
		return "level not set"
	}
	return fmt.Sprintf("level %d", p.SupportLevel)
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
