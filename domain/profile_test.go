package domain

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAge_CountsCompletedYears(t *testing.T) {
	now := date(2026, time.October, 15)
	tests := []struct {
		name  string
		birth time.Time
		years int
		label string
	}{
		{name: "birthday today", birth: date(2016, time.October, 15), years: 10, label: "10 years"},
		{name: "birthday tomorrow", birth: date(2016, time.October, 16), years: 9, label: "9 years"},
		{name: "one year", birth: date(2025, time.March, 1), years: 1, label: "1 year"},
		{name: "infant", birth: date(2026, time.January, 20), years: 0, label: "8 months"},
		{name: "future", birth: date(2027, time.January, 1), years: 0, label: "0 months"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := AutismProfile{Name: "Leo", BirthDate: tc.birth}
			if got := p.Age(now); got != tc.years {
				t.Fatalf("age got %d want %d", got, tc.years)
			}
			if got := p.AgeLabel(now); got != tc.label {
				t.Fatalf("label got %q want %q", got, tc.label)
			}
		})
	}
}

func TestAgeLabel_UnknownBirthDate(t *testing.T) {
	if got := (AutismProfile{}).AgeLabel(time.Now()); got != "age unknown" {
		t.Fatalf("unexpected label: %q", got)
	}
}

func TestValidate_ReportsEachBadField(t *testing.T) {
	now := date(2026, time.October, 15)
	p := AutismProfile{
		BirthDate:     date(2020, time.May, 2),
		DiagnosisDate: date(2019, time.January, 1),
		SupportLevel:  4,
		Communication: "telepathy",
	}
	err := p.Validate(now)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"name", "supportlevel", "communication", "diagnosisdate"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Fatalf("expected %s in errors: %v", field, verr)
		}
	}
	if !strings.HasPrefix(err.Error(), "invalid input: ") {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestValidate_FutureAndMissingBirthDate(t *testing.T) {
	now := date(2026, time.October, 15)
	err := AutismProfile{Name: "Ana"}.Validate(now)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Fields["birthdate"] != "required" {
		t.Fatalf("expected required birthdate, got %v", err)
	}
	err = AutismProfile{Name: "Ana", BirthDate: date(2030, time.January, 1)}.Validate(now)
	if !errors.As(err, &verr) || verr.Fields["birthdate"] != "cannot be in the future" {
		t.Fatalf("expected future birthdate error, got %v", err)
	}
}

func TestValidate_AcceptsCompleteProfile(t *testing.T) {
	p := AutismProfile{
		Name:          "Ana",
		BirthDate:     date(2018, time.June, 9),
		DiagnosisDate: date(2021, time.February, 1),
		SupportLevel:  2,
		Communication: CommunicationAAC,
	}
	if err := p.Validate(date(2026, time.October, 15)); err != nil {
		t.Fatalf("expected valid profile, got %v", err)
	}
	if p.SupportLabel() != "level 2" {
		t.Fatalf("unexpected support label %q", p.SupportLabel())
	}
}

func TestNormalizeCommentAndCredentials(t *testing.T) {
	if _, err := NormalizeComment("   "); !errors.Is(err, ErrEmptyComment) {
		t.Fatalf("expected ErrEmptyComment, got %v", err)
	}
	if _, err := NormalizeComment(strings.Repeat("a", MaxCommentLength+1)); !errors.Is(err, ErrCommentTooLong) {
		t.Fatalf("expected ErrCommentTooLong, got %v", err)
	}
	if body, err := NormalizeComment("  thanks!  "); err != nil || body != "thanks!" {
		t.Fatalf("unexpected normalize result %q %v", body, err)
	}

	if err := (Credentials{Email: "nope", Password: "123"}).Validate(); err == nil {
		t.Fatalf("expected invalid credentials")
	}
	if err := (Credentials{Email: "ana@example.com", Password: "secret1"}).Validate(); err != nil {
		t.Fatalf("expected valid credentials, got %v", err)
	}
}
