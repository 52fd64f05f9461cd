package profiles

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/espectro-app/espectro/domain"
)

type field int

const (
	fieldName field = iota
	fieldBirth
	fieldDiagnosis
	fieldSupport
	fieldCommunication
	fieldSensitivities
	fieldInterests
	fieldNotes
	fieldCount
)

const dateLayout = "2006-01-02"

var fieldLabels = [fieldCount]string{
	"Name", "Birth date", "Diagnosis date", "Support level",
	"Communication", "Sensitivities", "Interests", "Notes",
}

// fieldKeys match the keys of domain.ValidationError.Fields.
var fieldKeys = [fieldCount]string{
	"name", "birthdate", "diagnosisdate", "supportlevel",
	"communication", "sensitivities", "interests", "notes",
}

// form edits one profile. base keeps the fields the form does not show,
// and an empty base ID means the profile is new.
type form struct {
	base   domain.AutismProfile
	inputs []textinput.Model
	focus  field
	errs   map[string]string
	saving bool
}

func newForm(p domain.AutismProfile) form {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 120
		inputs[i] = ti
	}
	inputs[fieldBirth].Placeholder = "YYYY-MM-DD"
	inputs[fieldDiagnosis].Placeholder = "YYYY-MM-DD, optional"
	inputs[fieldSupport].Placeholder = "1, 2 or 3"
	inputs[fieldSupport].CharLimit = 1
	inputs[fieldCommunication].Placeholder = "verbal, minimally_verbal, nonverbal or aac"
	inputs[fieldSensitivities].Placeholder = "comma separated"
	inputs[fieldInterests].Placeholder = "comma separated"
	inputs[fieldNotes].CharLimit = 2000

	inputs[fieldName].SetValue(p.Name)
	inputs[fieldBirth].SetValue(formatDate(p.BirthDate))
	inputs[fieldDiagnosis].SetValue(formatDate(p.DiagnosisDate))
	if p.SupportLevel != 0 {
		inputs[fieldSupport].SetValue(strconv.Itoa(p.SupportLevel))
	}
	inputs[fieldCommunication].SetValue(p.Communication)
	inputs[fieldSensitivities].SetValue(strings.Join(p.Sensitivities, ", "))
	inputs[fieldInterests].SetValue(strings.Join(p.Interests, ", "))
	inputs[fieldNotes].SetValue(p.Notes)
	inputs[fieldName].Focus()

	return form{base: p, inputs: inputs}
}

func (f form) creating() bool { return f.base.ID == "" }

func (f *form) move(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = field((int(f.focus) + delta + int(fieldCount)) % int(fieldCount))
	f.inputs[f.focus].Focus()
}

func (f form) value(i field) string { return strings.TrimSpace(f.inputs[i].Value()) }

// birthDate parses the birth date typed so far, for the live age preview.
func (f form) birthDate() (time.Time, bool) {
	t, err := time.Parse(dateLayout, f.value(fieldBirth))
	return t, err == nil
}

// check reads the inputs back and validates them as of now. Malformed input
// is reported under the same keys validation uses, and wins over the
// validation message for that field.
func (f form) check(now time.Time) (domain.AutismProfile, map[string]string) {
	errs := map[string]string{}
	p := f.base
	p.Name = f.value(fieldName)
	p.BirthDate = parseDate(f.value(fieldBirth), fieldKeys[fieldBirth], errs)
	p.DiagnosisDate = parseDate(f.value(fieldDiagnosis), fieldKeys[fieldDiagnosis], errs)
	p.SupportLevel = 0
	if s := f.value(fieldSupport); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			errs[fieldKeys[fieldSupport]] = "must be 1, 2 or 3"
		}
		p.SupportLevel = n
	}
	p.Communication = f.value(fieldCommunication)
	p.Sensitivities = splitList(f.value(fieldSensitivities))
	p.Interests = splitList(f.value(fieldInterests))
	p.Notes = f.value(fieldNotes)

	mergeValidation(errs, p.Validate(now))
	return p, errs
}

func mergeValidation(errs map[string]string, err error) {
	if err == nil {
		return
	}
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		errs["form"] = err.Error()
		return
	}
	for k, v := range verr.Fields {
		if _, ok := errs[k]; !ok {
			errs[k] = v
		}
	}
}

func parseDate(s, key string, errs map[string]string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		errs[key] = "use YYYY-MM-DD"
		return time.Time{}
	}
	return t
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
