package model

import (
	"strings"

	"github.com/ftahirops/ncdadvisor/util"
)

// Field names one of the four health inputs. The value doubles as the JSON
// key sent to the analysis service.
type Field string

const (
	FieldCalories   Field = "calories"
	FieldSleepHours Field = "sleep_hours"
	FieldWeight     Field = "weight"
	FieldHeight     Field = "height"
)

// Fields lists the inputs in form order.
var Fields = []Field{FieldCalories, FieldSleepHours, FieldWeight, FieldHeight}

var fieldLabels = map[Field]string{
	FieldCalories:   "Calories Intake",
	FieldSleepHours: "Sleep Hours",
	FieldWeight:     "Weight (kg)",
	FieldHeight:     "Height (cm)",
}

// Label returns the human label shown next to the input.
func (f Field) Label() string {
	if l, ok := fieldLabels[f]; ok {
		return l
	}
	return string(f)
}

// Valid reports whether f is one of the four known inputs.
func (f Field) Valid() bool {
	_, ok := fieldLabels[f]
	return ok
}

// FormInput holds the raw text of the four inputs. Values stay strings until
// a derived metric needs a number; they are sent to the service verbatim.
type FormInput struct {
	Calories   string `json:"calories"`
	SleepHours string `json:"sleep_hours"`
	Weight     string `json:"weight"`
	Height     string `json:"height"`
}

// Get returns the raw value of one field, or "" for an unknown field.
func (f FormInput) Get(name Field) string {
	switch name {
	case FieldCalories:
		return f.Calories
	case FieldSleepHours:
		return f.SleepHours
	case FieldWeight:
		return f.Weight
	case FieldHeight:
		return f.Height
	}
	return ""
}

// With returns a copy of f with exactly one field replaced. Any string is
// accepted. Unknown field names return f unchanged.
func (f FormInput) With(name Field, value string) FormInput {
	switch name {
	case FieldCalories:
		f.Calories = value
	case FieldSleepHours:
		f.SleepHours = value
	case FieldWeight:
		f.Weight = value
	case FieldHeight:
		f.Height = value
	}
	return f
}

// Missing returns the fields that are still empty, in form order. This is the
// "required" constraint of the input controls, not a validation of values.
func (f FormInput) Missing() []Field {
	var out []Field
	for _, name := range Fields {
		if !filled(f.Get(name)) {
			out = append(out, name)
		}
	}
	return out
}

// Number parses one field. ok is false only when the field has not been
// filled in; a filled but non-numeric value yields NaN so that it propagates
// into derived metrics instead of being mistaken for zero.
func (f FormInput) Number(name Field) (v float64, ok bool) {
	return util.ParseNumber(f.Get(name))
}

func filled(s string) bool {
	return strings.TrimSpace(s) != ""
}
