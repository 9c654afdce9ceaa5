package model

import (
	"encoding/json"
	"math"

	"github.com/ftahirops/ncdadvisor/util"
)

// Reference values the user's inputs are compared against.
const (
	RecommendedCalories = 2200.0
	IdealSleepHours     = 8.0
)

// Bar colors: user value first, reference second.
const (
	ColorUser      = "#fd1d11"
	ColorReference = "#3bea1c"
)

// ComputeBMI returns weight (kg) / (height (m))², rounded to one decimal
// with util.ToFixed rules, so 30.2 kg at 200 cm is 7.5, not 7.6.
// ok is false unless both inputs are filled in. Degenerate inputs are not
// guarded: a weight of "0" gives 0, a height of "0" gives +Inf and
// non-numeric text gives NaN.
func ComputeBMI(weight, height string) (bmi float64, ok bool) {
	w, wok := util.ParseNumber(weight)
	h, hok := util.ParseNumber(height)
	if !wok || !hok {
		return 0, false
	}
	m := h / 100
	return util.RoundTo(w/(m*m), 1), true
}

// FormatBMI renders a BMI with one decimal.
func FormatBMI(bmi float64) string {
	return util.FormatFloat(bmi, 1)
}

// BMI computes the form's BMI.
func (f FormInput) BMI() (float64, bool) {
	return ComputeBMI(f.Weight, f.Height)
}

// Series is a two-bar comparison: the user's value next to a reference.
type Series struct {
	Title  string
	Labels [2]string
	Values [2]float64
	Colors [2]string
}

// CaloriesSeries compares caloric intake against RecommendedCalories. An
// empty input plots as 0.
func CaloriesSeries(calories string) Series {
	return Series{
		Title:  "Calories (kcal)",
		Labels: [2]string{"Your Intake", "Recommended"},
		Values: [2]float64{userValue(calories), RecommendedCalories},
		Colors: [2]string{ColorUser, ColorReference},
	}
}

// SleepSeries compares sleep hours against IdealSleepHours. An empty input
// plots as 0.
func SleepSeries(sleepHours string) Series {
	return Series{
		Title:  "Sleep (hours)",
		Labels: [2]string{"Your Sleep", "Ideal Sleep"},
		Values: [2]float64{userValue(sleepHours), IdealSleepHours},
		Colors: [2]string{ColorUser, ColorReference},
	}
}

// Charts returns both comparison series for the form, calories first.
func (f FormInput) Charts() []Series {
	return []Series{CaloriesSeries(f.Calories), SleepSeries(f.SleepHours)}
}

func userValue(s string) float64 {
	v, ok := util.ParseNumber(s)
	if !ok {
		return 0
	}
	return v
}

// Max returns the larger finite value of the series, or 0.
func (s Series) Max() float64 {
	hi := 0.0
	for _, v := range s.Values {
		if finite(v) && v > hi {
			hi = v
		}
	}
	return hi
}

// ChartJS returns the series in the shape Chart.js expects for its "data"
// option. Non-finite values become null because JSON cannot carry them.
func (s Series) ChartJS() map[string]any {
	data := make([]any, len(s.Values))
	for i, v := range s.Values {
		if p := FiniteOrNil(v); p != nil {
			data[i] = *p
		}
	}
	return map[string]any{
		"labels": s.Labels,
		"datasets": []map[string]any{{
			"label":           s.Title,
			"data":            data,
			"backgroundColor": s.Colors,
		}},
	}
}

// MarshalJSON writes non-finite values as null.
func (s Series) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Title  string      `json:"title"`
		Labels [2]string   `json:"labels"`
		Values [2]*float64 `json:"values"`
		Colors [2]string   `json:"colors"`
	}{
		Title:  s.Title,
		Labels: s.Labels,
		Values: [2]*float64{FiniteOrNil(s.Values[0]), FiniteOrNil(s.Values[1])},
		Colors: s.Colors,
	})
}

// FiniteOrNil returns a pointer to v, or nil when v is NaN or ±Inf.
func FiniteOrNil(v float64) *float64 {
	if !finite(v) {
		return nil
	}
	return &v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
