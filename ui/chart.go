package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ftahirops/ncdadvisor/model"
	"github.com/ftahirops/ncdadvisor/util"
)

// barChart renders a two-bar comparison with the legend on top. Bars share
// one scale: the larger finite value fills the full width.
//
//	■ Calories (kcal)
//	Your Intake  ████████████████████████░░░░░░░░   1,800
//	Recommended  ████████████████████████████████   2,200
func barChart(s model.Series, width int, st styles) string {
	const labelW = 12
	values := [2]string{util.FormatQuantity(s.Values[0]), util.FormatQuantity(s.Values[1])}
	valueW := 0
	for _, v := range values {
		if len(v) > valueW {
			valueW = len(v)
		}
	}

	barW := width - labelW - valueW - 3
	if barW < 8 {
		barW = 8
	}

	scale := s.Max()
	if scale <= 0 {
		scale = 1
	}

	barStyles := [2]lipgloss.Style{st.userBar, st.refBar}

	var sb strings.Builder
	sb.WriteString(st.userBar.Render("■") + " " + st.refBar.Render("■") + " " + st.text.Render(s.Title))
	for i := range s.Values {
		sb.WriteString("\n")
		sb.WriteString(st.label.Render(padRight(s.Labels[i], labelW)))
		sb.WriteString(" ")
		sb.WriteString(hbar(s.Values[i], scale, barW, barStyles[i], st.dim))
		sb.WriteString(" ")
		sb.WriteString(st.text.Render(padLeft(values[i], valueW)))
	}
	return sb.String()
}

// hbar renders v against scale as a width-cell bar. NaN, negative and
// infinite values draw an empty track; the numeric label still shows them.
func hbar(v, scale float64, width int, fill, track lipgloss.Style) string {
	filled := 0
	if v > 0 && !math.IsInf(v, 0) {
		filled = int(math.Round(v / scale * float64(width)))
	}
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return fill.Render(strings.Repeat("█", filled)) + track.Render(strings.Repeat("░", width-filled))
}
