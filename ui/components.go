package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Layout constants.
const (
	minTwoColWidth = 90 // below this the results stack vertically
	maxPageWidth   = 140
)

// styledPad pads a styled string to the given visual width using spaces.
// Unlike fmt.Sprintf("%-Xs"), this accounts for ANSI escape codes.
func styledPad(styled string, width int) string {
	visW := lipgloss.Width(styled)
	if visW >= width {
		return styled
	}
	return styled + strings.Repeat(" ", width-visW)
}

// padRight pads s to width display cells, truncating with an ellipsis when
// it does not fit.
func padRight(s string, width int) string {
	if lipgloss.Width(s) > width {
		return truncate(s, width)
	}
	return s + strings.Repeat(" ", width-lipgloss.Width(s))
}

// padLeft right-aligns s in width display cells.
func padLeft(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", width-w) + s
}

// truncate shortens s to maxLen display cells with an ellipsis if needed.
func truncate(s string, maxLen int) string {
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	suffix := "…"
	if maxLen == 1 {
		suffix = ""
	}
	for len(runes) > 0 && lipgloss.Width(string(runes)+suffix) > maxLen {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + suffix
}

// card renders a bordered panel of total width w with a bold title line.
func card(title, body string, w int, st styles) string {
	if w < 14 {
		w = 14
	}
	content := body
	if title != "" {
		content = st.title.Render(title) + "\n" + body
	}
	// lipgloss widths include padding but not the border.
	return st.card.Width(w - st.card.GetHorizontalBorderSize()).Render(content)
}

// pageWidth returns the usable content width for a terminal width.
func pageWidth(termWidth int) int {
	w := termWidth - 2
	if w > maxPageWidth {
		w = maxPageWidth
	}
	if w < 30 {
		w = 30
	}
	return w
}
