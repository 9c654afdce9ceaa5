package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ftahirops/ncdadvisor/model"
)

const appTitle = "🩺 NCD Lifestyle Advisor"

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.alert != "" {
		return m.renderAlert()
	}

	w := pageWidth(m.width)
	var sb strings.Builder
	sb.WriteString(m.renderHeader(w))
	sb.WriteString("\n")
	sb.WriteString(m.renderForm(w))
	if r := m.submission.Result; r != nil {
		sb.WriteString("\n")
		sb.WriteString(m.renderResults(r, w))
	}
	content := sb.String()

	// Apply scroll, clamped to the content
	lines := strings.Split(content, "\n")
	scroll := m.scroll
	if scroll >= len(lines) {
		scroll = len(lines) - 1
	}
	if scroll < 0 {
		scroll = 0
	}
	if scroll > 0 {
		lines = lines[scroll:]
	}
	// Trim to viewport height (leave room for the help line)
	maxLines := m.height - 2
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	content = strings.Join(lines, "\n")

	return content + "\n" + m.help.View(m.keys)
}

func (m Model) renderHeader(w int) string {
	st := m.styles
	left := st.brand.Render(appTitle)
	right := "ctrl+t " + m.theme.ToggleLabel()
	return st.header.Width(w).Render(styledPad(left, w-2-lipgloss.Width(right)) + right)
}

// renderForm draws the input grid, the submit control, any notice and the
// BMI callout.
func (m Model) renderForm(w int) string {
	st := m.styles
	inner := w - 4
	colW := inner / 2

	cell := func(i int) string {
		label := st.label
		if i == m.focus {
			label = st.focusLabel
		}
		return label.Render(model.Fields[i].Label()) + "\n" + m.inputs[i].View()
	}

	var rows []string
	for i := 0; i < len(m.inputs); i += 2 {
		left := lipgloss.NewStyle().Width(colW).Render(cell(i))
		right := ""
		if i+1 < len(m.inputs) {
			right = lipgloss.NewStyle().Width(inner - colW).Render(cell(i + 1))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	}

	var body strings.Builder
	body.WriteString(strings.Join(rows, "\n\n"))
	body.WriteString("\n\n")
	body.WriteString(m.renderButton())
	if m.notice != "" {
		body.WriteString("\n")
		body.WriteString(st.notice.Render(m.notice))
	}
	if bmi, ok := m.form.BMI(); ok {
		body.WriteString("\n\n")
		body.WriteString(st.bmi.Render("BMI: " + model.FormatBMI(bmi)))
	}
	return card("Health Inputs", body.String(), w, st)
}

func (m Model) renderButton() string {
	st := m.styles
	if m.submission.Loading() {
		return st.buttonOff.Render(m.spinner.View() + " Analyzing...")
	}
	if m.focus == len(m.inputs) {
		return st.buttonFocus.Render("Get Advice")
	}
	return st.button.Render("Get Advice")
}

// renderResults lays out the analysis list with the charts beside the AI
// advice, stacking the two columns on narrow terminals.
func (m Model) renderResults(r *model.AnalysisResult, w int) string {
	st := m.styles
	leftW, rightW := w, w
	twoCol := w >= minTwoColWidth
	if twoCol {
		leftW = w / 2
		rightW = w - leftW
	}

	var items []string
	for _, item := range r.RuleBasedAnalysis {
		items = append(items, st.text.Render("• "+item))
	}
	analysis := card("📋 Rule-Based Analysis", wrap(strings.Join(items, "\n"), leftW-4), leftW, st)

	var bars []string
	for _, s := range m.form.Charts() {
		bars = append(bars, barChart(s, leftW-4, st))
	}
	charts := card("Calories Intake & Sleep", strings.Join(bars, "\n\n"), leftW, st)

	advice := card("🤖 AI Advice", wrap(st.text.Render(r.AIAdvice), rightW-4), rightW, st)

	left := lipgloss.JoinVertical(lipgloss.Left, analysis, charts)
	if !twoCol {
		return lipgloss.JoinVertical(lipgloss.Left, left, advice)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, advice)
}

// renderAlert draws the blocking notification centered on screen.
func (m Model) renderAlert() string {
	st := m.styles
	body := st.alertTitle.Render("Request failed") + "\n\n" +
		st.text.Render(m.alert) + "\n\n" +
		st.dim.Render("press enter to dismiss")
	box := st.alert.Render(body)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// wrap soft-wraps s to width cells, keeping explicit line breaks.
func wrap(s string, width int) string {
	if width < 10 {
		width = 10
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}
