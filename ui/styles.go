package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/ftahirops/ncdadvisor/model"
)

var (
	// Colors
	colorUser      = lipgloss.Color(model.ColorUser)
	colorReference = lipgloss.Color(model.ColorReference)
	colorSuccess   = lipgloss.Color("#198754")
	colorInfo      = lipgloss.Color("#0DCAF0")
	colorDanger    = lipgloss.Color("#DC3545")
	colorGray      = lipgloss.Color("#6C757D")
)

// palette holds the theme-dependent colors.
type palette struct {
	fg        lipgloss.Color
	muted     lipgloss.Color
	headerBG  lipgloss.Color
	headerFG  lipgloss.Color
	border    lipgloss.Color
	focus     lipgloss.Color
	cardTitle lipgloss.Color
}

var (
	darkPalette = palette{
		fg:        lipgloss.Color("#F8F9FA"),
		muted:     lipgloss.Color("#ADB5BD"),
		headerBG:  lipgloss.Color("#000000"),
		headerFG:  lipgloss.Color("#FFFFFF"),
		border:    colorGray,
		focus:     colorInfo,
		cardTitle: lipgloss.Color("#FFFFFF"),
	}
	lightPalette = palette{
		fg:        lipgloss.Color("#212529"),
		muted:     colorGray,
		headerBG:  lipgloss.Color("#FFFFFF"),
		headerFG:  lipgloss.Color("#212529"),
		border:    lipgloss.Color("#CED4DA"),
		focus:     lipgloss.Color("#0D6EFD"),
		cardTitle: lipgloss.Color("#212529"),
	}
)

// styles is the full style set for one theme. Rebuilt on every toggle.
type styles struct {
	header      lipgloss.Style
	brand       lipgloss.Style
	card        lipgloss.Style
	title       lipgloss.Style
	label       lipgloss.Style
	focusLabel  lipgloss.Style
	text        lipgloss.Style
	dim         lipgloss.Style
	button      lipgloss.Style
	buttonFocus lipgloss.Style
	buttonOff   lipgloss.Style
	bmi         lipgloss.Style
	notice      lipgloss.Style
	alert       lipgloss.Style
	alertTitle  lipgloss.Style
	userBar     lipgloss.Style
	refBar      lipgloss.Style
	inputText   lipgloss.Style
	placeholder lipgloss.Style
}

func newStyles(t model.Theme) styles {
	p := darkPalette
	if !t.Dark() {
		p = lightPalette
	}
	return styles{
		header: lipgloss.NewStyle().
			Background(p.headerBG).
			Foreground(p.headerFG).
			Padding(0, 1),
		brand: lipgloss.NewStyle().Bold(true),
		card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Foreground(p.fg).
			Padding(0, 1),
		title:      lipgloss.NewStyle().Bold(true).Foreground(p.cardTitle),
		label:      lipgloss.NewStyle().Foreground(p.muted),
		focusLabel: lipgloss.NewStyle().Foreground(p.focus).Bold(true),
		text:       lipgloss.NewStyle().Foreground(p.fg),
		dim:        lipgloss.NewStyle().Foreground(p.muted),
		button: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorSuccess).
			Padding(0, 2),
		buttonFocus: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorSuccess).
			Bold(true).
			Underline(true).
			Padding(0, 2),
		buttonOff: lipgloss.NewStyle().
			Foreground(p.muted).
			Background(lipgloss.Color("#495057")).
			Padding(0, 2),
		bmi: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#055160")).
			Background(lipgloss.Color("#CFF4FC")).
			Bold(true).
			Padding(0, 1),
		notice: lipgloss.NewStyle().Foreground(colorDanger),
		alert: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorDanger).
			Foreground(p.fg).
			Padding(1, 3),
		alertTitle:  lipgloss.NewStyle().Foreground(colorDanger).Bold(true),
		userBar:     lipgloss.NewStyle().Foreground(colorUser),
		refBar:      lipgloss.NewStyle().Foreground(colorReference),
		inputText:   lipgloss.NewStyle().Foreground(p.fg),
		placeholder: lipgloss.NewStyle().Foreground(p.muted),
	}
}
