package model

// Theme is the light/dark display mode. The zero value is dark.
type Theme int

const (
	ThemeDark Theme = iota
	ThemeLight
)

func (t Theme) String() string {
	if t == ThemeLight {
		return "light"
	}
	return "dark"
}

// Dark reports whether t is the dark theme.
func (t Theme) Dark() bool { return t != ThemeLight }

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t.Dark() {
		return ThemeLight
	}
	return ThemeDark
}

// ToggleLabel is the caption of the control that switches away from t.
func (t Theme) ToggleLabel() string {
	if t.Dark() {
		return "☀️ Light Mode"
	}
	return "🌙 Dark Mode"
}

// ParseTheme maps "light" to ThemeLight and anything else to ThemeDark.
func ParseTheme(s string) Theme {
	if s == "light" {
		return ThemeLight
	}
	return ThemeDark
}
