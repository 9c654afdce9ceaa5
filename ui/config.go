package ui

import (
	"context"

	"github.com/ftahirops/ncdadvisor/config"
	"github.com/ftahirops/ncdadvisor/model"
)

// Options configures a new Model.
type Options struct {
	Theme model.Theme
	// Context bounds every request; cancelling it aborts an in-flight one.
	Context context.Context
}

// OptionsFromConfig derives the initial UI state from the user config.
// Only the starting theme comes from disk; toggles are never written back.
func OptionsFromConfig(cfg config.Config) Options {
	opts := Options{Theme: model.ThemeDark}
	if !cfg.DarkMode {
		opts.Theme = model.ThemeLight
	}
	return opts
}
