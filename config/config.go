package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftahirops/ncdadvisor/util"
)

// Config holds user-configurable defaults.
type Config struct {
	Endpoint   string    `json:"endpoint"`
	TimeoutSec int       `json:"timeout_sec"` // 0 = wait until the transport gives up
	DarkMode   bool      `json:"dark_mode"`   // initial theme only; toggles are not saved
	LogFile    string    `json:"log_file,omitempty"`
	LogLevel   string    `json:"log_level,omitempty"`
	Web        WebConfig `json:"web"`
}

type WebConfig struct {
	Addr           string   `json:"addr"`
	AllowedOrigins []string `json:"allowed_origins"`
}

// Default returns a config with sensible defaults.
func Default() Config {
	return Config{
		Endpoint:   "http://127.0.0.1:8000/analyze",
		TimeoutSec: 0,
		DarkMode:   true,
		LogLevel:   "info",
		Web: WebConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
		},
	}
}

// Path returns ~/.config/ncdadvisor/config.json (or XDG_CONFIG_HOME).
// Returns empty string if home directory cannot be determined.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "ncdadvisor", "config.json")
}

// Load loads config from disk and applies environment overrides; returns
// defaults on error.
func Load() Config {
	cfg := Default()
	if p := Path(); p != "" {
		if data, err := os.ReadFile(p); err == nil {
			if err := json.Unmarshal(data, &cfg); err != nil {
				slog.Warn("config parse error, using defaults", "path", p, "err", err)
				cfg = Default()
			}
		}
	}
	ApplyEnv(&cfg, os.Getenv)
	return cfg
}

// ApplyEnv overrides cfg from environment variables. getenv is os.Getenv
// outside of tests.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv("NCDADVISOR_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := getenv("NCDADVISOR_TIMEOUT_SEC"); v != "" {
		if n := util.ParseInt(v); n >= 0 {
			cfg.TimeoutSec = n
		}
	}
	if v := getenv("NCDADVISOR_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := getenv("NCDADVISOR_WEB_ADDR"); v != "" {
		cfg.Web.Addr = v
	} else if v := getenv("PORT"); v != "" {
		cfg.Web.Addr = ":" + v
	}
	if v := getenv("NCDADVISOR_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.Web.AllowedOrigins = origins
	}
}

// Save writes the config to disk.
func Save(cfg Config) error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
