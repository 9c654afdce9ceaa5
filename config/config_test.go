package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Endpoint != "http://127.0.0.1:8000/analyze" {
		t.Errorf("endpoint = %q", cfg.Endpoint)
	}
	if cfg.TimeoutSec != 0 {
		t.Errorf("timeout = %d, want 0 (unbounded)", cfg.TimeoutSec)
	}
	if !cfg.DarkMode {
		t.Error("dark mode should be the default")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("NCDADVISOR_ENDPOINT", "")
	t.Setenv("NCDADVISOR_WEB_ADDR", "")
	t.Setenv("PORT", "")

	cfg := Default()
	cfg.Endpoint = "http://10.0.0.5:9000/analyze"
	cfg.DarkMode = false
	if err := Save(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "ncdadvisor", "config.json")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	got := Load()
	if got.Endpoint != cfg.Endpoint || got.DarkMode {
		t.Errorf("loaded %+v", got)
	}
}

func TestLoad_BadFileFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("NCDADVISOR_ENDPOINT", "")
	os.MkdirAll(filepath.Join(dir, "ncdadvisor"), 0700)
	os.WriteFile(filepath.Join(dir, "ncdadvisor", "config.json"), []byte("{not json"), 0600)

	if got := Load(); got.Endpoint != Default().Endpoint {
		t.Errorf("endpoint = %q, want default", got.Endpoint)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"NCDADVISOR_ENDPOINT":        "http://svc/analyze",
		"NCDADVISOR_TIMEOUT_SEC":     "15",
		"NCDADVISOR_LOG_FILE":        "/tmp/ncd.log",
		"LOG_LEVEL":                  "DEBUG",
		"PORT":                       "9999",
		"NCDADVISOR_ALLOWED_ORIGINS": "http://a.test, http://b.test",
	}
	cfg := Default()
	ApplyEnv(&cfg, func(k string) string { return env[k] })

	if cfg.Endpoint != "http://svc/analyze" || cfg.TimeoutSec != 15 {
		t.Errorf("endpoint/timeout = %q/%d", cfg.Endpoint, cfg.TimeoutSec)
	}
	if cfg.LogFile != "/tmp/ncd.log" || cfg.LogLevel != "debug" {
		t.Errorf("log = %q/%q", cfg.LogFile, cfg.LogLevel)
	}
	if cfg.Web.Addr != ":9999" {
		t.Errorf("PORT fallback: addr = %q", cfg.Web.Addr)
	}
	if !reflect.DeepEqual(cfg.Web.AllowedOrigins, []string{"http://a.test", "http://b.test"}) {
		t.Errorf("origins = %v", cfg.Web.AllowedOrigins)
	}

	env["NCDADVISOR_WEB_ADDR"] = "127.0.0.1:7000"
	cfg = Default()
	ApplyEnv(&cfg, func(k string) string { return env[k] })
	if cfg.Web.Addr != "127.0.0.1:7000" {
		t.Errorf("explicit addr should win over PORT, got %q", cfg.Web.Addr)
	}
}

func TestApplyEnv_Empty(t *testing.T) {
	cfg := Default()
	ApplyEnv(&cfg, func(string) string { return "" })
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("empty env changed config: %+v", cfg)
	}
}
