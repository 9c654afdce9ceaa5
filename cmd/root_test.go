package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ftahirops/ncdadvisor/config"
	"github.com/ftahirops/ncdadvisor/engine"
	"github.com/ftahirops/ncdadvisor/logger"
	"github.com/ftahirops/ncdadvisor/model"
)

func TestParseFlags_DefaultsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Endpoint = "http://example.test/analyze"
	cfg.TimeoutSec = 7
	cfg.DarkMode = false

	opts, err := parseFlags(nil, cfg, io.Discard)
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if opts.Config.Endpoint != cfg.Endpoint || opts.Config.TimeoutSec != 7 {
		t.Errorf("config not carried through: %+v", opts.Config)
	}
	if !opts.Light || opts.Config.DarkMode {
		t.Error("light mode from config should be kept")
	}
	if opts.JSONMode || opts.MDMode || opts.WebAddr != "" {
		t.Errorf("no mode flags given, got %+v", opts)
	}
}

func TestParseFlags_Overrides(t *testing.T) {
	args := []string{
		"-json",
		"-calories", "1800", "-sleep", "6", "-weight", "70", "-height", "175",
		"-endpoint", "http://10.0.0.1:9000/analyze",
		"-timeout", "3",
		"-light",
		"-web", ":9999",
	}
	opts, err := parseFlags(args, config.Default(), io.Discard)
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	want := model.FormInput{Calories: "1800", SleepHours: "6", Weight: "70", Height: "175"}
	if opts.Form != want {
		t.Errorf("form = %+v, want %+v", opts.Form, want)
	}
	if opts.Config.Endpoint != "http://10.0.0.1:9000/analyze" || opts.Config.TimeoutSec != 3 {
		t.Errorf("config = %+v", opts.Config)
	}
	if opts.Config.DarkMode {
		t.Error("-light should clear DarkMode")
	}
	if opts.Config.Web.Addr != ":9999" {
		t.Errorf("web addr = %q", opts.Config.Web.Addr)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"json and md", []string{"-json", "-md"}},
		{"negative timeout", []string{"-timeout", "-1"}},
		{"positional", []string{"extra"}},
		{"unknown flag", []string{"-nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseFlags(tt.args, config.Default(), io.Discard); err == nil {
				t.Errorf("parseFlags(%v) should fail", tt.args)
			}
		})
	}
}

func TestParseFlags_Help(t *testing.T) {
	var buf bytes.Buffer
	_, err := parseFlags([]string{"-h"}, config.Default(), &buf)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("err = %v, want flag.ErrHelp", err)
	}
	if !strings.Contains(buf.String(), "Usage:") {
		t.Errorf("usage not printed:\n%s", buf.String())
	}
}

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	if err := run(Options{ShowVersion: true}, &out, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), Version) {
		t.Errorf("version output = %q", out.String())
	}
}

func TestRun_WriteConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg := config.Default()
	cfg.Endpoint = "http://saved.test/analyze"

	var out bytes.Buffer
	if err := run(Options{Config: cfg, WriteConfig: true}, &out, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := config.Load(); got.Endpoint != cfg.Endpoint {
		t.Errorf("saved endpoint = %q, want %q", got.Endpoint, cfg.Endpoint)
	}
}

func analysisServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

const okBody = `{"rule_based_analysis":["Calories are below the recommended intake."],"ai_advice":"Eat more protein."}`

var typicalInput = model.FormInput{Calories: "1800", SleepHours: "6", Weight: "70", Height: "175"}

func TestRunReport_JSON(t *testing.T) {
	logger.Discard()
	srv := analysisServer(t, http.StatusOK, okBody)
	client := engine.NewClient(srv.URL, 5*time.Second)

	var out bytes.Buffer
	if err := runReport(context.Background(), client, typicalInput, false, &out); err != nil {
		t.Fatalf("runReport: %v", err)
	}

	var got struct {
		Input  model.FormInput       `json:"input"`
		BMI    *float64              `json:"bmi"`
		Result *model.AnalysisResult `json:"result"`
		Charts []struct {
			Title  string    `json:"title"`
			Values []float64 `json:"values"`
		} `json:"charts"`
	}
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if got.Input != typicalInput {
		t.Errorf("input = %+v", got.Input)
	}
	if got.BMI == nil || *got.BMI != 22.9 {
		t.Errorf("bmi = %v, want 22.9", got.BMI)
	}
	if got.Result == nil || got.Result.AIAdvice != "Eat more protein." {
		t.Errorf("result = %+v", got.Result)
	}
	if len(got.Charts) != 2 || got.Charts[0].Values[0] != 1800 || got.Charts[1].Values[1] != 8 {
		t.Errorf("charts = %+v", got.Charts)
	}
}

func TestRunReport_Markdown(t *testing.T) {
	logger.Discard()
	srv := analysisServer(t, http.StatusOK, okBody)
	client := engine.NewClient(srv.URL, 5*time.Second)

	var out bytes.Buffer
	if err := runReport(context.Background(), client, typicalInput, true, &out); err != nil {
		t.Fatalf("runReport: %v", err)
	}
	md := out.String()
	for _, want := range []string{
		"# NCD Lifestyle Report",
		"| Calories Intake | 1800 |",
		"**BMI:** 22.9",
		"- Calories are below the recommended intake.",
		"Eat more protein.",
		"| Calories (kcal) | 1,800 | 2,200 |",
		"| Sleep (hours) | 6 | 8 |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestRunReport_Errors(t *testing.T) {
	logger.Discard()

	t.Run("missing fields", func(t *testing.T) {
		err := runReport(context.Background(), engine.NewClient("", time.Second),
			model.FormInput{Calories: "1800"}, false, io.Discard)
		if err == nil || !strings.Contains(err.Error(), "-sleep, -weight, -height") {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("backend error", func(t *testing.T) {
		srv := analysisServer(t, http.StatusInternalServerError, `{"detail":"boom"}`)
		err := runReport(context.Background(), engine.NewClient(srv.URL, 5*time.Second), typicalInput, false, io.Discard)
		if !errors.Is(err, engine.ErrBackendUnavailable) {
			t.Fatalf("err = %v, want ErrBackendUnavailable", err)
		}
		if !strings.Contains(err.Error(), "Backend not running") {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := analysisServer(t, http.StatusOK, `{"ai_advice":"only"}`)
		err := runReport(context.Background(), engine.NewClient(srv.URL, 5*time.Second), typicalInput, false, io.Discard)
		if !errors.Is(err, engine.ErrMalformedResponse) {
			t.Errorf("err = %v, want ErrMalformedResponse", err)
		}
	})
}

func TestRenderMarkdownReport_NoBMIOrFindings(t *testing.T) {
	r := buildReport(model.FormInput{Calories: "abc", SleepHours: "7"}, &model.AnalysisResult{}, time.Unix(0, 0).UTC())
	md := renderMarkdownReport(r)
	if strings.Contains(md, "**BMI:**") {
		t.Error("BMI should be omitted without weight and height")
	}
	if !strings.Contains(md, "- None") {
		t.Error("empty findings should render as None")
	}
	if !strings.Contains(md, "| Calories (kcal) | NaN | 2,200 |") {
		t.Errorf("non-numeric calories should render NaN:\n%s", md)
	}
	if !strings.Contains(md, "1970-01-01T00:00:00Z") {
		t.Error("timestamp missing")
	}
}
