package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ftahirops/ncdadvisor/engine"
	"github.com/ftahirops/ncdadvisor/model"
	"github.com/ftahirops/ncdadvisor/util"
)

// report is one analysis rendered for -json and -md.
type report struct {
	GeneratedAt time.Time             `json:"generated_at"`
	Input       model.FormInput       `json:"input"`
	BMI         *float64              `json:"bmi"`
	BMIDisplay  string                `json:"bmi_display,omitempty"`
	Result      *model.AnalysisResult `json:"result"`
	Charts      []model.Series        `json:"charts"`
}

func buildReport(in model.FormInput, result *model.AnalysisResult, now time.Time) report {
	r := report{
		GeneratedAt: now,
		Input:       in,
		Result:      result,
		Charts:      in.Charts(),
	}
	if bmi, ok := in.BMI(); ok {
		r.BMI = model.FiniteOrNil(bmi)
		r.BMIDisplay = model.FormatBMI(bmi)
	}
	return r
}

// runReport analyzes in once and writes the report to w.
func runReport(ctx context.Context, a engine.Analyzer, in model.FormInput, markdown bool, w io.Writer) error {
	if missing := in.Missing(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, f := range missing {
			names[i] = "-" + flagFor(f)
		}
		return fmt.Errorf("missing %s", strings.Join(names, ", "))
	}

	s := engine.Submit(ctx, a, engine.Submission{}, in)
	if s.Err != nil {
		return fmt.Errorf("%s: %w", engine.UserMessage(s.Err), s.Err)
	}

	r := buildReport(in, s.Result, time.Now())
	if markdown {
		_, err := fmt.Fprintln(w, renderMarkdownReport(r))
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func flagFor(f model.Field) string {
	if f == model.FieldSleepHours {
		return "sleep"
	}
	return string(f)
}

// renderMarkdownReport generates a shareable markdown summary.
func renderMarkdownReport(r report) string {
	var sb strings.Builder

	sb.WriteString("# NCD Lifestyle Report\n\n")
	sb.WriteString(fmt.Sprintf("**Generated:** %s\n\n", r.GeneratedAt.Format(time.RFC3339)))

	// Inputs
	sb.WriteString("## Inputs\n\n")
	sb.WriteString("| Field | Value |\n")
	sb.WriteString("|-------|-------|\n")
	for _, f := range model.Fields {
		sb.WriteString(fmt.Sprintf("| %s | %s |\n", f.Label(), r.Input.Get(f)))
	}
	if r.BMIDisplay != "" {
		sb.WriteString(fmt.Sprintf("\n**BMI:** %s\n", r.BMIDisplay))
	}

	// Rule-based findings
	sb.WriteString("\n## Rule-Based Analysis\n\n")
	if r.Result == nil || len(r.Result.RuleBasedAnalysis) == 0 {
		sb.WriteString("- None\n")
	} else {
		for _, item := range r.Result.RuleBasedAnalysis {
			sb.WriteString(fmt.Sprintf("- %s\n", item))
		}
	}

	// AI advice
	sb.WriteString("\n## AI Advice\n\n")
	if r.Result != nil && strings.TrimSpace(r.Result.AIAdvice) != "" {
		sb.WriteString(r.Result.AIAdvice)
		sb.WriteString("\n")
	} else {
		sb.WriteString("_No advice returned._\n")
	}

	// Comparison against reference values
	sb.WriteString("\n## Calories Intake & Sleep\n\n")
	sb.WriteString("| Metric | You | Reference |\n")
	sb.WriteString("|--------|-----|-----------|\n")
	for _, s := range r.Charts {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n",
			s.Title, util.FormatQuantity(s.Values[0]), util.FormatQuantity(s.Values[1])))
	}

	sb.WriteString("\n---\n*Generated by ncdadvisor*\n")
	return sb.String()
}
