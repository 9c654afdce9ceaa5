package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ftahirops/ncdadvisor/engine"
	"github.com/ftahirops/ncdadvisor/model"
)

// PageData is the template data for the advisor page.
type PageData struct {
	Theme       string
	ToggleLabel string

	Fields []model.Field
	Values map[model.Field]string

	BMI    string // "" hides the callout
	Notice string
	Alert  string // rendered as a blocking alert() on load

	Result     *model.AnalysisResult
	ResultJSON string // prior result, round-tripped through a hidden field
	Charts     []map[string]any
}

func newPageData(theme model.Theme, in model.FormInput) PageData {
	data := PageData{
		Theme:       theme.String(),
		ToggleLabel: theme.ToggleLabel(),
		Fields:      model.Fields,
		Values:      make(map[model.Field]string, len(model.Fields)),
	}
	for _, f := range model.Fields {
		data.Values[f] = in.Get(f)
	}
	if bmi, ok := in.BMI(); ok {
		data.BMI = model.FormatBMI(bmi)
	}
	return data
}

func (data *PageData) setResult(in model.FormInput, r *model.AnalysisResult) {
	if r == nil {
		return
	}
	data.Result = r
	if b, err := json.Marshal(r); err == nil {
		data.ResultJSON = string(b)
	}
	data.Charts = nil
	for _, s := range in.Charts() {
		data.Charts = append(data.Charts, s.ChartJS())
	}
}

// HandlePage renders the empty form.
func (d *Deps) HandlePage(w http.ResponseWriter, r *http.Request) {
	theme := model.ParseTheme(r.URL.Query().Get("theme"))
	d.render(w, http.StatusOK, newPageData(theme, model.FormInput{}))
}

// postedForm reads the field values and the prior result the page posts
// back. A prior result that does not decode is dropped.
func postedForm(r *http.Request) (model.FormInput, *model.AnalysisResult) {
	var in model.FormInput
	for _, f := range model.Fields {
		in = in.With(f, r.PostFormValue(string(f)))
	}

	var prior *model.AnalysisResult
	if raw := r.PostFormValue("result"); raw != "" {
		res, err := model.DecodeAnalysisResult([]byte(raw))
		if err != nil {
			slog.Debug("discarding invalid prior result", "request_id", requestLogID(r.Context()), "err", err)
		} else {
			prior = res
		}
	}
	return in, prior
}

// HandleSubmit runs one analysis for the posted form and re-renders the
// page. On failure the previous result, if the browser sent one back, stays
// on the page under a blocking alert.
func (d *Deps) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	theme := model.ParseTheme(r.PostFormValue("theme"))
	if q := r.URL.Query().Get("theme"); q != "" {
		theme = model.ParseTheme(q)
	}
	in, prior := postedForm(r)

	data := newPageData(theme, in)

	if missing := in.Missing(); len(missing) > 0 {
		data.Notice = "Please fill out this field: " + missing[0].Label()
		data.setResult(in, prior)
		d.render(w, http.StatusUnprocessableEntity, data)
		return
	}

	s := engine.Submit(r.Context(), d.Analyzer, engine.Submission{Result: prior}, in)
	if s.Err != nil {
		slog.Warn("analysis failed", "request_id", requestLogID(r.Context()), "err", s.Err)
		data.Alert = engine.UserMessage(s.Err)
	}
	data.setResult(in, s.Result)
	d.render(w, http.StatusOK, data)
}

// HandleTheme flips the theme and re-renders the page exactly as posted:
// inputs, BMI and the prior result are kept and nothing is analyzed.
func (d *Deps) HandleTheme(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	theme := model.ParseTheme(r.PostFormValue("theme")).Toggle()
	in, prior := postedForm(r)

	data := newPageData(theme, in)
	data.setResult(in, prior)
	d.render(w, http.StatusOK, data)
}

type analyzeResponse struct {
	Result     *model.AnalysisResult `json:"result"`
	BMI        *float64              `json:"bmi"`
	BMIDisplay string                `json:"bmi_display,omitempty"`
	Charts     []model.Series        `json:"charts"`
}

// HandleAnalyze is the JSON counterpart of HandleSubmit.
func (d *Deps) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var in model.FormInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		jsonError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if missing := in.Missing(); len(missing) > 0 {
		jsonError(w, "Please fill out this field: "+missing[0].Label(), http.StatusBadRequest)
		return
	}

	s := engine.Submit(r.Context(), d.Analyzer, engine.Submission{}, in)
	if s.Err != nil {
		slog.Warn("analysis failed", "request_id", requestLogID(r.Context()), "err", s.Err)
		jsonError(w, engine.UserMessage(s.Err), http.StatusBadGateway)
		return
	}

	resp := analyzeResponse{Result: s.Result, Charts: in.Charts()}
	if bmi, ok := in.BMI(); ok {
		resp.BMI = model.FiniteOrNil(bmi)
		resp.BMIDisplay = model.FormatBMI(bmi)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (d *Deps) render(w http.ResponseWriter, code int, data PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := d.Templates.ExecuteTemplate(w, "page.html", data); err != nil {
		slog.Error("template error", "err", err)
	}
}
