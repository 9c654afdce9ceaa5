package ui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ftahirops/ncdadvisor/engine"
	"github.com/ftahirops/ncdadvisor/model"
	"github.com/ftahirops/ncdadvisor/util"
)

// analysisMsg carries the outcome of one submission back to Update.
type analysisMsg struct {
	id     string
	result *model.AnalysisResult
	err    error
}

const fieldCount = 4

var placeholders = map[model.Field]string{
	model.FieldCalories:   "e.g. 1800",
	model.FieldSleepHours: "e.g. 7.5",
	model.FieldWeight:     "e.g. 70",
	model.FieldHeight:     "e.g. 175",
}

// Model is the bubbletea model. All state is owned here and only changed
// inside Update.
type Model struct {
	analyzer engine.Analyzer
	ctx      context.Context
	cancel   context.CancelFunc // cancels the in-flight request, if any

	width  int
	height int
	scroll int

	// Form
	form   model.FormInput
	inputs [fieldCount]textinput.Model
	focus  int // index into inputs; len(inputs) is the submit button
	notice string

	// Submission
	submission engine.Submission
	alert      string // blocking notification; "" when closed

	theme  model.Theme
	styles styles

	spinner spinner.Model
	help    help.Model
	keys    keyMap
}

// NewModel creates a new TUI model that submits through a.
func NewModel(a engine.Analyzer, opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot

	m := Model{
		analyzer: a,
		ctx:      ctx,
		theme:    opts.Theme,
		spinner:  s,
		help:     help.New(),
		keys:     newKeyMap(),
	}
	for i, f := range model.Fields {
		in := textinput.New()
		in.Placeholder = placeholders[f]
		in.Prompt = "› "
		in.CharLimit = 16
		in.Width = 20
		m.inputs[i] = in
	}
	m.applyTheme()
	m.inputs[0].Focus()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Form returns the current form values.
func (m Model) Form() model.FormInput { return m.form }

// Submission returns the current submission state.
func (m Model) Submission() engine.Submission { return m.submission }

// Theme returns the active theme.
func (m Model) Theme() model.Theme { return m.theme }

func (m *Model) applyTheme() {
	m.styles = newStyles(m.theme)
	m.spinner.Style = m.styles.focusLabel
	for i := range m.inputs {
		m.inputs[i].TextStyle = m.styles.inputText
		m.inputs[i].PlaceholderStyle = m.styles.placeholder
		m.inputs[i].PromptStyle = m.styles.label
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resizeInputs()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
		// The alert is modal: nothing else reacts until it is dismissed.
		if m.alert != "" {
			if key.Matches(msg, m.keys.Dismiss) {
				m.alert = ""
			}
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Theme):
			m.theme = m.theme.Toggle()
			m.applyTheme()
			return m, nil
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		case key.Matches(msg, m.keys.Next):
			cmd := m.setFocus(m.focus + 1)
			return m, cmd
		case key.Matches(msg, m.keys.Prev):
			cmd := m.setFocus(m.focus - 1)
			return m, cmd
		case key.Matches(msg, m.keys.PageDown):
			m.scroll += m.pageStep()
			return m, nil
		case key.Matches(msg, m.keys.PageUp):
			m.scroll -= m.pageStep()
			if m.scroll < 0 {
				m.scroll = 0
			}
			return m, nil
		}
		return m.updateInput(msg)

	case analysisMsg:
		return m.resolve(msg), nil

	case spinner.TickMsg:
		if !m.submission.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Cursor blink and other input-internal messages.
	if m.focus < len(m.inputs) {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

// updateInput forwards a key to the focused input, keeping only characters a
// numeric field accepts, then mirrors the input's text into the form.
func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.focus >= len(m.inputs) {
		return m, nil
	}
	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		var kept []rune
		for _, r := range msg.Runes {
			if util.IsNumericRune(r) {
				kept = append(kept, r)
			}
		}
		if len(kept) == 0 {
			return m, nil
		}
		msg.Type = tea.KeyRunes
		msg.Runes = kept
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.form = m.form.With(model.Fields[m.focus], m.inputs[m.focus].Value())
	if m.notice != "" && len(m.form.Missing()) == 0 {
		m.notice = ""
	}
	return m, cmd
}

// submit starts a request for the current form. Missing fields block the
// submission the way a required input does; a request already in flight
// makes the control inert.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.submission.Loading() {
		return m, nil
	}
	if missing := m.form.Missing(); len(missing) > 0 {
		m.notice = "Please fill out this field: " + missing[0].Label()
		for i, f := range model.Fields {
			if f == missing[0] {
				cmd := m.setFocus(i)
				return m, cmd
			}
		}
		return m, nil
	}

	id := engine.NewRequestID()
	next, ok := m.submission.Begin(id)
	if !ok {
		return m, nil
	}
	m.submission = next
	m.notice = ""

	ctx, cancel := context.WithCancel(m.ctx)
	m.cancel = cancel
	slog.Info("submitting form", "request_id", id)
	return m, tea.Batch(m.spinner.Tick, analyze(ctx, m.analyzer, id, m.form))
}

func analyze(ctx context.Context, a engine.Analyzer, id string, in model.FormInput) tea.Cmd {
	return func() tea.Msg {
		result, err := a.Analyze(engine.WithRequestID(ctx, id), in)
		return analysisMsg{id: id, result: result, err: err}
	}
}

// resolve applies a finished request. Outcomes of requests other than the
// pending one are dropped by the submission state.
func (m Model) resolve(msg analysisMsg) Model {
	if msg.id != m.submission.Pending() {
		slog.Debug("dropping stale analysis response", "request_id", msg.id)
		return m
	}
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.submission = m.submission.Resolve(msg.id, msg.result, msg.err)
	if msg.err != nil {
		slog.Warn("analysis failed", "request_id", msg.id, "err", msg.err)
		m.alert = engine.UserMessage(msg.err)
		return m
	}
	slog.Info("analysis received", "request_id", msg.id)
	return m
}

// setFocus moves focus to index i (wrapping), blurring the other inputs.
func (m *Model) setFocus(i int) tea.Cmd {
	n := len(m.inputs) + 1
	m.focus = ((i % n) + n) % n
	var cmd tea.Cmd
	for j := range m.inputs {
		if j == m.focus {
			cmd = m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return cmd
}

func (m *Model) resizeInputs() {
	w := pageWidth(m.width)/2 - 10
	if w < 8 {
		w = 8
	}
	if w > 30 {
		w = 30
	}
	for i := range m.inputs {
		m.inputs[i].Width = w
	}
}

func (m Model) pageStep() int {
	if m.height > 4 {
		return m.height / 2
	}
	return 1
}
