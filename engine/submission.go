package engine

import (
	"context"
	"errors"

	"github.com/ftahirops/ncdadvisor/model"
)

// Status is the phase of the submission cycle.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Submission tracks one form's request/response cycle. Result is the last
// successful analysis and survives later failures; while a re-submission is
// loading the previous result stays visible.
type Submission struct {
	Status Status
	Result *model.AnalysisResult
	Err    error

	pending string
}

// Loading reports whether a request is in flight.
func (s Submission) Loading() bool { return s.Status == StatusLoading }

// Pending returns the ID of the in-flight request, or "".
func (s Submission) Pending() string { return s.pending }

// Begin moves to Loading for request id. It refuses (ok=false) while another
// request is in flight.
func (s Submission) Begin(id string) (next Submission, ok bool) {
	if s.Loading() {
		return s, false
	}
	s.Status = StatusLoading
	s.Err = nil
	s.pending = id
	return s, true
}

// Resolve folds the outcome of request id into s. Outcomes for any other ID
// are stale and ignored. A success replaces Result wholesale; a failure keeps
// the prior Result.
func (s Submission) Resolve(id string, result *model.AnalysisResult, err error) Submission {
	if !s.Loading() || id != s.pending {
		return s
	}
	s.pending = ""
	if err != nil {
		s.Status = StatusFailed
		s.Err = err
		return s
	}
	s.Status = StatusSucceeded
	s.Result = result
	s.Err = nil
	return s
}

// Submit runs one synchronous round trip through a and returns the resolved
// submission. It is the blocking counterpart of Begin/Resolve for callers
// that have no event loop.
func Submit(ctx context.Context, a Analyzer, s Submission, in model.FormInput) Submission {
	id := NewRequestID()
	next, ok := s.Begin(id)
	if !ok {
		return s
	}
	result, err := a.Analyze(WithRequestID(ctx, id), in)
	return next.Resolve(id, result, err)
}

// UserMessage turns a submission error into the one line shown to the user.
// The underlying cause is not exposed.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMalformedResponse):
		return "Backend sent an unexpected response 😓"
	default:
		return "Backend not running 😓"
	}
}
