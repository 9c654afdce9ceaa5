package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedResult is returned when an analysis response does not have the
// expected shape.
var ErrMalformedResult = errors.New("malformed analysis result")

// AnalysisResult is the body of a successful analysis response.
type AnalysisResult struct {
	RuleBasedAnalysis []string `json:"rule_based_analysis"`
	AIAdvice          string   `json:"ai_advice"`
}

// DecodeAnalysisResult parses and validates a response body. Both keys must be
// present: rule_based_analysis as an array of strings (possibly empty) and
// ai_advice as a string. Extra keys are ignored.
func DecodeAnalysisResult(data []byte) (*AnalysisResult, error) {
	var wire struct {
		RuleBasedAnalysis *[]string `json:"rule_based_analysis"`
		AIAdvice          *string   `json:"ai_advice"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResult, err)
	}
	if wire.RuleBasedAnalysis == nil {
		return nil, fmt.Errorf("%w: missing rule_based_analysis", ErrMalformedResult)
	}
	if wire.AIAdvice == nil {
		return nil, fmt.Errorf("%w: missing ai_advice", ErrMalformedResult)
	}
	return &AnalysisResult{
		RuleBasedAnalysis: *wire.RuleBasedAnalysis,
		AIAdvice:          *wire.AIAdvice,
	}, nil
}
