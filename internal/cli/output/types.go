package output

import (
	"time"

	"github.com/leapstack-labs/capilint/pkg/lint"
)

// CheckOutput is the JSON document of a check run.
type CheckOutput struct {
	RunID       string            `json:"run_id,omitempty"`
	Files       int               `json:"files"`
	Summary     CheckSummary      `json:"summary"`
	Diagnostics []lint.Diagnostic `json:"diagnostics"`
}

// CheckSummary counts diagnostics by severity.
type CheckSummary struct {
	Total    int `json:"total"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Info     int `json:"info"`
	Hints    int `json:"hints"`
}

// NewCheckSummary converts a lint summary.
func NewCheckSummary(s lint.Summary) CheckSummary {
	return CheckSummary{
		Total:    s.Total(),
		Errors:   s.Errors,
		Warnings: s.Warnings,
		Info:     s.Infos,
		Hints:    s.Hints,
	}
}

// RunOutput is one recorded run in JSON output.
type RunOutput struct {
	ID          string            `json:"id"`
	CreatedAt   time.Time         `json:"created_at"`
	Inputs      []string          `json:"inputs"`
	Files       int               `json:"files"`
	Summary     CheckSummary      `json:"summary"`
	Diagnostics []lint.Diagnostic `json:"diagnostics,omitempty"`
}
