// Package state records capilint check runs in SQLite.
// It keeps the run summary and the ordered diagnostics of every recorded run.
package state

import (
	"context"
	"errors"
	"time"

	"github.com/leapstack-labs/capilint/pkg/lint"
)

// Lookup errors.
var (
	ErrRunNotFound  = errors.New("run not found")
	ErrAmbiguousRun = errors.New("run id prefix matches more than one run")
)

// Run is the summary of one recorded check run.
type Run struct {
	ID        string       `json:"id"`
	CreatedAt time.Time    `json:"created_at"`
	Inputs    []string     `json:"inputs"`
	Files     int          `json:"files"`
	Summary   lint.Summary `json:"summary"`
}

// NewRun is what the check command hands over to be recorded.
type NewRun struct {
	Inputs      []string
	Files       int
	Diagnostics []lint.Diagnostic
}

// Store persists check runs.
type Store interface {
	// RecordRun stores a run and its diagnostics atomically.
	RecordRun(ctx context.Context, run NewRun) (*Run, error)
	// ListRuns returns the most recent runs first.
	ListRuns(ctx context.Context, limit int) ([]*Run, error)
	// GetRun finds a run by full ID or unique ID prefix.
	GetRun(ctx context.Context, idOrPrefix string) (*Run, error)
	// GetRunDiagnostics returns a run's diagnostics in their original order.
	GetRunDiagnostics(ctx context.Context, runID string) ([]lint.Diagnostic, error)
	Close() error
}
