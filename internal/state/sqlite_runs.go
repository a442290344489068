package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/goccy/go-json"

	"github.com/leapstack-labs/capilint/pkg/core"
	"github.com/leapstack-labs/capilint/pkg/lint"
)

// timeLayout is fixed width so that created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// RecordRun stores a run and its diagnostics in one transaction.
func (s *SQLiteStore) RecordRun(ctx context.Context, in NewRun) (*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	run := &Run{
		ID:        generateID(),
		CreatedAt: time.Now().UTC(),
		Inputs:    in.Inputs,
		Files:     in.Files,
		Summary:   lint.Summarize(in.Diagnostics),
	}

	s.logger.Debug("recording run",
		slog.String("id", run.ID),
		slog.Int("files", run.Files),
		slog.Int("diagnostics", len(in.Diagnostics)))

	inputs, err := json.Marshal(run.Inputs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode inputs: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, inputs, files, errors, warnings, infos, hints)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt.Format(timeLayout), string(inputs), run.Files,
		run.Summary.Errors, run.Summary.Warnings, run.Summary.Infos, run.Summary.Hints,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert run: %w", err)
	}

	if len(in.Diagnostics) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO diagnostics (run_id, seq, rule_id, kind, severity, scope, message, file_path, line, col, subject)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return nil, fmt.Errorf("failed to prepare diagnostic insert: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for i, d := range in.Diagnostics {
			_, err := stmt.ExecContext(ctx,
				run.ID, i, d.RuleID, string(d.Kind), d.Severity.String(), string(d.Scope),
				d.Message, d.FilePath, d.Line, d.Column, d.Subject,
			)
			if err != nil {
				return nil, fmt.Errorf("failed to insert diagnostic %d: %w", i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit run: %w", err)
	}
	return run, nil
}

// ListRuns retrieves the most recent runs up to the given limit.
// A limit of zero or less returns every run.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, inputs, files, errors, warnings, infos, hints
		 FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// GetRun finds a run by full ID or unique ID prefix.
func (s *SQLiteStore) GetRun(ctx context.Context, idOrPrefix string) (*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	if idOrPrefix == "" {
		return nil, fmt.Errorf("%w: empty id", ErrRunNotFound)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, inputs, files, errors, warnings, infos, hints
		 FROM runs WHERE id = ? OR substr(id, 1, ?) = ? LIMIT 2`,
		idOrPrefix, len(idOrPrefix), idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var found []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		found = append(found, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, idOrPrefix)
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousRun, idOrPrefix)
	}
}

// GetRunDiagnostics returns the diagnostics of a run in recorded order.
func (s *SQLiteStore) GetRunDiagnostics(ctx context.Context, runID string) ([]lint.Diagnostic, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT rule_id, kind, severity, scope, message, file_path, line, col, subject
		 FROM diagnostics WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get diagnostics: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var diags []lint.Diagnostic
	for rows.Next() {
		var (
			d                     lint.Diagnostic
			kind, severity, scope string
		)
		if err := rows.Scan(&d.RuleID, &kind, &severity, &scope, &d.Message, &d.FilePath, &d.Line, &d.Column, &d.Subject); err != nil {
			return nil, fmt.Errorf("failed to scan diagnostic: %w", err)
		}
		sev, ok := core.ParseSeverity(severity)
		if !ok {
			return nil, fmt.Errorf("diagnostic has unknown severity %q", severity)
		}
		d.Kind = core.ErrorKind(kind)
		d.Severity = sev
		d.Scope = core.Scope(scope)
		diags = append(diags, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get diagnostics: %w", err)
	}
	return diags, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var (
		run       Run
		createdAt string
		inputs    string
	)
	err := row.Scan(&run.ID, &createdAt, &inputs, &run.Files,
		&run.Summary.Errors, &run.Summary.Warnings, &run.Summary.Infos, &run.Summary.Hints)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	run.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("run %s has invalid timestamp: %w", run.ID, err)
	}
	if err := json.Unmarshal([]byte(inputs), &run.Inputs); err != nil {
		return nil, fmt.Errorf("run %s has invalid inputs: %w", run.ID, err)
	}
	return &run, nil
}
