package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/capilint/internal/cli/output"
	"github.com/leapstack-labs/capilint/internal/state"
	"github.com/leapstack-labs/capilint/pkg/lint"
)

// shortIDLen is how much of a run ID the listing shows. Any unique prefix
// is accepted by 'history <run-id>'.
const shortIDLen = 8

// HistoryOptions holds options for the history command.
type HistoryOptions struct {
	Limit  int    // Number of runs to list
	Format string // Output format
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	opts := &HistoryOptions{}
	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recorded check runs",
		Long: `List check runs recorded with 'capilint check --record', most recent
first, or show the diagnostics of one run.

A run can be selected by its full ID or any unique prefix of it.`,
		Example: `  # List the last 20 runs
  capilint history

  # Show the diagnostics of one run
  capilint history 3f2a9c1e

  # List runs from another store as JSON
  capilint history --state ci/history.db --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, args, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "Number of runs to list (0 for all)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().String("state", "", "Path to the history store")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string, opts *HistoryOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = newRenderer(cmd, opts.Format)
	}

	path := cmdCtx.Cfg.State.Path
	if path != state.MemoryPath {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			if len(args) > 0 {
				return fmt.Errorf("run %q: %w", args[0], state.ErrRunNotFound)
			}
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON([]output.RunOutput{})
			}
			r.Println("No runs recorded yet. Use 'capilint check --record' to record one.")
			return nil
		}
	}

	store, err := state.OpenStore(cmd.Context(), path, cmdCtx.Logger)
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	defer func() { _ = store.Close() }()

	if len(args) > 0 {
		return showRun(cmd.Context(), r, store, args[0])
	}
	return listRuns(cmd.Context(), r, store, opts.Limit)
}

func listRuns(ctx context.Context, r *output.Renderer, store state.Store, limit int) error {
	runs, err := store.ListRuns(ctx, limit)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		out := make([]output.RunOutput, 0, len(runs))
		for _, run := range runs {
			out = append(out, runOutput(run, nil))
		}
		return r.JSON(out)
	}

	if len(runs) == 0 {
		r.Println("No runs recorded yet. Use 'capilint check --record' to record one.")
		return nil
	}

	r.Header(fmt.Sprintf("Recorded Runs (%d)", len(runs)))
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			shortID(run.ID),
			run.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			strconv.Itoa(run.Files),
			strconv.Itoa(run.Summary.Errors),
			strconv.Itoa(run.Summary.Warnings),
			strconv.Itoa(run.Summary.Total()),
			strings.Join(run.Inputs, ", "),
		})
	}
	r.Table([]string{"ID", "CREATED", "FILES", "ERRORS", "WARNINGS", "TOTAL", "INPUTS"}, rows)
	return nil
}

func showRun(ctx context.Context, r *output.Renderer, store state.Store, idOrPrefix string) error {
	run, err := store.GetRun(ctx, idOrPrefix)
	if err != nil {
		return fmt.Errorf("run %q: %w", idOrPrefix, err)
	}
	diags, err := store.GetRunDiagnostics(ctx, run.ID)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		if diags == nil {
			diags = []lint.Diagnostic{}
		}
		return r.JSON(runOutput(run, diags))
	}

	r.Header("Run " + run.ID)
	r.Println(r.Muted(fmt.Sprintf("Recorded %s for %s",
		run.CreatedAt.Local().Format("2006-01-02 15:04:05"),
		strings.Join(run.Inputs, ", "))))
	r.Println("")
	return renderDiagnostics(r, diags, run.Files, "")
}

func runOutput(run *state.Run, diags []lint.Diagnostic) output.RunOutput {
	return output.RunOutput{
		ID:          run.ID,
		CreatedAt:   run.CreatedAt,
		Inputs:      run.Inputs,
		Files:       run.Files,
		Summary:     output.NewCheckSummary(run.Summary),
		Diagnostics: diags,
	}
}

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}
