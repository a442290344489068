package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/capilint/internal/cli/config"
	"github.com/leapstack-labs/capilint/internal/cli/output"
	"github.com/leapstack-labs/capilint/internal/state"
	"github.com/leapstack-labs/capilint/internal/watcher"
	"github.com/leapstack-labs/capilint/pkg/apitree"
	"github.com/leapstack-labs/capilint/pkg/core"
	"github.com/leapstack-labs/capilint/pkg/lint"
	"github.com/leapstack-labs/capilint/pkg/lint/check"
	"github.com/leapstack-labs/capilint/pkg/lint/ruleset"
)

// errIssuesFound makes the process exit non-zero after diagnostics were reported.
var errIssuesFound = errors.New("lint issues found")

// CheckOptions holds options for the check command that are not part of the
// configuration file.
type CheckOptions struct {
	Format   string // Output format: text, markdown, json
	Severity string // Minimum severity: error, warning, info, hint
	Watch    bool   // Re-check when inputs change
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check <tree.json|dir>...",
		Short: "Check C API declaration trees for naming and doc tag compliance",
		Long: `Check declaration trees produced by a C header front end.

Every declaration is checked against its kind's naming convention, and every
doc comment is run through the tag checks: tag spelling, required values,
@param alignment, permission and syscap allow-lists, group braces and the
file-level @addtogroup/@file companions.

Directories are searched recursively for .json files.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Check one tree
  capilint check build/qos.json

  # Check every tree under a directory, as JSON
  capilint check build/trees --format json

  # Skip naming checks and downgrade since errors
  capilint check build/trees --disable NAMING_ERROR --set-severity ERROR_INFO_VALUE_SINCE=warning

  # Record the run and re-check on every change
  capilint check build/trees --record --watch`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().StringVar(&opts.Severity, "severity", "hint", "Minimum severity: error, warning, info, hint")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-check when inputs change")

	// Configuration overrides, merged by the config loader
	cmd.Flags().StringSlice("disable", nil, "Rule IDs or error kinds to disable")
	cmd.Flags().StringToString("set-severity", nil, "Severity overrides, e.g. WRONG_VALUE=warning")
	cmd.Flags().Int("workers", 0, "Files checked in parallel (default: number of CPUs)")
	cmd.Flags().String("permission-file", "", "Permission definitions file (JSON or YAML)")
	cmd.Flags().String("syscap-file", "", "Syscap list file (JSON or YAML)")
	cmd.Flags().StringSlice("permission", nil, "Additional allowed permissions")
	cmd.Flags().StringSlice("syscap", nil, "Additional allowed syscaps")
	cmd.Flags().String("extractor", "", "External doc tag extractor command (default: built-in parser)")
	cmd.Flags().Duration("extractor-timeout", 0, "Timeout of one extractor call")
	cmd.Flags().Bool("record", false, "Record the run in the history store")
	cmd.Flags().String("state", "", "Path to the history store")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "markdown", "json"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("severity", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"error", "warning", "info", "hint"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("disable", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		ids := make([]string, 0)
		for _, r := range lint.AllRules() {
			ids = append(ids, r.ID)
		}
		return ids, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, opts *CheckOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = newRenderer(cmd, opts.Format)
	}

	minSeverity, ok := core.ParseSeverity(opts.Severity)
	if !ok {
		return fmt.Errorf("invalid severity %q: want error, warning, info or hint", opts.Severity)
	}

	checker, err := newChecker(cmdCtx.Cfg, cmdCtx.Logger)
	if err != nil {
		return err
	}

	run := &checkRun{
		cfg:         cmdCtx.Cfg,
		logger:      cmdCtx.Logger,
		renderer:    r,
		checker:     checker,
		minSeverity: minSeverity,
		inputs:      args,
	}

	if opts.Watch {
		return run.watch(cmd.Context())
	}

	found, err := run.execute(cmd.Context())
	if err != nil {
		return err
	}
	if found {
		return errIssuesFound
	}
	return nil
}

// newChecker builds a checker from the configuration. Paths in cfg are
// already resolved by the config loader.
func newChecker(cfg *config.Config, logger *slog.Logger) (*check.Checker, error) {
	rules, err := ruleset.Load(cfg.Rules.Options(""))
	if err != nil {
		return nil, fmt.Errorf("failed to load rule tables: %w", err)
	}

	lintCfg, err := cfg.Lint.Build()
	if err != nil {
		return nil, fmt.Errorf("invalid lint configuration: %w", err)
	}
	for _, unknown := range lintCfg.Validate() {
		logger.Warn("unknown rule or error kind in lint configuration", "id", unknown)
	}

	extractor, err := newExtractor(cfg)
	if err != nil {
		return nil, err
	}

	return check.New(check.Config{
		Rules:     rules,
		Extractor: extractor,
		Lint:      lintCfg,
		Workers:   cfg.Workers,
		Logger:    logger,
	}), nil
}

// checkRun is one configured check invocation, executed once or on every
// change in watch mode.
type checkRun struct {
	cfg         *config.Config
	logger      *slog.Logger
	renderer    *output.Renderer
	checker     *check.Checker
	minSeverity core.Severity
	inputs      []string
}

// execute checks all inputs, records and renders the result. It reports
// whether any diagnostic remained after filtering.
func (c *checkRun) execute(ctx context.Context) (bool, error) {
	paths, err := collectTrees(c.inputs)
	if err != nil {
		return false, err
	}

	var files []*core.Node
	for _, path := range paths {
		trees, err := apitree.Load(path)
		if err != nil {
			return false, err
		}
		files = append(files, trees...)
	}
	c.logger.Debug("loaded declaration trees", "inputs", len(paths), "files", len(files))

	diags, err := c.checker.CheckFiles(ctx, files)
	if err != nil {
		return false, err
	}
	diags = lint.FilterBySeverity(diags, c.minSeverity)

	var runID string
	if c.cfg.State.Record {
		runID, err = c.record(ctx, len(files), diags)
		if err != nil {
			return false, err
		}
	}

	if err := renderDiagnostics(c.renderer, diags, len(files), runID); err != nil {
		return false, err
	}
	return len(diags) > 0, nil
}

func (c *checkRun) record(ctx context.Context, files int, diags []lint.Diagnostic) (string, error) {
	store, err := state.OpenStore(ctx, c.cfg.State.Path, c.logger)
	if err != nil {
		return "", fmt.Errorf("failed to open history store: %w", err)
	}
	defer func() { _ = store.Close() }()

	run, err := store.RecordRun(ctx, state.NewRun{
		Inputs:      c.inputs,
		Files:       files,
		Diagnostics: diags,
	})
	if err != nil {
		return "", err
	}
	c.logger.Debug("recorded run", "id", run.ID, "diagnostics", len(diags))
	return run.ID, nil
}

// watch checks once, then again after every change until interrupted.
func (c *checkRun) watch(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := c.execute(ctx); err != nil {
		c.renderer.Warning(err.Error())
	}

	w, err := watcher.New(c.inputs, func(ctx context.Context, changed []string) {
		c.renderer.Println(c.renderer.Muted(fmt.Sprintf("Change detected in %d file(s), re-checking", len(changed))))
		if _, err := c.execute(ctx); err != nil {
			c.renderer.Warning(err.Error())
		}
	},
		watcher.WithLogger(c.logger),
		watcher.WithOnError(func(err error) {
			c.logger.Warn("watch error", "error", err)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	c.renderer.Println(c.renderer.Muted("Watching for changes (Ctrl+C to stop)"))
	return w.Run(ctx)
}

// collectTrees expands inputs into declaration tree files. Directories are
// walked in lexical order, skipping hidden directories.
func collectTrees(inputs []string) ([]string, error) {
	var paths []string
	for _, in := range inputs {
		info, err := os.Stat(in)
		if err != nil {
			return nil, fmt.Errorf("failed to access input: %w", err)
		}
		if !info.IsDir() {
			paths = append(paths, in)
			continue
		}

		err = filepath.WalkDir(in, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != in && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.EqualFold(filepath.Ext(path), ".json") {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", in, err)
		}
	}

	if len(paths) == 0 {
		return nil, errors.New("no declaration trees found")
	}
	return paths, nil
}

// renderDiagnostics prints diagnostics in the renderer's mode.
func renderDiagnostics(r *output.Renderer, diags []lint.Diagnostic, files int, runID string) error {
	summary := lint.Summarize(diags)

	if r.EffectiveMode() == output.ModeJSON {
		if diags == nil {
			diags = []lint.Diagnostic{}
		}
		return r.JSON(output.CheckOutput{
			RunID:       runID,
			Files:       files,
			Summary:     output.NewCheckSummary(summary),
			Diagnostics: diags,
		})
	}

	if len(diags) == 0 {
		r.Success(fmt.Sprintf("No issues found in %d files", files))
	} else {
		s := r.Styles()
		for _, d := range diags {
			r.Printf("%s  %s  %s  %s\n",
				s.FilePath.Render(d.Location()),
				severityLabel(r, d.Severity),
				s.Bold.Render(d.RuleID),
				d.Message,
			)
		}
		r.Println("")
		r.Printf("Summary: %s in %d files\n", summaryText(summary), files)
	}

	if runID != "" {
		r.Println(r.Muted("Recorded run " + runID))
	}
	return nil
}

func severityLabel(r *output.Renderer, sev core.Severity) string {
	return r.Styles().Severity(sev).Render(fmt.Sprintf("%-7s", sev.String()))
}

func summaryText(s lint.Summary) string {
	parts := []string{fmt.Sprintf("%d issues", s.Total())}
	if s.Errors > 0 {
		parts = append(parts, fmt.Sprintf("%d errors", s.Errors))
	}
	if s.Warnings > 0 {
		parts = append(parts, fmt.Sprintf("%d warnings", s.Warnings))
	}
	if s.Infos > 0 {
		parts = append(parts, fmt.Sprintf("%d info", s.Infos))
	}
	if s.Hints > 0 {
		parts = append(parts, fmt.Sprintf("%d hints", s.Hints))
	}
	return strings.Join(parts, ", ")
}
