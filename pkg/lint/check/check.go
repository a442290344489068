// Package check walks declaration trees and collects naming and
// documentation diagnostics.
package check

import (
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/capilint/pkg/core"
	"github.com/leapstack-labs/capilint/pkg/lint"
	"github.com/leapstack-labs/capilint/pkg/lint/doctag"
	"github.com/leapstack-labs/capilint/pkg/lint/naming"
	"github.com/leapstack-labs/capilint/pkg/lint/ruleset"
)

// Config holds checker configuration.
type Config struct {
	// Rules are the permission and syscap allow-lists (embedded defaults if nil)
	Rules *ruleset.RuleSet
	// Extractor turns raw comments into tag blocks (optional, nil disables doc tag checks)
	Extractor doctag.Extractor
	// Lint filters diagnostics and overrides severities (optional)
	Lint *lint.Config
	// Workers bounds parallel file checks (defaults to GOMAXPROCS)
	Workers int
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// Checker checks declaration trees. It keeps no state between files and is
// safe for concurrent use.
type Checker struct {
	machine   *doctag.Machine
	extractor doctag.Extractor
	lint      *lint.Config
	workers   int
	logger    *slog.Logger
}

// New creates a Checker.
func New(cfg Config) *Checker {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	extractor := cfg.Extractor
	if extractor == nil {
		logger.Warn("no comment extractor configured, doc tag checks are disabled")
		extractor = doctag.ExtractorFunc(func(context.Context, string) ([]core.CommentBlock, error) {
			return nil, nil
		})
	}
	return &Checker{
		machine:   doctag.NewMachine(cfg.Rules),
		extractor: extractor,
		lint:      cfg.Lint,
		workers:   workers,
		logger:    logger,
	}
}

// CheckFile checks one file tree and returns its diagnostics in discovery
// order: file name, then every declaration depth-first, then the file
// completeness checks.
func (c *Checker) CheckFile(ctx context.Context, file *core.Node) []lint.Diagnostic {
	if file == nil {
		return nil
	}
	c.logger.Debug("checking file", "path", file.Path())

	var sink lint.Sink
	fs := doctag.NewFileState()

	sink.Add(naming.CheckFileName(file.Path())...)
	c.walk(ctx, &sink, fs, file)
	sink.Add(c.machine.FinishFile(fs, file)...)

	return c.lint.Apply(sink.Items())
}

// walk visits n before its children.
func (c *Checker) walk(ctx context.Context, sink *lint.Sink, fs *doctag.FileState, n *core.Node) {
	sink.Add(naming.CheckNode(n)...)

	if n.HasComment() {
		blocks, err := c.extractor.Extract(ctx, n.Comment)
		if err != nil {
			c.logger.Warn("failed to extract doc tags, skipping comment",
				"declaration", n.Name,
				"path", n.Path(),
				"error", err)
		} else {
			sink.Add(c.machine.ProcessComment(fs, n, blocks)...)
		}
	}

	for _, child := range n.Children {
		c.walk(ctx, sink, fs, child)
	}
}

// CheckFiles checks files in parallel. The result equals checking each file
// with CheckFile in input order. Cancellation is honoured between files.
func (c *Checker) CheckFiles(ctx context.Context, files []*core.Node) ([]lint.Diagnostic, error) {
	results := make([][]lint.Diagnostic, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = c.CheckFile(gctx, file)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []lint.Diagnostic
	for _, r := range results {
		all = append(all, r...)
	}
	c.logger.Debug("checked files", "files", len(files), "diagnostics", len(all))
	return all, nil
}
