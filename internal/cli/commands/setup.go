package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/capilint/internal/cli/config"
	"github.com/leapstack-labs/capilint/internal/cli/output"
	"github.com/leapstack-labs/capilint/internal/commentparser"
	"github.com/leapstack-labs/capilint/pkg/lint/doctag"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the command's context.
// Commands executed without the root command load their configuration from
// their own flags.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg, err := getConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := config.GetLogger(cmd.Context())
	r := newRenderer(cmd, cfg.Output)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}, nil
}

// getConfig returns the configuration loaded by the root command, or loads it.
func getConfig(cmd *cobra.Command) (*config.Config, error) {
	if cfg := config.GetConfig(cmd.Context()); cfg != nil {
		return cfg, nil
	}
	return config.LoadConfig("", cmd.Flags())
}

// newRenderer creates a renderer writing to the command's outputs.
func newRenderer(cmd *cobra.Command, mode string) *output.Renderer {
	return output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(mode))
}

// newExtractor picks the tag extractor: an external command when one is
// configured, the built-in parser otherwise.
func newExtractor(cfg *config.Config) (doctag.Extractor, error) {
	if cfg.Extractor.Command == "" {
		return commentparser.NewParser(), nil
	}
	c, err := commentparser.NewCommand(cfg.Extractor.Command, cfg.Extractor.Timeout)
	if err != nil {
		return nil, err
	}
	return c, nil
}
