package commands

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/capilint/internal/cli/output"
	"github.com/leapstack-labs/capilint/pkg/lint"
)

// BuildInfo is the version metadata set at build time.
type BuildInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Rules     int    `json:"rules"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(info BuildInfo) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the capilint version, build metadata and the size of the rule catalog.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info.GoVersion = runtime.Version()
			info.Rules = len(lint.Rules())

			r := rulesRenderer(cmd, format)
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(info)
			}
			r.Printf("capilint v%s\n", info.Version)
			r.Println("C API naming and doc tag compliance checker")
			r.Println(r.Muted("commit " + info.GitCommit + ", built " + info.BuildDate + " with " + info.GoVersion))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, json")
	return cmd
}
