package config

import "github.com/leapstack-labs/capilint/internal/commentparser"

// Default configuration values.
const (
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultStateFile = ".capilint/history.db"
	DefaultWorkers   = 0 // 0 means GOMAXPROCS
)

// DefaultExtractorTimeout bounds one external extractor call.
const DefaultExtractorTimeout = commentparser.DefaultTimeout

// Defaults returns the default configuration as flat koanf keys.
func Defaults() map[string]any {
	return map[string]any{
		"output":            DefaultOutput,
		"verbose":           false,
		"workers":           DefaultWorkers,
		"extractor.command": "",
		"extractor.timeout": DefaultExtractorTimeout.String(),
		"state.path":        DefaultStateFile,
		"state.record":      false,
	}
}

// ApplyDefaults fills unset values of a Config.
func ApplyDefaults(c *Config) {
	if c == nil {
		return
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.Extractor.Timeout <= 0 {
		c.Extractor.Timeout = DefaultExtractorTimeout
	}
	if c.State.Path == "" {
		c.State.Path = DefaultStateFile
	}
}
