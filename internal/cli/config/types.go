// Package config provides configuration management for the capilint CLI.
//
// This package layers CLI concerns (flags, environment, config file
// discovery) over the shared configuration types from internal/config,
// which are re-exported here via type aliases for convenience.
package config

import (
	sharedcfg "github.com/leapstack-labs/capilint/internal/config"
)

// Config is an alias for the shared configuration.
type Config = sharedcfg.Config

// LintConfig is an alias for the shared lint configuration.
type LintConfig = sharedcfg.LintConfig

// RulesConfig is an alias for the shared rules configuration.
type RulesConfig = sharedcfg.RulesConfig

// Default configuration values - uses shared defaults from internal/config
const (
	DefaultOutput    = sharedcfg.DefaultOutput
	DefaultStateFile = sharedcfg.DefaultStateFile
)

// EnvPrefix is the prefix of environment variables read by the loader.
// Nested keys use a double underscore: CAPILINT_STATE__PATH -> state.path.
const EnvPrefix = "CAPILINT_"

// flagKeys maps flag names to config keys where they differ from the
// kebab-to-snake conversion.
var flagKeys = map[string]string{
	"disable":           "lint.disabled",
	"set-severity":      "lint.severity",
	"permission-file":   "rules.permission_file",
	"syscap-file":       "rules.syscap_file",
	"permission":        "rules.extra_permissions",
	"syscap":            "rules.extra_syscaps",
	"extractor":         "extractor.command",
	"extractor-timeout": "extractor.timeout",
	"state":             "state.path",
	"record":            "state.record",
}

// pathFlags are flags holding paths that resolve against the working
// directory rather than the project root.
var pathFlags = []string{"permission-file", "syscap-file", "state"}
