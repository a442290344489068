// Package config provides shared configuration types for capilint.
// This package is decoupled from CLI concerns so that the checker can be
// configured the same way from any front end.
package config

import "time"

// RulesConfig points at the permission and syscap allow-lists.
type RulesConfig struct {
	// PermissionFile replaces the embedded permission definitions (JSON or YAML)
	PermissionFile string `koanf:"permission_file"`
	// SyscapFile replaces the embedded syscap list (JSON or YAML)
	SyscapFile string `koanf:"syscap_file"`

	ExtraPermissions []string `koanf:"extra_permissions"`
	ExtraSyscaps     []string `koanf:"extra_syscaps"`
}

// LintConfig holds diagnostic filtering configuration.
type LintConfig struct {
	// Disabled contains rule IDs or error kinds to disable
	Disabled []string `koanf:"disabled"`

	// Severity maps a rule ID or error kind to a severity (error, warning, info, hint)
	Severity map[string]string `koanf:"severity"`
}

// ExtractorConfig selects how comments are turned into tag blocks.
type ExtractorConfig struct {
	// Command runs an external extractor; empty uses the built-in parser
	Command string        `koanf:"command"`
	Timeout time.Duration `koanf:"timeout"`
}

// StateConfig controls the run history store.
type StateConfig struct {
	Path   string `koanf:"path"`
	Record bool   `koanf:"record"`
}

// Config holds all capilint configuration.
type Config struct {
	Output    string          `koanf:"output"`
	Verbose   bool            `koanf:"verbose"`
	Workers   int             `koanf:"workers"`
	Rules     RulesConfig     `koanf:"rules"`
	Lint      LintConfig      `koanf:"lint"`
	Extractor ExtractorConfig `koanf:"extractor"`
	State     StateConfig     `koanf:"state"`

	// ProjectRoot is the directory relative paths are resolved against.
	ProjectRoot string `koanf:"-"`
}
