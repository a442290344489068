package lint

import (
	"sort"

	"github.com/leapstack-labs/capilint/pkg/core"
)

// Config controls which rules are enabled and their severity.
// Keys are rule IDs ("ERROR_USE_LEFT_BRACE") or error kinds ("WRONG_SCENE");
// a rule ID entry wins over an error kind entry.
type Config struct {
	// DisabledRules contains rule IDs or error kinds to skip
	DisabledRules map[string]bool

	// SeverityOverrides changes the default severity of rules
	SeverityOverrides map[string]core.Severity
}

// NewConfig creates a default configuration with all rules enabled.
func NewConfig() *Config {
	return &Config{
		DisabledRules:     make(map[string]bool),
		SeverityOverrides: make(map[string]core.Severity),
	}
}

// IsDisabled returns true if the rule should be skipped.
func (c *Config) IsDisabled(ruleID string, kind core.ErrorKind) bool {
	if c == nil {
		return false
	}
	return c.DisabledRules[ruleID] || c.DisabledRules[string(kind)]
}

// GetSeverity returns the severity for a rule, applying any override.
func (c *Config) GetSeverity(ruleID string, kind core.ErrorKind, defaultSeverity core.Severity) core.Severity {
	if c != nil {
		if sev, ok := c.SeverityOverrides[ruleID]; ok {
			return sev
		}
		if sev, ok := c.SeverityOverrides[string(kind)]; ok {
			return sev
		}
	}
	return defaultSeverity
}

// Disable disables a rule by ID or a whole error kind.
func (c *Config) Disable(key string) *Config {
	c.DisabledRules[key] = true
	return c
}

// SetSeverity overrides the severity for a rule ID or error kind.
func (c *Config) SetSeverity(key string, severity core.Severity) *Config {
	c.SeverityOverrides[key] = severity
	return c
}

// Apply drops disabled diagnostics and applies severity overrides.
// The relative order of the remaining diagnostics is preserved.
func (c *Config) Apply(diags []Diagnostic) []Diagnostic {
	if c == nil || (len(c.DisabledRules) == 0 && len(c.SeverityOverrides) == 0) {
		return diags
	}
	out := make([]Diagnostic, 0, len(diags))
	for _, d := range diags {
		if c.IsDisabled(d.RuleID, d.Kind) {
			continue
		}
		d.Severity = c.GetSeverity(d.RuleID, d.Kind, d.Severity)
		out = append(out, d)
	}
	return out
}

// Validate reports keys that name neither a known rule nor an error kind.
func (c *Config) Validate() []string {
	if c == nil {
		return nil
	}
	known := make(map[string]bool, len(catalog)+len(core.AllErrorKinds()))
	for _, r := range catalog {
		known[r.ID] = true
	}
	for _, k := range core.AllErrorKinds() {
		known[string(k)] = true
	}

	var unknown []string
	seen := make(map[string]bool)
	check := func(key string) {
		if !known[key] && !seen[key] {
			seen[key] = true
			unknown = append(unknown, key)
		}
	}
	for key := range c.DisabledRules {
		check(key)
	}
	for key := range c.SeverityOverrides {
		check(key)
	}
	sort.Strings(unknown)
	return unknown
}
