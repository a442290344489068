package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/capilint/pkg/core"
	"github.com/leapstack-labs/capilint/pkg/lint"
	"github.com/leapstack-labs/capilint/pkg/lint/ruleset"
)

// Build converts the lint section into a lint.Config. Unknown severities are
// an error; unknown rule IDs are left to lint.Config.Validate.
func (c LintConfig) Build() (*lint.Config, error) {
	cfg := lint.NewConfig()
	for _, id := range c.Disabled {
		if id = strings.TrimSpace(id); id != "" {
			cfg.Disable(id)
		}
	}

	// sorted so the first bad entry reported is stable
	keys := make([]string, 0, len(c.Severity))
	for k := range c.Severity {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, id := range keys {
		sev, ok := core.ParseSeverity(c.Severity[id])
		if !ok {
			return nil, fmt.Errorf("invalid severity %q for %s", c.Severity[id], id)
		}
		cfg.SetSeverity(strings.TrimSpace(id), sev)
	}
	return cfg, nil
}

// Options converts the rules section into ruleset load options, resolving
// files against baseDir.
func (c RulesConfig) Options(baseDir string) ruleset.Options {
	return ruleset.Options{
		PermissionFile:   ResolvePath(c.PermissionFile, baseDir),
		SyscapFile:       ResolvePath(c.SyscapFile, baseDir),
		ExtraPermissions: c.ExtraPermissions,
		ExtraSyscaps:     c.ExtraSyscaps,
	}
}
