package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/capilint/internal/config"
)

// generateSchemaDocs generates the configuration reference.
func generateSchemaDocs(outDir string) error {
	log.Printf("Generating schema docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := generateConfigurationDoc(outDir); err != nil {
		return fmt.Errorf("failed to generate configuration.md: %w", err)
	}
	log.Printf("  Generated configuration.md")

	return nil
}

// ConfigField represents a configuration field definition.
type ConfigField struct {
	Key         string // dotted koanf key
	Type        string
	Description string
	Category    string // "general", "rules", "lint", "extractor", "state"
}

// getConfigSchema mirrors internal/config.Config.
func getConfigSchema() []ConfigField {
	return []ConfigField{
		{Key: "output", Type: "string", Description: "Output format: auto, text, markdown, json", Category: "general"},
		{Key: "verbose", Type: "bool", Description: "Log debug messages to stderr", Category: "general"},
		{Key: "workers", Type: "int", Description: "Files checked in parallel; 0 uses every CPU", Category: "general"},

		{Key: "rules.permission_file", Type: "string", Description: "Permission definitions replacing the built-in table (JSON or YAML)", Category: "rules"},
		{Key: "rules.syscap_file", Type: "string", Description: "System capability list replacing the built-in table (JSON or YAML)", Category: "rules"},
		{Key: "rules.extra_permissions", Type: "[]string", Description: "Permissions accepted in addition to the table", Category: "rules"},
		{Key: "rules.extra_syscaps", Type: "[]string", Description: "System capabilities accepted in addition to the table", Category: "rules"},

		{Key: "lint.disabled", Type: "[]string", Description: "Rule IDs or error kinds that are not reported", Category: "lint"},
		{Key: "lint.severity", Type: "map[string]string", Description: "Severity overrides keyed by rule ID or error kind", Category: "lint"},

		{Key: "extractor.command", Type: "string", Description: "External doc tag extractor; empty uses the built-in parser", Category: "extractor"},
		{Key: "extractor.timeout", Type: "duration", Description: "Time limit for one extractor call", Category: "extractor"},

		{Key: "state.path", Type: "string", Description: "Path of the run history store", Category: "state"},
		{Key: "state.record", Type: "bool", Description: "Record every check run in the history store", Category: "state"},
	}
}

var schemaSections = []struct {
	category string
	title    string
	intro    string
}{
	{"general", "General", "Top-level settings:"},
	{"rules", "Rule Tables", "Allow-lists for `@permission` and `@syscap` values. Relative paths resolve against the project root."},
	{"lint", "Lint", "Diagnostic selection. Keys accept a rule ID or an error kind; rule IDs win over kinds."},
	{"extractor", "Extractor", "How doc comments are split into tags:"},
	{"state", "State", "Run history recorded by `capilint check --record`:"},
}

// generateConfigurationDoc generates the configuration reference page.
func generateConfigurationDoc(outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Configuration", "capilint configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph(fmt.Sprintf("capilint reads %s (or %s) from the project root. Environment variables and command-line flags override the file.",
		InlineCode(config.ConfigFileName), InlineCode(config.ConfigFileNameAlt)))

	defaults := config.Defaults()
	fields := getConfigSchema()
	for _, section := range schemaSections {
		w.Header(2, section.title)
		w.Paragraph(section.intro)

		var rows [][]string
		for _, f := range fields {
			if f.Category != section.category {
				continue
			}
			def := ""
			if v, ok := defaults[f.Key]; ok && fmt.Sprint(v) != "" {
				def = InlineCode(fmt.Sprint(v))
			}
			rows = append(rows, []string{InlineCode(f.Key), f.Type, def, f.Description})
		}
		w.Table([]string{"Field", "Type", "Default", "Description"}, rows)
	}

	w.Header(2, "Example")
	w.CodeBlock("yaml", `output: markdown
workers: 4

rules:
  syscap_file: rules/syscap.json
  extra_permissions:
    - ohos.permission.CUSTOM

lint:
  disabled: [NAMING_ERROR]
  severity:
    ERROR_INFO_VALUE_SINCE: warning

extractor:
  command: node tools/parse-comments.js
  timeout: 10s

state:
  path: .capilint/history.db`)

	w.Header(2, "Environment Variables")
	w.Paragraph("Every key can be set from the environment with the `CAPILINT_` prefix. Nested keys use a double underscore, so `state.path` becomes `CAPILINT_STATE__PATH`.")

	return os.WriteFile(filepath.Join(outDir, "configuration.md"), w.Bytes(), 0600)
}
