package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/capilint/pkg/core"
	"github.com/leapstack-labs/capilint/pkg/lint"
)

// ruleGroups lists the catalog groups in page order.
var ruleGroups = []struct {
	name        string
	description string
}{
	{"naming", "Rules about declaration and file names. Each kind of declaration has its own pattern."},
	{"tag", "Rules about the values and placement of doc tags inside comments."},
	{"file", "Rules about the file-level doc comments every header must carry."},
}

var titleCase = cases.Title(language.English)

// generateLintDocs generates the rule reference: an index and one page per group.
func generateLintDocs(outDir string) error {
	log.Printf("Generating rule docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := generateRulesIndex(outDir); err != nil {
		return err
	}
	log.Printf("  Generated index.md")

	for _, g := range ruleGroups {
		if err := generateGroupPage(outDir, g.name, g.description); err != nil {
			return fmt.Errorf("failed to generate page for %s: %w", g.name, err)
		}
		log.Printf("  Generated %s.md", g.name)
	}
	return nil
}

// generateRulesIndex generates the rules overview page.
func generateRulesIndex(outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Rules", "Diagnostics reported by capilint")
	w.GeneratedMarker()

	w.Header(1, "Rules")
	w.Paragraph(fmt.Sprintf("capilint reports %s. Every rule belongs to one error kind, and both rule IDs and error kinds can be disabled or given a new severity.",
		Bold(fmt.Sprintf("%d rules", len(lint.Rules())))))

	w.Header(2, "Error Kinds")
	kindRows := make([][]string, 0, len(core.AllErrorKinds()))
	for _, kind := range core.AllErrorKinds() {
		kindRows = append(kindRows, []string{InlineCode(string(kind)), fmt.Sprintf("%d", len(lint.GetRulesByKind(kind)))})
	}
	w.Table([]string{"Kind", "Rules"}, kindRows)

	w.Header(2, "Severity Levels")
	w.Table(
		[]string{"Severity", "Description"},
		[][]string{
			{InlineCode("error"), "Violation of the API conventions"},
			{InlineCode("warning"), "Likely violation that should be reviewed"},
			{InlineCode("info"), "Informational feedback"},
			{InlineCode("hint"), "Suggestion for improvement"},
		},
	)

	w.Header(2, "Configuration")
	w.Paragraph("Rules can be configured in `capilint.yaml`:")
	w.CodeBlock("yaml", `lint:
  disabled:
    - NAMING_ERROR          # every rule of an error kind
    - ERROR_USE_LEFT_BRACE  # a single rule
  severity:
    ERROR_INFO_VALUE_SINCE: warning`)

	w.Header(2, "Rule Groups")
	rows := make([][]string, 0, len(ruleGroups))
	for _, g := range ruleGroups {
		link := fmt.Sprintf("[%s](/rules/%s)", titleCase.String(g.name), g.name)
		rows = append(rows, []string{link, fmt.Sprintf("%d", len(lint.GetRulesByGroup(g.name))), g.description})
	}
	w.Table([]string{"Group", "Rules", "Description"}, rows)

	return os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600)
}

// generateGroupPage documents every rule of one group, in catalog order.
func generateGroupPage(outDir, group, description string) error {
	rules := lint.GetRulesByGroup(group)
	title := titleCase.String(group) + " Rules"

	w := NewMarkdownWriter()
	w.Frontmatter(title, description)
	w.GeneratedMarker()

	w.Header(1, title)
	w.Paragraph(description)

	summary := make([][]string, 0, len(rules))
	for _, rule := range rules {
		summary = append(summary, []string{
			fmt.Sprintf("[%s](#%s)", InlineCode(rule.ID), rule.ID),
			InlineCode(string(rule.Kind)),
			InlineCode(rule.Severity.String()),
		})
	}
	w.Table([]string{"Rule", "Kind", "Severity"}, summary)

	for _, rule := range rules {
		writeRuleDoc(w, rule)
	}

	return os.WriteFile(filepath.Join(outDir, group+".md"), w.Bytes(), 0600)
}

// writeRuleDoc writes detailed documentation for a single rule.
func writeRuleDoc(w *MarkdownWriter, rule lint.Rule) {
	w.Header(2, rule.ID)

	w.BulletList([]string{
		Bold("Kind:") + " " + InlineCode(string(rule.Kind)),
		Bold("Scope:") + " " + InlineCode(string(rule.Scope)),
		Bold("Severity:") + " " + InlineCode(rule.Severity.String()),
	})

	w.Paragraph(cleanDescription(rule.Description))
	w.Paragraph("Message: " + InlineCode(rule.Format))

	if rule.BadExample != "" {
		w.Header(4, "Bad")
		w.CodeBlock("c", rule.BadExample)
	}
	if rule.GoodExample != "" {
		w.Header(4, "Good")
		w.CodeBlock("c", rule.GoodExample)
	}
}
