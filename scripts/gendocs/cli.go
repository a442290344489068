package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/capilint/internal/cli"
)

// generateCLIDocs writes an index page and one page per top-level command.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	root := cli.NewRootCmd()
	commands := visibleCommands(root)

	if err := writePage(outDir, "index.md", cliIndexPage(root, commands)); err != nil {
		return fmt.Errorf("failed to generate index: %w", err)
	}
	log.Printf("  Generated index.md")

	for _, cmd := range commands {
		if err := writePage(outDir, cmd.Name()+".md", commandPage(cmd, commands)); err != nil {
			return fmt.Errorf("failed to generate page for %s: %w", cmd.Name(), err)
		}
		log.Printf("  Generated %s.md", cmd.Name())
	}
	return nil
}

// visibleCommands returns the documented subcommands of cmd.
func visibleCommands(cmd *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, sub := range cmd.Commands() {
		if sub.Hidden || !sub.IsAvailableCommand() || sub.Name() == "help" {
			continue
		}
		out = append(out, sub)
	}
	return out
}

func writePage(outDir, name string, w *MarkdownWriter) error {
	return os.WriteFile(filepath.Join(outDir, name), w.Bytes(), 0600)
}

func commandLink(cmd *cobra.Command) string {
	return fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name())
}

func cliIndexPage(root *cobra.Command, commands []*cobra.Command) *MarkdownWriter {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Command-line interface reference for capilint")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph("capilint checks declaration trees of C headers against the API naming conventions and the doc tag rules, lists the rules it applies, and keeps a history of recorded runs.")

	w.Header(2, "Installation")
	w.CodeBlock("bash", "go install github.com/leapstack-labs/capilint/cmd/capilint@latest")

	w.Header(2, "Commands")
	rows := make([][]string, 0, len(commands))
	for _, cmd := range commands {
		rows = append(rows, []string{commandLink(cmd), cleanDescription(cmd.Short)})
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Global Options")
	writeFlagsTable(w, root.PersistentFlags())

	w.Header(2, "Configuration Precedence")
	w.Paragraph("Later sources override earlier ones:")
	w.BulletList([]string{
		"built-in defaults",
		InlineCode("capilint.yaml") + " found in the working directory or a parent",
		InlineCode("CAPILINT_*") + " environment variables",
		"flags given on the command line",
	})

	w.Header(2, "Environment Variables")
	w.Paragraph("Nested keys are joined with a double underscore:")
	w.Table([]string{"Variable", "Description"}, [][]string{
		{InlineCode("CAPILINT_OUTPUT"), "Default output format"},
		{InlineCode("CAPILINT_VERBOSE"), "Enable debug logging"},
		{InlineCode("CAPILINT_WORKERS"), "Number of files checked in parallel"},
		{InlineCode("CAPILINT_RULES__PERMISSION_FILE"), "Permission rule table"},
		{InlineCode("CAPILINT_RULES__SYSCAP_FILE"), "System capability rule table"},
		{InlineCode("CAPILINT_EXTRACTOR__COMMAND"), "External doc tag extractor command"},
		{InlineCode("CAPILINT_STATE__PATH"), "History store path"},
	})

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, [][]string{
		{InlineCode("0"), "No issues at or above the minimum severity"},
		{InlineCode("1"), "Issues found, or an error (check stderr for details)"},
	})
	return w
}

func commandPage(cmd *cobra.Command, all []*cobra.Command) *MarkdownWriter {
	w := NewMarkdownWriter()
	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, cmd.Name())
	desc := cmd.Long
	if desc == "" {
		desc = cmd.Short
	}
	w.Paragraph(desc)

	w.Header(2, "Usage")
	use := cmd.UseLine()
	if !strings.HasPrefix(use, "capilint") {
		use = "capilint " + use
	}
	w.CodeBlock("bash", use)

	if cmd.HasAvailableLocalFlags() {
		w.Header(2, "Options")
		writeFlagsTable(w, cmd.LocalFlags())
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", cleanExample(cmd.Example))
	}

	var related []string
	for _, other := range all {
		if other != cmd {
			related = append(related, commandLink(other))
		}
	}
	w.Header(2, "See Also")
	w.BulletList(append([]string{"[CLI Reference](/cli/)"}, related...))
	return w
}

// writeFlagsTable writes one row per visible flag.
func writeFlagsTable(w *MarkdownWriter, flags *pflag.FlagSet) {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		short := ""
		if f.Shorthand != "" {
			short = InlineCode("-" + f.Shorthand)
		}
		def := f.DefValue
		switch def {
		case "", "[]", "0", "0s", "false":
			def = ""
		default:
			def = InlineCode(def)
		}
		rows = append(rows, []string{
			InlineCode("--" + f.Name),
			short,
			f.Value.Type(),
			def,
			cleanDescription(f.Usage),
		})
	})
	w.Table([]string{"Option", "Short", "Type", "Default", "Description"}, rows)
}

// cleanExample strips the indentation shared by all non-blank lines.
func cleanExample(example string) string {
	lines := strings.Split(example, "\n")
	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	if indent > 0 {
		for i, line := range lines {
			if len(line) >= indent {
				lines[i] = line[indent:]
			} else {
				lines[i] = strings.TrimLeft(line, " \t")
			}
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
