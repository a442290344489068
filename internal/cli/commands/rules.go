package commands

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/capilint/internal/cli/config"
	"github.com/leapstack-labs/capilint/internal/cli/output"
	"github.com/leapstack-labs/capilint/pkg/core"
	"github.com/leapstack-labs/capilint/pkg/lint"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group   string // Filter by group: naming, tag, file
	Kind    string // Filter by error kind
	Verbose bool   // Show examples
	Format  string // Output format
}

// groupTitle renders group names as headings.
var groupTitle = cases.Title(language.English)

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List the diagnostics capilint reports",
		Long: `List every diagnostic rule with its error kind and default severity.

Rules are organized by group (naming, tag, file). Rule IDs and error kinds
can both be used with --disable and --set-severity.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # List all rules
  capilint rules

  # Show details for a specific rule
  capilint rules ERROR_INFO_VALUE_SINCE

  # List tag rules only
  capilint rules --group tag

  # List every rule of one error kind
  capilint rules --kind WRONG_SCENE

  # Output as JSON
  capilint rules --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group: naming, tag, file")
	cmd.Flags().StringVar(&opts.Kind, "kind", "", "Filter by error kind")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "V", false, "Show examples")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")

	return cmd
}

// rulesRenderer needs no configuration beyond the output mode, so rules and
// version also work outside a project with a broken config file.
func rulesRenderer(cmd *cobra.Command, format string) *output.Renderer {
	if format == "" {
		if cfg := config.GetConfig(cmd.Context()); cfg != nil {
			format = cfg.Output
		}
	}
	return newRenderer(cmd, format)
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	r := rulesRenderer(cmd, opts.Format)

	if opts.Kind != "" && !slices.Contains(core.AllErrorKinds(), core.ErrorKind(opts.Kind)) {
		return fmt.Errorf("unknown error kind %q", opts.Kind)
	}
	rules := filterRulesByOptions(lint.AllRules(), opts)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		if rules == nil {
			rules = []core.RuleInfo{}
		}
		return r.JSON(rules)
	default:
		return listRulesTable(r, rules, opts.Verbose)
	}
}

func filterRulesByOptions(rules []core.RuleInfo, opts *RulesOptions) []core.RuleInfo {
	if opts.Group == "" && opts.Kind == "" {
		return rules
	}

	var filtered []core.RuleInfo
	for _, r := range rules {
		if opts.Group != "" && r.Group != opts.Group {
			continue
		}
		if opts.Kind != "" && string(r.Kind) != opts.Kind {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// listRulesTable prints one table per group, in catalog order.
func listRulesTable(r *output.Renderer, rules []core.RuleInfo, verbose bool) error {
	r.Header(fmt.Sprintf("Lint Rules (%d)", len(rules)))
	if len(rules) == 0 {
		r.Println("No rules match the filter")
		return nil
	}

	var groups []string
	byGroup := make(map[string][]core.RuleInfo)
	for _, rule := range rules {
		if _, ok := byGroup[rule.Group]; !ok {
			groups = append(groups, rule.Group)
		}
		byGroup[rule.Group] = append(byGroup[rule.Group], rule)
	}

	for _, group := range groups {
		title := groupTitle.String(group) + " Rules"
		if r.EffectiveMode() == output.ModeMarkdown {
			r.Println("## " + title)
		} else {
			r.Println(r.Styles().Header2.Render(title))
		}
		r.Println("")

		header := []string{"ID", "KIND", "SCOPE", "SEVERITY", "DESCRIPTION"}
		if verbose {
			header = append(header, "EXAMPLE")
		}
		rows := make([][]string, 0, len(byGroup[group]))
		for _, rule := range byGroup[group] {
			row := []string{
				rule.ID,
				string(rule.Kind),
				string(rule.Scope),
				rule.DefaultSeverity.String(),
				rule.Description,
			}
			if verbose {
				row = append(row, rule.GoodExample)
			}
			rows = append(rows, row)
		}
		r.Table(header, rows)
		r.Println("")
	}

	r.Println(r.Muted("Use 'capilint rules <rule-id>' for details"))
	return nil
}

func showRule(cmd *cobra.Command, ruleID string, opts *RulesOptions) error {
	r := rulesRenderer(cmd, opts.Format)

	rule, ok := lint.GetRuleByID(strings.ToUpper(strings.TrimSpace(ruleID)))
	if !ok {
		return fmt.Errorf("rule %q not found", ruleID)
	}
	info := rule.Info()

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(info)
	case output.ModeMarkdown:
		return showRuleMarkdown(r, info, rule.Format)
	default:
		return showRuleText(r, info, rule.Format)
	}
}

func showRuleText(r *output.Renderer, rule core.RuleInfo, format string) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(rule.ID))
	r.Println("")
	r.Printf("  %s %s\n", styles.Bold.Render("Kind:"), rule.Kind)
	r.Printf("  %s %s\n", styles.Bold.Render("Scope:"), rule.Scope)
	r.Printf("  %s %s\n", styles.Bold.Render("Group:"), rule.Group)
	r.Printf("  %s %s\n", styles.Bold.Render("Severity:"), styles.Severity(rule.DefaultSeverity).Render(rule.DefaultSeverity.String()))
	r.Println("")
	r.Println("  " + rule.Description)
	r.Println("")
	r.Printf("  %s %s\n", styles.Bold.Render("Message:"), styles.Muted.Render(format))

	if rule.BadExample != "" {
		r.Println("")
		r.Println(styles.Error.Render("  Bad:"))
		r.Println("    " + rule.BadExample)
	}
	if rule.GoodExample != "" {
		r.Println("")
		r.Println(styles.Success.Render("  Good:"))
		r.Println("    " + rule.GoodExample)
	}
	r.Println("")
	return nil
}

func showRuleMarkdown(r *output.Renderer, rule core.RuleInfo, format string) error {
	r.Println("# " + rule.ID)
	r.Println("")
	r.Printf("- **Kind:** %s\n", rule.Kind)
	r.Printf("- **Scope:** %s\n", rule.Scope)
	r.Printf("- **Group:** %s\n", rule.Group)
	r.Printf("- **Severity:** %s\n", rule.DefaultSeverity)
	r.Println("")
	r.Println(rule.Description)
	r.Println("")
	r.Printf("Message: `%s`\n", format)

	if rule.BadExample != "" {
		r.Println("")
		r.Println("## Bad")
		r.Println("")
		r.Println("```c")
		r.Println(rule.BadExample)
		r.Println("```")
	}
	if rule.GoodExample != "" {
		r.Println("")
		r.Println("## Good")
		r.Println("")
		r.Println("```c")
		r.Println(rule.GoodExample)
		r.Println("```")
	}
	return nil
}
