// Package lint provides the diagnostic vocabulary of capilint.
//
// # Architecture
//
// The lint package follows a layered architecture:
//
//  1. Root package (pkg/lint/): the diagnostic record, the rule catalog,
//     configuration and the ordered diagnostic sink
//  2. Naming subsystem (pkg/lint/naming/): identifier patterns per declaration kind
//  3. Doc tag subsystem (pkg/lint/doctag/): the per-file documentation tag state machine
//  4. Rule tables (pkg/lint/ruleset/): permission and syscap allow-lists
//  5. Checker (pkg/lint/check/): the tree walker tying the above together
//
// # Rule Catalog
//
// Every diagnostic the checker can emit is described by a Rule in a static
// catalog. Rules are grouped by their error kind:
//
//   - NAMING_ERROR: identifier fails the pattern for its declaration kind
//   - EMPTY_TAG: a tag that needs a value has none
//   - WRONG_VALUE: a tag value fails a format or allow-list check
//   - WRONG_SCENE: structural violations (braces, companion tags, param count)
//   - ERROR_TAG: a tag spelled with uppercase letters
//   - UNKNOWN_DEPRECATED: a malformed @deprecated tag
//
// Query the catalog:
//
//	rules := lint.AllRules()
//	rule, ok := lint.GetRuleByID("ERROR_USE_LEFT_BRACE")
//
// # Configuration
//
// Use Config to disable rules (by rule ID or whole error kind) and override severities:
//
//	config := lint.NewConfig()
//	config.Disable("USE_UPPER_TAG")
//	config.SetSeverity("WRONG_VALUE", core.SeverityWarning)
//	diags = config.Apply(diags)
package lint
