// Package naming validates C identifiers against the naming convention of
// their declaration kind.
package naming

import (
	"regexp"
	"strings"

	"github.com/leapstack-labs/capilint/pkg/core"
	"github.com/leapstack-labs/capilint/pkg/lint"
)

// Pattern is an anchored naming convention bound to the rule it reports.
type Pattern struct {
	Name   string
	RuleID string
	re     *regexp.Regexp
}

// Match reports whether name follows the pattern.
func (p Pattern) Match(name string) bool {
	return p.re.MatchString(name)
}

// String returns the regular expression source.
func (p Pattern) String() string {
	return p.re.String()
}

// Naming conventions.
var (
	Function = Pattern{
		Name:   "function",
		RuleID: lint.RuleNamingFunction,
		re:     regexp.MustCompile(`^((OH|OS)_)?[A-Z][A-Za-z0-9]*(_[A-Z][A-Za-z0-9]*)*$`),
	}
	Struct         = pascal("struct", lint.RuleNamingStruct)
	Union          = pascal("union", lint.RuleNamingUnion)
	Enum           = pascal("enum", lint.RuleNamingEnum)
	Variable       = camel("variable", lint.RuleNamingVariable)
	Parameter      = camel("parameter", lint.RuleNamingParameter)
	Field          = camel("field", lint.RuleNamingField)
	GlobalVariable = Pattern{
		Name:   "global variable",
		RuleID: lint.RuleNamingGlobalVariable,
		re:     regexp.MustCompile(`^g_[a-z][A-Za-z0-9]*$`),
	}
	Macro        = upperSnake("macro", lint.RuleNamingMacro)
	EnumConstant = upperSnake("enum constant", lint.RuleNamingEnumConstant)
	File         = Pattern{
		Name:   "file",
		RuleID: lint.RuleNamingFile,
		re:     regexp.MustCompile(`^[a-z]+[a-z0-9]+(_[a-z0-9]+)*\.h$`),
	}
)

var (
	pascalCase     = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)
	camelCase      = regexp.MustCompile(`^[a-z][A-Za-z0-9]*$`)
	upperSnakeCase = regexp.MustCompile(`^[A-Z]+[0-9]*(_[A-Z0-9]+)*$`)
)

func pascal(name, ruleID string) Pattern {
	return Pattern{Name: name, RuleID: ruleID, re: pascalCase}
}

func camel(name, ruleID string) Pattern {
	return Pattern{Name: name, RuleID: ruleID, re: camelCase}
}

func upperSnake(name, ruleID string) Pattern {
	return Pattern{Name: name, RuleID: ruleID, re: upperSnakeCase}
}

// globalPrefix marks a variable that must follow the global convention.
const globalPrefix = "g_"

// Classify returns the naming pattern for a node. The second result is false
// for kinds that carry no naming rule (files and unknown declarations).
func Classify(n *core.Node) (Pattern, bool) {
	switch n.Kind {
	case core.KindFunction:
		return Function, true
	case core.KindStruct:
		return Struct, true
	case core.KindUnion:
		return Union, true
	case core.KindEnum:
		return Enum, true
	case core.KindVariable:
		if strings.HasPrefix(n.Name, globalPrefix) {
			return GlobalVariable, true
		}
		return Variable, true
	case core.KindParameter:
		return Parameter, true
	case core.KindField:
		return Field, true
	case core.KindMacro:
		return Macro, true
	case core.KindEnumConstant:
		return EnumConstant, true
	case core.KindFile, core.KindUnknown:
		// no naming rule
	}
	return Pattern{}, false
}

// CheckNode validates the identifier of a single node. Anonymous
// declarations and kinds without a pattern produce nothing.
func CheckNode(n *core.Node) []lint.Diagnostic {
	if n == nil || n.Name == "" {
		return nil
	}
	p, ok := Classify(n)
	if !ok || p.Match(n.Name) {
		return nil
	}
	return []lint.Diagnostic{
		lint.MustRule(p.RuleID).Diagnose(n.Name, lint.NodePosition(n), n.Name),
	}
}

// CheckFileName validates the base name of a header path.
func CheckFileName(path string) []lint.Diagnostic {
	base := path
	// front ends on Windows report backslash paths
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	if File.Match(base) {
		return nil
	}
	return []lint.Diagnostic{
		lint.MustRule(File.RuleID).Diagnose(base, lint.Position{Path: path}, base),
	}
}
