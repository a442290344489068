package lint

import "github.com/leapstack-labs/capilint/pkg/core"

// Rule IDs for naming checks.
const (
	RuleNamingFunction       = "NAMING_FUNCTION"
	RuleNamingStruct         = "NAMING_STRUCT"
	RuleNamingUnion          = "NAMING_UNION"
	RuleNamingEnum           = "NAMING_ENUM"
	RuleNamingVariable       = "NAMING_VARIABLE"
	RuleNamingGlobalVariable = "NAMING_GLOBAL_VARIABLE"
	RuleNamingParameter      = "NAMING_PARAMETER"
	RuleNamingField          = "NAMING_FIELD"
	RuleNamingMacro          = "NAMING_MACRO"
	RuleNamingEnumConstant   = "NAMING_ENUM_CONSTANT"
	RuleNamingFile           = "NAMING_FILE"
)

// Rule IDs for documentation tag checks.
const (
	RuleEmptyTag            = "EMPTY_TAG"
	RuleUseUpperTag         = "USE_UPPER_TAG"
	RuleRepeatFileTag       = "REPEAT_FILE_TAG"
	RuleDeprecatedValue     = "ERROR_INFO_VALUE_TAG"
	RuleLibraryValue        = "ERROR_INFO_VALUE_LIBRARY"
	RuleParamValue          = "ERROR_INFO_VALUE_PARAM"
	RuleParamCount          = "ERROR_INFO_COUNT_PARAM"
	RulePermissionValue     = "ERROR_INFO_VALUE_PERMISSION"
	RuleSinceValue          = "ERROR_INFO_VALUE_SINCE"
	RuleSyscapValue         = "ERROR_INFO_VALUE_SYSCAP"
	RuleUseLeftBrace        = "ERROR_USE_LEFT_BRACE"
	RuleUseRightBrace       = "ERROR_USE_RIGHT_BRACE"
	RuleRepeatLeftBrace     = "ERROR_REPEAT_LEFT_BRACE"
	RuleFileHasOneLoseOther = "ERROR_FILE_HAS_ONE_LOSE_OTHER"
	RuleFileLoseOne         = "ERROR_FILE_LOSE_ONE"
)

// catalog is the fixed, ordered list of every rule. It is never mutated.
var catalog = []Rule{
	// Naming
	{
		ID: RuleNamingFunction, Kind: core.KindNamingError, Scope: core.ScopeAPI, Group: "naming",
		Description: "Function names use PascalCase segments, optionally prefixed with OH_ or OS_",
		Format:      "function name [%s] does not follow the naming convention",
		Severity:    core.SeverityError,
		BadExample:  "void oh_get_value(void);",
		GoodExample: "void OH_Sensor_GetValue(void);",
	},
	{
		ID: RuleNamingStruct, Kind: core.KindNamingError, Scope: core.ScopeAPI, Group: "naming",
		Description: "Struct names use PascalCase",
		Format:      "struct name [%s] does not follow the naming convention",
		Severity:    core.SeverityError,
		BadExample:  "struct my_struct;",
		GoodExample: "struct MyStruct;",
	},
	{
		ID: RuleNamingUnion, Kind: core.KindNamingError, Scope: core.ScopeAPI, Group: "naming",
		Description: "Union names use PascalCase",
		Format:      "union name [%s] does not follow the naming convention",
		Severity:    core.SeverityError,
	},
	{
		ID: RuleNamingEnum, Kind: core.KindNamingError, Scope: core.ScopeAPI, Group: "naming",
		Description: "Enum names use PascalCase",
		Format:      "enum name [%s] does not follow the naming convention",
		Severity:    core.SeverityError,
	},
	{
		ID: RuleNamingVariable, Kind: core.KindNamingError, Scope: core.ScopeAPI, Group: "naming",
		Description: "Variable names use camelCase",
		Format:      "variable name [%s] does not follow the naming convention",
		Severity:    core.SeverityError,
	},
	{
		ID: RuleNamingGlobalVariable, Kind: core.KindNamingError, Scope: core.ScopeAPI, Group: "naming",
		Description: "Global variable names use g_ followed by camelCase",
		Format:      "global variable name [%s] does not follow the naming convention",
		Severity:    core.SeverityError,
		BadExample:  "extern int g_Counter;",
		GoodExample: "extern int g_counter;",
	},
	{
		ID: RuleNamingParameter, Kind: core.KindNamingError, Scope: core.ScopeAPI, Group: "naming",
		Description: "Parameter names use camelCase",
		Format:      "parameter name [%s] does not follow the naming convention",
		Severity:    core.SeverityError,
	},
	{
		ID: RuleNamingField, Kind: core.KindNamingError, Scope: core.ScopeAPI, Group: "naming",
		Description: "Struct and union field names use camelCase",
		Format:      "field name [%s] does not follow the naming convention",
		Severity:    core.SeverityError,
	},
	{
		ID: RuleNamingMacro, Kind: core.KindNamingError, Scope: core.ScopeAPI, Group: "naming",
		Description: "Macro names use UPPER_SNAKE_CASE",
		Format:      "macro name [%s] does not follow the naming convention",
		Severity:    core.SeverityError,
		BadExample:  "#define maxSize 10",
		GoodExample: "#define MAX_SIZE 10",
	},
	{
		ID: RuleNamingEnumConstant, Kind: core.KindNamingError, Scope: core.ScopeAPI, Group: "naming",
		Description: "Enum constant names use UPPER_SNAKE_CASE",
		Format:      "enum constant name [%s] does not follow the naming convention",
		Severity:    core.SeverityError,
	},
	{
		ID: RuleNamingFile, Kind: core.KindNamingError, Scope: core.ScopeFile, Group: "naming",
		Description: "Header file names use lowercase snake_case and end in .h",
		Format:      "file name [%s] does not follow the naming convention",
		Severity:    core.SeverityError,
		BadExample:  "NativeSensor.h",
		GoodExample: "native_sensor.h",
	},

	// Tags
	{
		ID: RuleEmptyTag, Kind: core.KindEmptyTag, Scope: core.ScopeDoc, Group: "tag",
		Description: "Tags that carry a value must not be empty",
		Format:      "the value of the [%s] tag is empty",
		Severity:    core.SeverityError,
		BadExample:  "@since",
		GoodExample: "@since 10",
	},
	{
		ID: RuleUseUpperTag, Kind: core.KindErrorTag, Scope: core.ScopeDoc, Group: "tag",
		Description: "Tag names are written in lowercase",
		Format:      "the [%s] tag should be written as [%s]",
		Severity:    core.SeverityWarning,
		BadExample:  "@Since 10",
		GoodExample: "@since 10",
	},
	{
		ID: RuleRepeatFileTag, Kind: core.KindWrongScene, Scope: core.ScopeDoc, Group: "file",
		Description: "@addtogroup and @file appear at most once per file",
		Format:      "the [%s] tag is repeated in one file",
		Severity:    core.SeverityError,
	},
	{
		ID: RuleDeprecatedValue, Kind: core.KindUnknownDeprecated, Scope: core.ScopeDoc, Group: "tag",
		Description: "@deprecated is written as '@deprecated since <version>'",
		Format:      "the value of the [%s] tag must be 'since <version>'",
		Severity:    core.SeverityWarning,
		BadExample:  "@deprecated use OH_Foo2 instead",
		GoodExample: "@deprecated since 11",
	},
	{
		ID: RuleLibraryValue, Kind: core.KindWrongValue, Scope: core.ScopeDoc, Group: "tag",
		Description: "@library names a .so or .a file, or NA",
		Format:      "the value of the library tag must end with .so or .a, or be NA",
		Severity:    core.SeverityError,
		BadExample:  "@library libsensor",
		GoodExample: "@library libsensor.so",
	},
	{
		ID: RuleParamValue, Kind: core.KindWrongValue, Scope: core.ScopeDoc, Group: "tag",
		Description: "@param tags name the function parameters in positional order",
		Format:      "the name of param tag %d does not match the name of parameter %d",
		Severity:    core.SeverityError,
	},
	{
		ID: RuleParamCount, Kind: core.KindWrongScene, Scope: core.ScopeDoc, Group: "tag",
		Description: "A function comment has exactly one @param tag per parameter",
		Format:      "the number of param tags does not match the number of function parameters",
		Severity:    core.SeverityError,
	},
	{
		ID: RulePermissionValue, Kind: core.KindWrongValue, Scope: core.ScopeDoc, Group: "tag",
		Description: "@permission only names allow-listed permissions joined with 'or'/'and'",
		Format:      "the value of the permission tag contains unknown permissions",
		Severity:    core.SeverityError,
		BadExample:  "@permission ohos.permission.FAKE",
		GoodExample: "@permission ohos.permission.HEALTH_DATA or ohos.permission.HEART_RATE",
	},
	{
		ID: RuleSinceValue, Kind: core.KindWrongValue, Scope: core.ScopeDoc, Group: "tag",
		Description: "@since is a numeric API version",
		Format:      "the value of the since tag must be a number",
		Severity:    core.SeverityError,
		BadExample:  "@since beta",
		GoodExample: "@since 10",
	},
	{
		ID: RuleSyscapValue, Kind: core.KindWrongValue, Scope: core.ScopeDoc, Group: "tag",
		Description: "@syscap names an allow-listed system capability",
		Format:      "the value of the syscap tag is not a known system capability",
		Severity:    core.SeverityError,
	},
	{
		ID: RuleUseLeftBrace, Kind: core.KindWrongScene, Scope: core.ScopeDoc, Group: "file",
		Description: "The group start tag '{' is only used inside an @addtogroup block",
		Format:      "the start tag { is used outside of a group",
		Severity:    core.SeverityError,
	},
	{
		ID: RuleUseRightBrace, Kind: core.KindWrongScene, Scope: core.ScopeDoc, Group: "file",
		Description: "The group end tag '}' closes an opened group exactly once",
		Format:      "the end tag } does not close an open group",
		Severity:    core.SeverityError,
	},
	{
		ID: RuleRepeatLeftBrace, Kind: core.KindWrongScene, Scope: core.ScopeDoc, Group: "file",
		Description: "The group start tag '{' appears once per group",
		Format:      "the start tag [%s] is repeated in one group",
		Severity:    core.SeverityError,
	},
	{
		ID: RuleFileHasOneLoseOther, Kind: core.KindWrongScene, Scope: core.ScopeDoc, Group: "file",
		Description: "Group and file docs carry their companion tags",
		Format:      "the file has a %s but lacks the %s",
		Severity:    core.SeverityError,
	},
	{
		ID: RuleFileLoseOne, Kind: core.KindWrongScene, Scope: core.ScopeFile, Group: "file",
		Description: "Every header has a group doc and a file doc",
		Format:      "the file lacks a %s",
		Severity:    core.SeverityError,
	},
}

var catalogIndex = func() map[string]int {
	idx := make(map[string]int, len(catalog))
	for i, r := range catalog {
		idx[r.ID] = i
	}
	return idx
}()

// Rules returns a copy of every rule in catalog order.
func Rules() []Rule {
	out := make([]Rule, len(catalog))
	copy(out, catalog)
	return out
}

// GetRuleByID returns a rule by its ID.
func GetRuleByID(id string) (Rule, bool) {
	i, ok := catalogIndex[id]
	if !ok {
		return Rule{}, false
	}
	return catalog[i], true
}

// MustRule returns the rule with the given ID and panics if it is missing.
// Only used with the package's own constants.
func MustRule(id string) Rule {
	r, ok := GetRuleByID(id)
	if !ok {
		panic("lint: unknown rule " + id)
	}
	return r
}

// AllRules returns metadata for all rules in catalog order.
func AllRules() []core.RuleInfo {
	rules := make([]core.RuleInfo, 0, len(catalog))
	for _, r := range catalog {
		rules = append(rules, r.Info())
	}
	return rules
}

// GetRulesByKind returns the rules of one error kind.
func GetRulesByKind(kind core.ErrorKind) []Rule {
	var rules []Rule
	for _, r := range catalog {
		if r.Kind == kind {
			rules = append(rules, r)
		}
	}
	return rules
}

// GetRulesByGroup returns the rules in a specific group.
func GetRulesByGroup(group string) []Rule {
	var rules []Rule
	for _, r := range catalog {
		if r.Group == group {
			rules = append(rules, r)
		}
	}
	return rules
}
