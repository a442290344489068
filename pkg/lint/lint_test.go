package lint

import (
	"testing"

	"github.com/leapstack-labs/capilint/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for _, r := range Rules() {
		assert.False(t, seen[r.ID], "duplicate rule ID %s", r.ID)
		seen[r.ID] = true
		assert.NotEmpty(t, r.Description, "rule %s has no description", r.ID)
		assert.NotEmpty(t, r.Format, "rule %s has no message format", r.ID)
		assert.Contains(t, core.AllErrorKinds(), r.Kind, "rule %s has unknown kind", r.ID)
	}
	assert.Len(t, seen, len(catalog))
}

func TestGetRuleByID(t *testing.T) {
	r, ok := GetRuleByID(RuleUseLeftBrace)
	require.True(t, ok)
	assert.Equal(t, core.KindWrongScene, r.Kind)
	assert.Equal(t, core.SeverityError, r.Severity)

	_, ok = GetRuleByID("NOPE")
	assert.False(t, ok)
}

func TestMustRule_PanicsOnUnknown(t *testing.T) {
	assert.Panics(t, func() { MustRule("NOPE") })
	assert.NotPanics(t, func() { MustRule(RuleSinceValue) })
}

func TestAllRules_MatchesCatalogOrder(t *testing.T) {
	infos := AllRules()
	rules := Rules()
	require.Len(t, infos, len(rules))
	for i := range rules {
		assert.Equal(t, rules[i].ID, infos[i].ID)
		assert.Equal(t, rules[i].Severity, infos[i].DefaultSeverity)
	}
}

func TestRules_ReturnsCopy(t *testing.T) {
	rules := Rules()
	rules[0].ID = "CHANGED"

	r, ok := GetRuleByID(RuleNamingFunction)
	require.True(t, ok)
	assert.Equal(t, RuleNamingFunction, r.ID)
	assert.Equal(t, RuleNamingFunction, Rules()[0].ID)
}

func TestGetRulesByKindAndGroup(t *testing.T) {
	naming := GetRulesByKind(core.KindNamingError)
	assert.Len(t, naming, 11)
	for _, r := range naming {
		assert.Equal(t, "naming", r.Group)
	}

	assert.Len(t, GetRulesByKind(core.KindErrorTag), 1)
	assert.Empty(t, GetRulesByGroup("unknown"))
	assert.NotEmpty(t, GetRulesByGroup("file"))
}

func TestRule_Diagnose(t *testing.T) {
	tests := []struct {
		name     string
		ruleID   string
		args     []any
		expected string
	}{
		{"no args keeps format", RuleUseLeftBrace, nil, "the start tag { is used outside of a group"},
		{"args fill format", RuleParamValue, []any{2, 2}, "the name of param tag 2 does not match the name of parameter 2"},
		{"two string args", RuleFileHasOneLoseOther, []any{"file tag", "brief tag"}, "the file has a file tag but lacks the brief tag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := MustRule(tt.ruleID).Diagnose("OH_Foo", Position{Path: "a.h", Line: 3, Column: 5}, tt.args...)
			assert.Equal(t, tt.expected, d.Message)
			assert.Equal(t, tt.ruleID, d.RuleID)
			assert.Equal(t, "OH_Foo", d.Subject)
			assert.Equal(t, "a.h(line:3, col:5)", d.Location())
		})
	}
}

func TestDiagnostic_LocationWithoutLine(t *testing.T) {
	d := Diagnostic{FilePath: "native_sensor.h"}
	assert.Equal(t, "native_sensor.h", d.Location())
}

func TestNodePosition(t *testing.T) {
	n := &core.Node{Name: "foo.h"}
	assert.Equal(t, Position{Path: "foo.h"}, NodePosition(n))

	n.Location = &core.Location{Path: "inc/foo.h", Line: 7, Column: 1}
	assert.Equal(t, Position{Path: "inc/foo.h", Line: 7, Column: 1}, NodePosition(n))
}

func TestConfig(t *testing.T) {
	t.Run("nil config enables everything", func(t *testing.T) {
		var c *Config
		assert.False(t, c.IsDisabled(RuleSinceValue, core.KindWrongValue))
		assert.Equal(t, core.SeverityHint, c.GetSeverity(RuleSinceValue, core.KindWrongValue, core.SeverityHint))
	})

	t.Run("disable by rule ID", func(t *testing.T) {
		c := NewConfig().Disable(RuleSinceValue)
		assert.True(t, c.IsDisabled(RuleSinceValue, core.KindWrongValue))
		assert.False(t, c.IsDisabled(RuleSyscapValue, core.KindWrongValue))
	})

	t.Run("disable by kind", func(t *testing.T) {
		c := NewConfig().Disable(string(core.KindWrongValue))
		assert.True(t, c.IsDisabled(RuleSinceValue, core.KindWrongValue))
		assert.True(t, c.IsDisabled(RuleSyscapValue, core.KindWrongValue))
		assert.False(t, c.IsDisabled(RuleEmptyTag, core.KindEmptyTag))
	})

	t.Run("rule override wins over kind override", func(t *testing.T) {
		c := NewConfig().
			SetSeverity(string(core.KindWrongValue), core.SeverityInfo).
			SetSeverity(RuleSinceValue, core.SeverityHint)
		assert.Equal(t, core.SeverityHint, c.GetSeverity(RuleSinceValue, core.KindWrongValue, core.SeverityError))
		assert.Equal(t, core.SeverityInfo, c.GetSeverity(RuleSyscapValue, core.KindWrongValue, core.SeverityError))
	})
}

func TestConfig_Apply(t *testing.T) {
	pos := Position{Path: "a.h", Line: 1}
	diags := []Diagnostic{
		MustRule(RuleSinceValue).Diagnose("a", pos),
		MustRule(RuleUseUpperTag).Diagnose("b", pos, "Since", "since"),
		MustRule(RuleEmptyTag).Diagnose("c", pos, "since"),
		MustRule(RuleSyscapValue).Diagnose("d", pos),
	}

	c := NewConfig().Disable(RuleUseUpperTag).SetSeverity(string(core.KindWrongValue), core.SeverityWarning)
	got := c.Apply(diags)

	require.Len(t, got, 3)
	assert.Equal(t, []string{"a", "c", "d"}, []string{got[0].Subject, got[1].Subject, got[2].Subject})
	assert.Equal(t, core.SeverityWarning, got[0].Severity)
	assert.Equal(t, core.SeverityError, got[1].Severity)
	assert.Equal(t, core.SeverityWarning, got[2].Severity)

	// input untouched
	assert.Equal(t, core.SeverityError, diags[0].Severity)
}

func TestConfig_Validate(t *testing.T) {
	c := NewConfig().
		Disable(RuleEmptyTag).
		Disable("WRONG_SCENE").
		Disable("NOT_A_RULE").
		SetSeverity("ALSO_BAD", core.SeverityInfo)
	assert.Equal(t, []string{"ALSO_BAD", "NOT_A_RULE"}, c.Validate())
}

func TestSinkAndSummary(t *testing.T) {
	var s Sink
	pos := Position{Path: "a.h"}
	s.Add(MustRule(RuleSinceValue).Diagnose("x", pos))
	s.Add(MustRule(RuleUseUpperTag).Diagnose("y", pos, "Since", "since"), MustRule(RuleDeprecatedValue).Diagnose("z", pos, "deprecated"))

	require.Equal(t, 3, s.Len())
	assert.Equal(t, "x", s.Items()[0].Subject)
	assert.Equal(t, "z", s.Items()[2].Subject)

	sum := Summarize(s.Items())
	assert.Equal(t, Summary{Errors: 1, Warnings: 2}, sum)
	assert.Equal(t, 3, sum.Total())
	assert.True(t, HasErrors(s.Items()))
	assert.False(t, HasErrors(s.Items()[1:]))

	assert.Len(t, FilterBySeverity(s.Items(), core.SeverityError), 1)
	assert.Len(t, FilterBySeverity(s.Items(), core.SeverityWarning), 3)
}
