package doctag

import (
	"regexp"
	"strings"

	"github.com/leapstack-labs/capilint/pkg/core"
	"github.com/leapstack-labs/capilint/pkg/lint"
	"github.com/leapstack-labs/capilint/pkg/lint/ruleset"
)

// blockContext is what a tag processor sees while one comment block is
// processed for one declaration.
type blockContext struct {
	rules *ruleset.RuleSet
	file  *FileState
	doc   *DocState
	node  *core.Node
	pos   lint.Position
}

func (c *blockContext) report(ruleID string, args ...any) lint.Diagnostic {
	return lint.MustRule(ruleID).Diagnose(c.node.Name, c.pos, args...)
}

// processTag validates a single tag occurrence.
func processTag(c *blockContext, name TagName, tag core.Tag) []lint.Diagnostic {
	switch name {
	case TagAddToGroup:
		return processAddToGroup(c, tag)
	case TagGroupStart:
		return processGroupStart(c)
	case TagGroupEnd:
		return processGroupEnd(c)
	case TagBrief:
		c.doc.Brief = tag.Value()
		return nil
	case TagDeprecated:
		return processDeprecated(c, tag)
	case TagFile:
		return processFile(c, tag)
	case TagLibrary:
		return processLibrary(c, tag)
	case TagParam:
		return processParam(c, tag)
	case TagPermission:
		return processPermission(c, tag)
	case TagReturn:
		return nil
	case TagSince:
		return processSince(c, tag)
	case TagSyscap:
		return processSyscap(c, tag)
	case TagUnknown:
		// unchecked
	}
	return nil
}

func processAddToGroup(c *blockContext, tag core.Tag) []lint.Diagnostic {
	if tag.Name == "" {
		return []lint.Diagnostic{c.report(lint.RuleEmptyTag, TagAddToGroup)}
	}
	return nil
}

func processGroupStart(c *blockContext) []lint.Diagnostic {
	if !c.file.InGroupScope {
		return []lint.Diagnostic{c.report(lint.RuleUseLeftBrace)}
	}
	return nil
}

// processGroupEnd closes an opened group. A "}" in any other group state is
// misplaced and leaves the state unchanged.
func processGroupEnd(c *blockContext) []lint.Diagnostic {
	if c.file.Group == GroupOpened {
		c.file.Group = GroupClosed
		return nil
	}
	return []lint.Diagnostic{c.report(lint.RuleUseRightBrace)}
}

func processDeprecated(c *blockContext, tag core.Tag) []lint.Diagnostic {
	c.doc.Deprecated = tag.Description
	if tag.Name != "since" || !isDigits(tag.Description) {
		return []lint.Diagnostic{c.report(lint.RuleDeprecatedValue, TagDeprecated)}
	}
	return nil
}

func processFile(c *blockContext, tag core.Tag) []lint.Diagnostic {
	c.doc.File = tag.Name
	if tag.Name == "" {
		return []lint.Diagnostic{c.report(lint.RuleEmptyTag, TagFile)}
	}
	return nil
}

func processLibrary(c *blockContext, tag core.Tag) []lint.Diagnostic {
	library := tag.Value()
	if strings.HasSuffix(library, ".so") || strings.HasSuffix(library, ".a") || library == "NA" {
		return nil
	}
	return []lint.Diagnostic{c.report(lint.RuleLibraryValue)}
}

// processParam checks the @param at the current index against the function
// parameter at the same position. ParamIndex is advanced by the caller.
func processParam(c *blockContext, tag core.Tag) []lint.Diagnostic {
	if c.node.Kind != core.KindFunction {
		return nil
	}
	index := c.doc.ParamIndex
	params := c.node.Params()
	if index >= 0 && index < len(params) && params[index].Name == tag.Name {
		return nil
	}
	return []lint.Diagnostic{c.report(lint.RuleParamValue, index+1, index+1)}
}

var permissionParens = regexp.MustCompile(`[()]`)

var permissionConnectives = regexp.MustCompile(` or | and `)

// processPermission reports one diagnostic per tag however many tokens are
// not allow-listed.
func processPermission(c *blockContext, tag core.Tag) []lint.Diagnostic {
	value := tag.Value()
	c.doc.Permission = value
	for _, token := range splitPermissions(value) {
		if !c.rules.HasPermission(token) {
			return []lint.Diagnostic{c.report(lint.RulePermissionValue)}
		}
	}
	return nil
}

// splitPermissions breaks "(A or B) and C" into its atomic permission names.
func splitPermissions(value string) []string {
	value = permissionParens.ReplaceAllString(value, "")
	parts := permissionConnectives.Split(value, -1)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		tokens = append(tokens, strings.TrimSpace(p))
	}
	return tokens
}

func processSince(c *blockContext, tag core.Tag) []lint.Diagnostic {
	value := tag.Value()
	c.doc.Since = value
	switch {
	case value == "":
		return []lint.Diagnostic{c.report(lint.RuleEmptyTag, TagSince)}
	case !isDigits(value):
		return []lint.Diagnostic{c.report(lint.RuleSinceValue)}
	default:
		return nil
	}
}

func processSyscap(c *blockContext, tag core.Tag) []lint.Diagnostic {
	value := tag.Value()
	c.doc.Syscap = value
	switch {
	case value == "":
		return []lint.Diagnostic{c.report(lint.RuleEmptyTag, TagSyscap)}
	case !c.rules.HasSyscap(value):
		return []lint.Diagnostic{c.report(lint.RuleSyscapValue)}
	default:
		return nil
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
