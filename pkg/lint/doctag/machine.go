// Package doctag validates the documentation tags of C declarations.
//
// A Machine runs every tag of a comment block through three layers, in this
// order: the group layer (@addtogroup and its braces), the file layer (@file
// and its companion tags) and the tag processor of the tag itself. File-wide
// state lives in a FileState created per file; per-block state lives in a
// DocState created per comment block.
package doctag

import (
	"strings"

	"github.com/leapstack-labs/capilint/pkg/core"
	"github.com/leapstack-labs/capilint/pkg/lint"
	"github.com/leapstack-labs/capilint/pkg/lint/ruleset"
)

// Machine is the documentation tag state machine. It holds no per-file
// state and is safe for concurrent use.
type Machine struct {
	rules *ruleset.RuleSet
}

// NewMachine creates a Machine validating against rules. A nil rule set
// falls back to the embedded defaults.
func NewMachine(rules *ruleset.RuleSet) *Machine {
	if rules == nil {
		rules = ruleset.Default()
	}
	return &Machine{rules: rules}
}

// ProcessComment validates all blocks of one declaration's comment.
// Group and file scope are left after every block.
func (m *Machine) ProcessComment(fs *FileState, node *core.Node, blocks []core.CommentBlock) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, block := range blocks {
		diags = append(diags, m.ProcessBlock(fs, node, block)...)
		fs.endBlock()
	}
	return diags
}

// ProcessBlock validates one comment block and runs the end-of-block checks.
// It does not leave group or file scope; ProcessComment does.
func (m *Machine) ProcessBlock(fs *FileState, node *core.Node, block core.CommentBlock) []lint.Diagnostic {
	c := &blockContext{
		rules: m.rules,
		file:  fs,
		doc:   NewDocState(),
		node:  node,
		pos:   lint.NodePosition(node),
	}

	var diags []lint.Diagnostic
	for _, tag := range block.Tags {
		diags = append(diags, m.processEach(c, tag)...)
	}
	return append(diags, endOfBlock(c)...)
}

func (m *Machine) processEach(c *blockContext, tag core.Tag) []lint.Diagnostic {
	var diags []lint.Diagnostic

	spelled := strings.ToLower(tag.Tag)
	if spelled != tag.Tag {
		diags = append(diags, c.report(lint.RuleUseUpperTag, tag.Tag, spelled))
	}
	name := ParseTagName(spelled)

	if name == TagAddToGroup || c.file.InGroupScope {
		diags = append(diags, groupLayer(c, name, tag)...)
	}
	if name == TagFile || c.file.InFileScope {
		diags = append(diags, fileLayer(c, name, tag)...)
	}

	if name == TagParam {
		c.doc.ParamIndex++
	}
	return append(diags, processTag(c, name, tag)...)
}

// groupLayer tracks the single @addtogroup of a file and its opening brace.
func groupLayer(c *blockContext, name TagName, tag core.Tag) []lint.Diagnostic {
	fs := c.file
	switch name {
	case TagAddToGroup:
		if fs.HasGroup() {
			return []lint.Diagnostic{c.report(lint.RuleRepeatFileTag, TagAddToGroup)}
		}
		fs.GroupName = tag.Name
		fs.Group = GroupUnopened
		fs.InGroupScope = true
	case TagGroupStart:
		if fs.Group != GroupUnopened {
			return []lint.Diagnostic{c.report(lint.RuleRepeatLeftBrace, TagGroupStart)}
		}
		fs.Group = GroupOpened
	}
	return nil
}

// fileLayer tracks the single @file of a file and its companion tags.
func fileLayer(c *blockContext, name TagName, tag core.Tag) []lint.Diagnostic {
	fs := c.file
	switch name {
	case TagFile:
		if fs.HasFile {
			return []lint.Diagnostic{c.report(lint.RuleRepeatFileTag, TagFile)}
		}
		fs.FileName = tag.Name
		fs.HasFile = true
		fs.InFileScope = true
	case TagBrief:
		fs.FileBrief = ptr(tag.Value())
	case TagLibrary:
		fs.FileLibrary = ptr(tag.Value())
	case TagSyscap:
		fs.FileSyscap = ptr(tag.Value())
	}
	return nil
}

func endOfBlock(c *blockContext) []lint.Diagnostic {
	var diags []lint.Diagnostic

	if c.node.Kind == core.KindFunction && len(c.node.Params()) != c.doc.ParamCount() {
		diags = append(diags, c.report(lint.RuleParamCount))
	}

	fs := c.file
	if fs.InGroupScope && fs.Group == GroupUnopened {
		diags = append(diags, c.report(lint.RuleFileHasOneLoseOther, "group tag", "start tag {"))
	}
	if fs.InFileScope {
		if fs.FileBrief == nil {
			diags = append(diags, c.report(lint.RuleFileHasOneLoseOther, "file tag", "brief tag"))
		}
		if fs.FileLibrary == nil {
			diags = append(diags, c.report(lint.RuleFileHasOneLoseOther, "file tag", "library tag"))
		}
		if fs.FileSyscap == nil {
			diags = append(diags, c.report(lint.RuleFileHasOneLoseOther, "file tag", "syscap tag"))
		}
	}
	return diags
}

// FinishFile runs the file completeness checks once the whole tree of file
// has been visited.
func (m *Machine) FinishFile(fs *FileState, file *core.Node) []lint.Diagnostic {
	pos := lint.Position{Path: file.Path()}
	report := func(ruleID string, args ...any) lint.Diagnostic {
		d := lint.MustRule(ruleID).Diagnose(file.Name, pos, args...)
		d.Scope = core.ScopeFile
		return d
	}

	var diags []lint.Diagnostic
	switch {
	case !fs.HasGroup():
		diags = append(diags, report(lint.RuleFileLoseOne, "group doc"))
	case fs.Group != GroupClosed:
		diags = append(diags, report(lint.RuleFileHasOneLoseOther, "group tag", "end tag }"))
	}
	if !fs.HasFile {
		diags = append(diags, report(lint.RuleFileLoseOne, "file doc"))
	}
	return diags
}

func ptr(s string) *string {
	return &s
}
