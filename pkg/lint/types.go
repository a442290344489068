package lint

import (
	"fmt"

	"github.com/leapstack-labs/capilint/pkg/core"
)

// =============================================================================
// Diagnostics
// =============================================================================

// Diagnostic represents a compliance finding.
// Diagnostics are immutable once created; order of creation is significant.
type Diagnostic struct {
	RuleID   string         `json:"rule_id"`
	Kind     core.ErrorKind `json:"kind"`
	Severity core.Severity  `json:"severity"`
	Scope    core.Scope     `json:"scope"`
	Message  string         `json:"message"`
	FilePath string         `json:"file_path"`
	Line     int            `json:"line,omitempty"`
	Column   int            `json:"column,omitempty"`
	Subject  string         `json:"subject"`
}

// Location renders the diagnostic position as path(line:L, col:C).
// File-level diagnostics without a position render as the bare path.
func (d Diagnostic) Location() string {
	if d.Line == 0 {
		return d.FilePath
	}
	return fmt.Sprintf("%s(line:%d, col:%d)", d.FilePath, d.Line, d.Column)
}

// =============================================================================
// Rules
// =============================================================================

// Rule describes one diagnostic the checker can emit.
type Rule struct {
	ID          string         // Unique identifier, e.g., "ERROR_USE_LEFT_BRACE"
	Kind        core.ErrorKind // Error taxonomy bucket
	Scope       core.Scope     // Layer that reports it
	Group       string         // Category: "naming", "tag", "file"
	Description string         // Human-readable description
	Format      string         // fmt template for the message
	Severity    core.Severity  // Default severity

	// Documentation fields
	BadExample  string
	GoodExample string
}

// Info returns the catalog metadata of the rule.
func (r Rule) Info() core.RuleInfo {
	return core.RuleInfo{
		ID:              r.ID,
		Kind:            r.Kind,
		Scope:           r.Scope,
		Group:           r.Group,
		Description:     r.Description,
		DefaultSeverity: r.Severity,
		BadExample:      r.BadExample,
		GoodExample:     r.GoodExample,
	}
}

// Diagnose builds a diagnostic for this rule. args fill the rule's Format.
func (r Rule) Diagnose(subject string, pos Position, args ...any) Diagnostic {
	msg := r.Format
	if len(args) > 0 {
		msg = fmt.Sprintf(r.Format, args...)
	}
	return Diagnostic{
		RuleID:   r.ID,
		Kind:     r.Kind,
		Severity: r.Severity,
		Scope:    r.Scope,
		Message:  msg,
		FilePath: pos.Path,
		Line:     pos.Line,
		Column:   pos.Column,
		Subject:  subject,
	}
}

// Position locates a diagnostic.
type Position struct {
	Path   string
	Line   int
	Column int
}

// NodePosition returns the position of a declaration node. Synthetic nodes
// without a location are reported against their name.
func NodePosition(n *core.Node) Position {
	if n.Location == nil {
		return Position{Path: n.Path()}
	}
	return Position{Path: n.Path(), Line: n.Location.Line, Column: n.Location.Column}
}
