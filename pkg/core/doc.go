// Package core defines the shared language of the capilint system.
//
// This package contains:
//   - Declaration tree entities (Node, Kind, Location, ChildRelation)
//   - Documentation tags (Tag, CommentBlock)
//   - Diagnostic vocabulary (Severity, ErrorKind, Scope, RuleInfo)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
