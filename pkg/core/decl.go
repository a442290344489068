package core

import "strings"

// =============================================================================
// Declaration Kinds
// =============================================================================

// Kind identifies the C declaration category of a Node.
type Kind int

// Declaration kinds produced by the C front end.
const (
	KindUnknown Kind = iota // declarations without naming rules (typedefs, includes, ...)
	KindFile
	KindFunction
	KindStruct
	KindUnion
	KindEnum
	KindVariable
	KindParameter
	KindField
	KindMacro
	KindEnumConstant
)

// String returns the canonical lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindFunction:
		return "function"
	case KindStruct:
		return "struct"
	case KindUnion:
		return "union"
	case KindEnum:
		return "enum"
	case KindVariable:
		return "variable"
	case KindParameter:
		return "parameter"
	case KindField:
		return "field"
	case KindMacro:
		return "macro"
	case KindEnumConstant:
		return "enum_constant"
	default:
		return "unknown"
	}
}

// ParseKind maps both canonical names ("function") and clang cursor
// spellings ("FUNCTION_DECL") to a Kind. Unrecognized names map to KindUnknown.
func ParseKind(s string) Kind {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "FILE", "TRANSLATION_UNIT":
		return KindFile
	case "FUNCTION", "FUNCTION_DECL":
		return KindFunction
	case "STRUCT", "STRUCT_DECL":
		return KindStruct
	case "UNION", "UNION_DECL":
		return KindUnion
	case "ENUM", "ENUM_DECL":
		return KindEnum
	case "VARIABLE", "VAR_DECL":
		return KindVariable
	case "PARAMETER", "PARM_DECL":
		return KindParameter
	case "FIELD", "FIELD_DECL":
		return KindField
	case "MACRO", "MACRO_DEFINITION":
		return KindMacro
	case "ENUM_CONSTANT", "ENUM_CONSTANT_DECL":
		return KindEnumConstant
	default:
		return KindUnknown
	}
}

// =============================================================================
// Child Relations
// =============================================================================

// ChildRelation states how a node's children relate to it.
type ChildRelation int

// Child relations.
const (
	RelationNone         ChildRelation = iota
	RelationDeclarations               // file -> top-level declarations
	RelationMembers                    // struct/union/enum -> fields or constants
	RelationParams                     // function -> parameters
)

// String returns the relation name.
func (r ChildRelation) String() string {
	switch r {
	case RelationDeclarations:
		return "declarations"
	case RelationMembers:
		return "members"
	case RelationParams:
		return "params"
	default:
		return "none"
	}
}

// =============================================================================
// Nodes
// =============================================================================

// Comment sentinels meaning "this declaration has no doc comment".
const (
	NoComment       = "none"
	legacyNoComment = "none_comment"
)

// Location is a position in a header file.
type Location struct {
	Path   string `json:"path"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// Node is one C declaration, or the file itself.
type Node struct {
	Kind     Kind
	Name     string
	Location *Location // nil for synthetic nodes
	Comment  string
	Relation ChildRelation
	Children []*Node
}

// HasComment reports whether the node carries a doc comment worth extracting.
func (n *Node) HasComment() bool {
	c := strings.TrimSpace(n.Comment)
	return c != "" && c != NoComment && c != legacyNoComment
}

// Params returns the positional parameters of a function node.
func (n *Node) Params() []*Node {
	if n.Relation != RelationParams {
		return nil
	}
	return n.Children
}

// Path returns the node's source path, falling back to its name for
// synthetic nodes such as the file root.
func (n *Node) Path() string {
	if n.Location != nil && n.Location.Path != "" {
		return n.Location.Path
	}
	return n.Name
}
