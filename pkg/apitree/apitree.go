// Package apitree decodes declaration trees produced by C header front ends.
//
// Two shapes are accepted. The front-end shape uses clang cursor kinds
// ("FUNCTION_DECL"), a location object with location_path, location_line and
// location_column, and puts children under "children", "members" or "parm".
// The native shape uses canonical kinds ("function"), a location object with
// path, line and column, and always uses "children" with an explicit
// "relation". Input is either one file node or an array of file nodes.
package apitree

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/leapstack-labs/capilint/pkg/core"
)

type rawLocation struct {
	Path   string `json:"path"`
	Line   int    `json:"line"`
	Column int    `json:"column"`

	LocationPath   string `json:"location_path"`
	LocationLine   int    `json:"location_line"`
	LocationColumn int    `json:"location_column"`
}

type rawNode struct {
	Name     string       `json:"name"`
	Kind     string       `json:"kind"`
	Comment  *string      `json:"comment"`
	Location *rawLocation `json:"location"`
	Relation string       `json:"relation"`
	Children []rawNode    `json:"children"`
	Members  []rawNode    `json:"members"`
	Parm     []rawNode    `json:"parm"`
}

// Decode reads one file node or an array of file nodes.
func Decode(r io.Reader) ([]*core.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read declaration tree: %w", err)
	}
	return DecodeBytes(data)
}

// DecodeBytes is Decode for in-memory input.
func DecodeBytes(data []byte) ([]*core.Node, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var raws []rawNode
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &raws); err != nil {
			return nil, fmt.Errorf("decode declaration tree: %w", err)
		}
	} else {
		var raw rawNode
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("decode declaration tree: %w", err)
		}
		raws = []rawNode{raw}
	}

	files := make([]*core.Node, 0, len(raws))
	for i := range raws {
		n, err := convert(&raws[i])
		if err != nil {
			return nil, fmt.Errorf("file %d: %w", i, err)
		}
		// top-level nodes are files, whatever the front end called them
		if n.Kind == core.KindUnknown {
			n.Kind = core.KindFile
		}
		if n.Kind != core.KindFile {
			return nil, fmt.Errorf("file %d: top-level node %q has kind %s, want file", i, n.Name, n.Kind)
		}
		if n.Relation == core.RelationNone && len(n.Children) > 0 {
			n.Relation = core.RelationDeclarations
		}
		files = append(files, n)
	}
	return files, nil
}

// Load decodes the declaration tree file at path.
func Load(path string) ([]*core.Node, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("open declaration tree: %w", err)
	}
	defer func() { _ = f.Close() }()

	files, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return files, nil
}

func convert(raw *rawNode) (*core.Node, error) {
	n := &core.Node{
		Kind:     core.ParseKind(raw.Kind),
		Name:     raw.Name,
		Location: convertLocation(raw.Location),
		Comment:  core.NoComment,
	}
	if raw.Comment != nil {
		n.Comment = *raw.Comment
	}

	children, relation, err := pickChildren(raw, n.Kind)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", n.Kind, n.Name, err)
	}
	n.Relation = relation
	for i := range children {
		child, err := convert(&children[i])
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)
	}
	return n, nil
}

// pickChildren resolves the single child relation of a node.
func pickChildren(raw *rawNode, kind core.Kind) ([]rawNode, core.ChildRelation, error) {
	populated := 0
	for _, c := range [][]rawNode{raw.Children, raw.Members, raw.Parm} {
		if len(c) > 0 {
			populated++
		}
	}
	if populated > 1 {
		return nil, core.RelationNone, fmt.Errorf("more than one of children, members and parm is set")
	}

	if raw.Relation != "" {
		rel, err := parseRelation(raw.Relation)
		if err != nil {
			return nil, core.RelationNone, err
		}
		switch {
		case len(raw.Children) > 0:
			return raw.Children, rel, nil
		case len(raw.Members) > 0:
			return raw.Members, rel, nil
		case len(raw.Parm) > 0:
			return raw.Parm, rel, nil
		default:
			return nil, rel, nil
		}
	}

	switch {
	case len(raw.Parm) > 0:
		return raw.Parm, core.RelationParams, nil
	case len(raw.Members) > 0:
		return raw.Members, core.RelationMembers, nil
	case len(raw.Children) > 0:
		return raw.Children, defaultRelation(kind), nil
	default:
		return nil, core.RelationNone, nil
	}
}

func defaultRelation(kind core.Kind) core.ChildRelation {
	switch kind {
	case core.KindFunction:
		return core.RelationParams
	case core.KindStruct, core.KindUnion, core.KindEnum:
		return core.RelationMembers
	default:
		return core.RelationDeclarations
	}
}

func parseRelation(s string) (core.ChildRelation, error) {
	switch s {
	case "none":
		return core.RelationNone, nil
	case "declarations":
		return core.RelationDeclarations, nil
	case "members":
		return core.RelationMembers, nil
	case "params":
		return core.RelationParams, nil
	default:
		return core.RelationNone, fmt.Errorf("unknown child relation %q", s)
	}
}

func convertLocation(raw *rawLocation) *core.Location {
	if raw == nil {
		return nil
	}
	loc := &core.Location{Path: raw.Path, Line: raw.Line, Column: raw.Column}
	if loc.Path == "" {
		loc.Path = raw.LocationPath
	}
	if loc.Line == 0 {
		loc.Line = raw.LocationLine
	}
	if loc.Column == 0 {
		loc.Column = raw.LocationColumn
	}
	return loc
}
