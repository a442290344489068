package core

import "strings"

// Tag is one documentation directive, in the order written in the comment.
// For "@param count number of items", Tag is "param", Name is "count" and
// Description is "number of items".
type Tag struct {
	Tag         string `json:"tag"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Value joins name and description into the tag's full value.
func (t Tag) Value() string {
	switch {
	case t.Name == "":
		return strings.TrimSpace(t.Description)
	case t.Description == "":
		return strings.TrimSpace(t.Name)
	default:
		return strings.TrimSpace(t.Name + " " + t.Description)
	}
}

// CommentBlock holds the tags of a single doc comment block.
type CommentBlock struct {
	Description string `json:"description,omitempty"`
	Tags        []Tag  `json:"tags"`
}
