// Package commentparser extracts documentation tags from raw C doc comments.
//
// Parser is a native scanner for Javadoc/Doxygen style "/** ... */" blocks.
// Command delegates to an external extractor program.
package commentparser

import (
	"context"
	"strings"

	"github.com/leapstack-labs/capilint/pkg/core"
)

const (
	blockOpen  = "/**"
	blockClose = "*/"
)

// Parser is the native tag extractor. The zero value is ready to use.
type Parser struct{}

// NewParser creates a native Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Extract splits comment into its "/** ... */" blocks and parses each one.
// Plain comments ("/* */", "//") carry no tags and are skipped.
func (p *Parser) Extract(ctx context.Context, comment string) ([]core.CommentBlock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var blocks []core.CommentBlock
	rest := comment
	for {
		start := strings.Index(rest, blockOpen)
		if start < 0 {
			break
		}
		body := rest[start+len(blockOpen):]
		end := strings.Index(body, blockClose)
		if end < 0 {
			// unterminated block runs to the end of the text
			blocks = append(blocks, ParseBlock(body))
			break
		}
		blocks = append(blocks, ParseBlock(body[:end]))
		rest = body[end+len(blockClose):]
	}
	return blocks, nil
}

// ParseBlock parses the body of one doc block, without its delimiters.
//
// A line starting with "@" opens a tag: the first word after the tag name is
// the tag's Name, the rest of the line plus any following lines up to the next
// tag form its Description. A leading "{type}" after the tag name is skipped.
// Text before the first tag is the block description.
func ParseBlock(body string) core.CommentBlock {
	var (
		block   core.CommentBlock
		desc    []string
		current *core.Tag
		tagDesc []string
	)

	flush := func() {
		if current == nil {
			return
		}
		current.Description = joinLines(tagDesc)
		block.Tags = append(block.Tags, *current)
		current = nil
		tagDesc = nil
	}

	for _, line := range strings.Split(body, "\n") {
		line = cleanLine(line)
		if strings.HasPrefix(line, "@") && len(line) > 1 {
			flush()
			tag, name, rest := splitTagLine(line[1:])
			current = &core.Tag{Tag: tag, Name: name}
			if rest != "" {
				tagDesc = append(tagDesc, rest)
			}
			continue
		}
		if current != nil {
			tagDesc = append(tagDesc, line)
		} else {
			desc = append(desc, line)
		}
	}
	flush()

	block.Description = joinLines(desc)
	if block.Tags == nil {
		block.Tags = []core.Tag{}
	}
	return block
}

// cleanLine strips indentation and the "*" gutter of a comment line.
func cleanLine(line string) string {
	line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
	line = strings.TrimPrefix(line, "*")
	return strings.TrimSpace(line)
}

// splitTagLine splits "param {int} count number of items" into
// ("param", "count", "number of items").
func splitTagLine(s string) (tag, name, rest string) {
	tag, s = cutWord(s)
	if tag != "{" && strings.HasPrefix(s, "{") {
		if end := strings.Index(s, "}"); end >= 0 {
			s = strings.TrimSpace(s[end+1:])
		}
	}
	name, rest = cutWord(s)
	return tag, name, rest
}

func cutWord(s string) (string, string) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		return s[:i], strings.TrimSpace(s[i+1:])
	}
	return s, ""
}

// joinLines joins non-blank lines with single spaces.
func joinLines(lines []string) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		if l != "" {
			parts = append(parts, l)
		}
	}
	return strings.Join(parts, " ")
}
