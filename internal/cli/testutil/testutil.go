// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/capilint/internal/cli/output"
)

// NonCompliantTree is a declaration tree with exactly three diagnostics: a
// badly named function and the missing group and file docs.
const NonCompliantTree = `{
  "name": "inc/sensor.h",
  "kind": "file",
  "relation": "declarations",
  "children": [
    {
      "name": "bad_function",
      "kind": "function",
      "location": { "path": "inc/sensor.h", "line": 12, "column": 6 }
    }
  ]
}
`

// AllKinds disables every diagnostic when passed to --disable.
const AllKinds = "NAMING_ERROR,EMPTY_TAG,WRONG_VALUE,WRONG_SCENE,ERROR_TAG,UNKNOWN_DEPRECATED"

// SetupTestProject creates a temporary project holding one declaration tree
// under trees/ and returns the project directory and the tree path.
func SetupTestProject(t *testing.T) (dir, treePath string) {
	t.Helper()

	dir = t.TempDir()
	treePath = WriteTree(t, filepath.Join(dir, "trees"), "sensor.json", NonCompliantTree)
	return dir, treePath
}

// WriteTree writes a declaration tree file and returns its path.
func WriteTree(t *testing.T, dir, name, content string) string {
	t.Helper()

	require.NoError(t, os.MkdirAll(dir, 0o750))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.Mode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// NewTestRendererText creates a new test renderer in text mode (simulated TTY).
func NewTestRendererText() *TestRenderer {
	return NewTestRenderer(output.ModeText, true)
}

// NewTestRendererMarkdown creates a new test renderer in markdown mode.
func NewTestRendererMarkdown() *TestRenderer {
	return NewTestRenderer(output.ModeMarkdown, false)
}

// NewTestRendererJSON creates a new test renderer in JSON mode.
func NewTestRendererJSON() *TestRenderer {
	return NewTestRenderer(output.ModeJSON, false)
}

// Output returns the stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	assert.False(t, ansiPattern.MatchString(s), "string contains ANSI escape codes: %q", s)
}

// AssertValidMarkdown performs basic markdown validation.
// It checks for unclosed code fences and empty headers.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	fenceCount := strings.Count(md, "```")
	assert.Zero(t, fenceCount%2, "unbalanced code fences in markdown: found %d occurrences", fenceCount)

	for i, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			assert.NotEmpty(t, strings.TrimLeft(trimmed, "# "), "empty header at line %d", i+1)
		}
	}
}
