package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/capilint/internal/cli/config"
	"github.com/leapstack-labs/capilint/internal/cli/output"
	"github.com/leapstack-labs/capilint/internal/cli/testutil"
	"github.com/leapstack-labs/capilint/pkg/core"
	"github.com/leapstack-labs/capilint/pkg/lint"
)

// runCheckCmd executes a fresh check command from dir.
func runCheckCmd(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(config.ResetConfig)
	t.Chdir(dir)

	cmd := NewCheckCommand()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNewCheckCommand(t *testing.T) {
	cmd := NewCheckCommand()

	assert.Equal(t, "check <tree.json|dir>...", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Example)

	flags := []string{
		"format", "severity", "watch", "disable", "set-severity", "workers",
		"permission-file", "syscap-file", "permission", "syscap",
		"extractor", "extractor-timeout", "record", "state",
	}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestCheckCommand_ReportsDiagnostics(t *testing.T) {
	dir, tree := testutil.SetupTestProject(t)

	out, err := runCheckCmd(t, dir, tree, "--format", "markdown")
	require.ErrorIs(t, err, errIssuesFound)

	testutil.AssertNoANSI(t, out)
	assert.Contains(t, out, "inc/sensor.h(line:12, col:6)")
	assert.Contains(t, out, lint.RuleNamingFunction)
	assert.Contains(t, out, "function name [bad_function] does not follow the naming convention")
	assert.Contains(t, out, "the file lacks a group doc")
	assert.Contains(t, out, "the file lacks a file doc")
	assert.Contains(t, out, "Summary: 3 issues, 3 errors in 1 files")
}

func TestCheckCommand_JSON(t *testing.T) {
	dir, tree := testutil.SetupTestProject(t)

	out, err := runCheckCmd(t, dir, tree, "--format", "json")
	require.ErrorIs(t, err, errIssuesFound)

	var result output.CheckOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Empty(t, result.RunID)
	assert.Equal(t, 1, result.Files)
	assert.Equal(t, 3, result.Summary.Total)
	assert.Equal(t, 3, result.Summary.Errors)

	require.Len(t, result.Diagnostics, 3)
	first := result.Diagnostics[0]
	assert.Equal(t, lint.RuleNamingFunction, first.RuleID)
	assert.Equal(t, core.KindNamingError, first.Kind)
	assert.Equal(t, core.SeverityError, first.Severity)
	assert.Equal(t, 12, first.Line)
	assert.Equal(t, 6, first.Column)
	assert.Equal(t, "bad_function", first.Subject)

	for _, d := range result.Diagnostics[1:] {
		assert.Equal(t, lint.RuleFileLoseOne, d.RuleID)
		assert.Equal(t, core.ScopeFile, d.Scope)
	}
}

func TestCheckCommand_Idempotent(t *testing.T) {
	dir, tree := testutil.SetupTestProject(t)

	first, err := runCheckCmd(t, dir, tree, "--format", "json")
	require.ErrorIs(t, err, errIssuesFound)
	second, err := runCheckCmd(t, dir, tree, "--format", "json", "--workers", "1")
	require.ErrorIs(t, err, errIssuesFound)

	assert.Equal(t, first, second)
}

func TestCheckCommand_Clean(t *testing.T) {
	dir, tree := testutil.SetupTestProject(t)

	out, err := runCheckCmd(t, dir, tree, "--format", "markdown", "--disable", testutil.AllKinds)
	require.NoError(t, err)
	assert.Contains(t, out, "No issues found in 1 files")
}

func TestCheckCommand_SeverityFilter(t *testing.T) {
	dir, tree := testutil.SetupTestProject(t)

	out, err := runCheckCmd(t, dir, tree,
		"--format", "json",
		"--set-severity", lint.RuleFileLoseOne+"=hint",
		"--severity", "warning",
	)
	require.ErrorIs(t, err, errIssuesFound)

	var result output.CheckOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, lint.RuleNamingFunction, result.Diagnostics[0].RuleID)
}

func TestCheckCommand_ConfigFile(t *testing.T) {
	dir, tree := testutil.SetupTestProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "capilint.yaml"), []byte(`
output: json
lint:
  disabled: [NAMING_ERROR]
`), 0o600))

	out, err := runCheckCmd(t, dir, tree)
	require.ErrorIs(t, err, errIssuesFound)

	var result output.CheckOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Len(t, result.Diagnostics, 2)
	for _, d := range result.Diagnostics {
		assert.NotEqual(t, core.KindNamingError, d.Kind)
	}
}

func TestCheckCommand_DirectoryInput(t *testing.T) {
	dir, _ := testutil.SetupTestProject(t)
	trees := filepath.Join(dir, "trees")
	testutil.WriteTree(t, filepath.Join(trees, ".cache"), "broken.json", "{not json")
	testutil.WriteTree(t, trees, "notes.txt", "not a tree")

	out, err := runCheckCmd(t, dir, trees, "--format", "json")
	require.ErrorIs(t, err, errIssuesFound)

	var result output.CheckOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 1, result.Files)
}

func TestCheckCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    func(dir, tree string) []string
		wantErr string
	}{
		{
			name:    "missing input",
			args:    func(dir, _ string) []string { return []string{filepath.Join(dir, "missing.json")} },
			wantErr: "failed to access input",
		},
		{
			name: "directory without trees",
			args: func(dir, _ string) []string {
				empty := filepath.Join(dir, "empty")
				_ = os.MkdirAll(empty, 0o750)
				return []string{empty}
			},
			wantErr: "no declaration trees found",
		},
		{
			name: "invalid tree",
			args: func(dir, _ string) []string {
				return []string{testutil.WriteTree(t, dir, "bad.json", `{"name": "a.h", "children": [`)}
			},
			wantErr: "decode declaration tree",
		},
		{
			name:    "invalid minimum severity",
			args:    func(_, tree string) []string { return []string{tree, "--severity", "fatal"} },
			wantErr: `invalid severity "fatal"`,
		},
		{
			name:    "invalid severity override",
			args:    func(_, tree string) []string { return []string{tree, "--set-severity", "WRONG_VALUE=fatal"} },
			wantErr: "invalid lint configuration",
		},
		{
			name:    "missing rule file",
			args:    func(dir, tree string) []string { return []string{tree, "--syscap-file", filepath.Join(dir, "nope.json")} },
			wantErr: "failed to load rule tables",
		},
		{
			name:    "empty extractor command",
			args:    func(_, tree string) []string { return []string{tree, "--extractor", "   "} },
			wantErr: "extractor command is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, tree := testutil.SetupTestProject(t)
			_, err := runCheckCmd(t, dir, tt.args(dir, tree)...)
			require.Error(t, err)
			assert.NotErrorIs(t, err, errIssuesFound)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCheckCommand_Record(t *testing.T) {
	dir, tree := testutil.SetupTestProject(t)
	store := filepath.Join(dir, "history", "runs.db")

	out, err := runCheckCmd(t, dir, tree, "--format", "json", "--record", "--state", store)
	require.ErrorIs(t, err, errIssuesFound)

	var result output.CheckOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.NotEmpty(t, result.RunID)
	assert.FileExists(t, store)

	out, err = runCheckCmd(t, dir, tree, "--format", "markdown", "--record", "--state", store)
	require.ErrorIs(t, err, errIssuesFound)
	assert.Contains(t, out, "Recorded run ")
}

func TestCheckCommand_Watch(t *testing.T) {
	dir, tree := testutil.SetupTestProject(t)
	t.Cleanup(config.ResetConfig)
	t.Chdir(dir)

	ctx, cancel := context.WithTimeout(context.Background(), 1500*time.Millisecond)
	defer cancel()

	go func() {
		time.Sleep(400 * time.Millisecond)
		_ = os.WriteFile(tree, []byte(testutil.NonCompliantTree), 0o600)
	}()

	cmd := NewCheckCommand()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{tree, "--watch", "--format", "markdown"})

	require.NoError(t, cmd.ExecuteContext(ctx))

	got := out.String()
	assert.Contains(t, got, "Watching for changes")
	assert.Contains(t, got, "Change detected in 1 file(s), re-checking")
	assert.Contains(t, got, lint.RuleNamingFunction)
}

func TestCollectTrees(t *testing.T) {
	dir := t.TempDir()
	b := testutil.WriteTree(t, filepath.Join(dir, "sub"), "b.json", "{}")
	a := testutil.WriteTree(t, dir, "a.JSON", "{}")
	testutil.WriteTree(t, filepath.Join(dir, ".git"), "c.json", "{}")
	testutil.WriteTree(t, dir, "readme.md", "")
	single := testutil.WriteTree(t, t.TempDir(), "tree.txt", "{}")

	paths, err := collectTrees([]string{dir, single})
	require.NoError(t, err)
	assert.Equal(t, []string{a, b, single}, paths)
}

func TestSummaryText(t *testing.T) {
	tests := []struct {
		name string
		in   lint.Summary
		want string
	}{
		{name: "empty", in: lint.Summary{}, want: "0 issues"},
		{name: "errors only", in: lint.Summary{Errors: 2}, want: "2 issues, 2 errors"},
		{name: "mixed", in: lint.Summary{Errors: 1, Warnings: 2, Infos: 3, Hints: 4}, want: "10 issues, 1 errors, 2 warnings, 3 info, 4 hints"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, summaryText(tt.in))
		})
	}
}
