package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/capilint/internal/cli/config"
	"github.com/leapstack-labs/capilint/internal/cli/testutil"
)

func executeRoot(t *testing.T, dir string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Cleanup(config.ResetConfig)
	t.Chdir(dir)

	root := NewRootCmd()
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := NewRootCmd()

	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"check", "rules", "history", "version", "completion"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
	for _, flag := range []string{"config", "verbose", "output"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRootCommand_CheckUsesGlobalOutput(t *testing.T) {
	dir, tree := testutil.SetupTestProject(t)

	out, _, err := executeRoot(t, dir, "check", tree, "-o", "json")
	require.Error(t, err)
	assert.Equal(t, "lint issues found", err.Error())
	assert.Contains(t, out, `"rule_id": "NAMING_FUNCTION"`)
}

func TestRootCommand_ExplicitConfigFile(t *testing.T) {
	dir, tree := testutil.SetupTestProject(t)
	cfgPath := filepath.Join(dir, "ci.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
output: markdown
lint:
  disabled: [NAMING_ERROR, WRONG_SCENE]
`), 0o600))

	out, _, err := executeRoot(t, dir, "--config", cfgPath, "check", tree)
	require.NoError(t, err)
	assert.Contains(t, out, "No issues found in 1 files")
}

func TestRootCommand_VerboseLogsToStderr(t *testing.T) {
	dir, tree := testutil.SetupTestProject(t)

	_, errOut, err := executeRoot(t, dir, "check", tree, "-v", "-o", "markdown")
	require.Error(t, err)
	assert.Contains(t, errOut, "loaded declaration trees")
	assert.Contains(t, errOut, "level=DEBUG")
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	dir, tree := testutil.SetupTestProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "capilint.yaml"), []byte("output: fancy\n"), 0o600))

	_, _, err := executeRoot(t, dir, "check", tree)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fancy")
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, _, err := executeRoot(t, t.TempDir(), "completion", shell)
			require.NoError(t, err)
			assert.Contains(t, out, "capilint")
		})
	}

	_, _, err := executeRoot(t, t.TempDir(), "completion", "tcsh")
	require.Error(t, err)
}
