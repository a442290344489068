package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedcfg "github.com/leapstack-labs/capilint/internal/config"
)

// testFlags mirrors the flags the CLI registers.
func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.StringP("output", "o", "", "")
	fs.BoolP("verbose", "v", false, "")
	fs.Int("workers", 0, "")
	fs.StringSlice("disable", nil, "")
	fs.StringToString("set-severity", nil, "")
	fs.String("permission-file", "", "")
	fs.String("syscap-file", "", "")
	fs.StringSlice("syscap", nil, "")
	fs.String("extractor", "", "")
	fs.Duration("extractor-timeout", 0, "")
	fs.String("state", "", "")
	fs.Bool("record", false, "")
	return fs
}

func writeConfigFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, sharedcfg.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Cleanup(ResetConfig)
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, sharedcfg.DefaultExtractorTimeout, cfg.Extractor.Timeout)
	assert.Equal(t, filepath.Join(dir, DefaultStateFile), cfg.State.Path)
	assert.Empty(t, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfig_DiscoversFileUpward(t *testing.T) {
	t.Cleanup(ResetConfig)
	root := t.TempDir()
	path := writeConfigFile(t, root, "output: markdown\nstate:\n  path: db/runs.db\n")
	nested := filepath.Join(root, "include", "sensor")
	require.NoError(t, os.MkdirAll(nested, 0o750))
	t.Chdir(nested)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, path, GetConfigFileUsed())
	assert.Equal(t, "markdown", cfg.Output)
	assert.Equal(t, root, cfg.ProjectRoot)
	assert.Equal(t, filepath.Join(root, "db", "runs.db"), cfg.State.Path)
}

func TestLoadConfig_Precedence(t *testing.T) {
	t.Cleanup(ResetConfig)
	dir := t.TempDir()
	cfgFile := writeConfigFile(t, dir, `
output: markdown
workers: 2
lint:
  disabled: [NAMING_ERROR]
  severity:
    ERROR_TAG: hint
    WRONG_VALUE: info
extractor:
  timeout: 5s
`)

	t.Setenv("CAPILINT_WORKERS", "4")
	t.Setenv("CAPILINT_EXTRACTOR__TIMEOUT", "7s")
	t.Setenv("CAPILINT_LINT__DISABLED", "EMPTY_TAG,WRONG_SCENE")

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{
		"--output", "json",
		"--set-severity", "ERROR_TAG=error",
	}))

	cfg, err := LoadConfig(cfgFile, fs)
	require.NoError(t, err)

	// flag beats file
	assert.Equal(t, "json", cfg.Output)
	// env beats file
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 7*time.Second, cfg.Extractor.Timeout)
	assert.Equal(t, []string{"EMPTY_TAG", "WRONG_SCENE"}, cfg.Lint.Disabled)
	// flag map entries merge with file entries
	assert.Equal(t, map[string]string{"ERROR_TAG": "error", "WRONG_VALUE": "info"}, cfg.Lint.Severity)
}

func TestLoadConfig_PathResolution(t *testing.T) {
	t.Cleanup(ResetConfig)
	projectDir := t.TempDir()
	cfgFile := writeConfigFile(t, projectDir, `
rules:
  permission_file: rules/permissions.json
  syscap_file: rules/syscap.json
`)

	workDir := t.TempDir()
	t.Chdir(workDir)

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--syscap-file", "local/syscap.yaml", "--state", ":memory:"}))

	cfg, err := LoadConfig(cfgFile, fs)
	require.NoError(t, err)

	// from the file: relative to the project root
	assert.Equal(t, filepath.Join(projectDir, "rules", "permissions.json"), cfg.Rules.PermissionFile)
	// from a flag: relative to the working directory
	assert.Equal(t, filepath.Join(workDir, "local", "syscap.yaml"), cfg.Rules.SyscapFile)
	assert.Equal(t, ":memory:", cfg.State.Path)
}

func TestLoadConfig_FlagKeys(t *testing.T) {
	t.Cleanup(ResetConfig)
	t.Chdir(t.TempDir())

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{
		"--disable", "ERROR_TAG",
		"--syscap", "SystemCapability.A,SystemCapability.B",
		"--extractor", "node parse.js",
		"--extractor-timeout", "2s",
		"--record",
		"-v",
	}))

	cfg, err := LoadConfig("", fs)
	require.NoError(t, err)

	assert.Equal(t, []string{"ERROR_TAG"}, cfg.Lint.Disabled)
	assert.Equal(t, []string{"SystemCapability.A", "SystemCapability.B"}, cfg.Rules.ExtraSyscaps)
	assert.Equal(t, "node parse.js", cfg.Extractor.Command)
	assert.Equal(t, 2*time.Second, cfg.Extractor.Timeout)
	assert.True(t, cfg.State.Record)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		args    []string
		errMsg  string
	}{
		{
			name:    "bad output",
			content: "output: html\n",
			errMsg:  `invalid output "html"`,
		},
		{
			name:    "bad severity",
			content: "lint:\n  severity:\n    ERROR_TAG: loud\n",
			errMsg:  "invalid lint configuration",
		},
		{
			name:    "negative workers",
			content: "workers: -1\n",
			errMsg:  "workers must not be negative",
		},
		{
			name:    "unreadable yaml",
			content: "output: [x\n",
			errMsg:  "error reading config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(ResetConfig)
			cfgFile := writeConfigFile(t, t.TempDir(), tt.content)
			_, err := LoadConfig(cfgFile, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestGetLogger(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx := context.WithValue(context.Background(), LoggerKey(), logger)
	assert.Same(t, logger, GetLogger(ctx))

	fallback := GetLogger(context.Background())
	require.NotNil(t, fallback)
	assert.False(t, fallback.Enabled(context.Background(), slog.LevelError))
}

func TestGetConfig(t *testing.T) {
	cfg := &Config{Output: "json"}
	ctx := context.WithValue(context.Background(), ConfigKey(), cfg)
	assert.Same(t, cfg, GetConfig(ctx))
	assert.Nil(t, GetConfig(context.Background()))
}
