package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/capilint/pkg/core"
	"github.com/leapstack-labs/capilint/pkg/lint"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ConfigFileName, `
output: json
workers: 3
rules:
  permission_file: rules/permissions.yaml
  extra_syscaps: [SystemCapability.Test.Extra]
lint:
  disabled: [NAMING_ERROR, ERROR_USE_LEFT_BRACE]
  severity:
    ERROR_TAG: hint
extractor:
  command: node parser.js
  timeout: 3s
`)

	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "rules/permissions.yaml", cfg.Rules.PermissionFile)
	assert.Equal(t, []string{"SystemCapability.Test.Extra"}, cfg.Rules.ExtraSyscaps)
	assert.Equal(t, []string{"NAMING_ERROR", "ERROR_USE_LEFT_BRACE"}, cfg.Lint.Disabled)
	assert.Equal(t, map[string]string{"ERROR_TAG": "hint"}, cfg.Lint.Severity)
	assert.Equal(t, "node parser.js", cfg.Extractor.Command)
	assert.Equal(t, 3*time.Second, cfg.Extractor.Timeout)
	// unset values get defaults
	assert.Equal(t, DefaultStateFile, cfg.State.Path)
	assert.Equal(t, dir, cfg.ProjectRoot)
}

func TestLoadFromDir_NoConfig(t *testing.T) {
	cfg, err := LoadFromDir(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestLoadFromDir_AltNameAndInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ConfigFileNameAlt, "output: [unclosed")

	_, err := LoadFromDir(dir)
	assert.Error(t, err)
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, ConfigFileNameAlt, "verbose: true\n")
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	assert.Equal(t, root, FindProjectRoot(nested))
	assert.Equal(t, filepath.Join(root, ConfigFileNameAlt), FindConfigFile(root))
	assert.Empty(t, FindConfigFile(nested))
}

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name string
		path string
		base string
		want string
	}{
		{name: "relative", path: "rules/syscap.json", base: "/proj", want: filepath.Join("/proj", "rules/syscap.json")},
		{name: "absolute", path: "/etc/syscap.json", base: "/proj", want: "/etc/syscap.json"},
		{name: "empty", path: "", base: "/proj", want: ""},
		{name: "no base", path: "syscap.json", base: "", want: "syscap.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePath(tt.path, tt.base))
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{Workers: 2}
	ApplyDefaults(cfg)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, DefaultExtractorTimeout, cfg.Extractor.Timeout)
	assert.Equal(t, DefaultStateFile, cfg.State.Path)

	ApplyDefaults(nil)
}

func TestLintConfig_Build(t *testing.T) {
	tests := []struct {
		name    string
		in      LintConfig
		check   func(t *testing.T, cfg *lint.Config)
		wantErr string
	}{
		{
			name: "disable and override",
			in: LintConfig{
				Disabled: []string{" NAMING_ERROR ", ""},
				Severity: map[string]string{lint.RuleParamCount: "Warning"},
			},
			check: func(t *testing.T, cfg *lint.Config) {
				assert.True(t, cfg.IsDisabled(lint.RuleNamingFunction, core.KindNamingError))
				assert.Equal(t, core.SeverityWarning,
					cfg.GetSeverity(lint.RuleParamCount, core.KindWrongScene, core.SeverityError))
				assert.Empty(t, cfg.Validate())
			},
		},
		{
			name:    "bad severity",
			in:      LintConfig{Severity: map[string]string{"WRONG_VALUE": "fatal"}},
			wantErr: `invalid severity "fatal" for WRONG_VALUE`,
		},
		{
			name: "empty",
			in:   LintConfig{},
			check: func(t *testing.T, cfg *lint.Config) {
				assert.Empty(t, cfg.DisabledRules)
				assert.Empty(t, cfg.SeverityOverrides)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := tt.in.Build()
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestRulesConfig_Options(t *testing.T) {
	rc := RulesConfig{
		PermissionFile: "perms.json",
		SyscapFile:     "/abs/syscap.yaml",
		ExtraSyscaps:   []string{"SystemCapability.X"},
	}
	opts := rc.Options("/proj")
	assert.Equal(t, filepath.Join("/proj", "perms.json"), opts.PermissionFile)
	assert.Equal(t, "/abs/syscap.yaml", opts.SyscapFile)
	assert.Equal(t, []string{"SystemCapability.X"}, opts.ExtraSyscaps)
}
