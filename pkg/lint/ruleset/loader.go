package ruleset

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

//go:embed data/*
var dataFS embed.FS

// Embedded rule file names.
const (
	defaultPermissionFile = "data/permission_definitions.json"
	defaultSyscapFile     = "data/syscap_rule.json"
)

var defaultRuleSet = mustLoadDefault()

// Format selects the decoder for a rule file.
type Format int

// Rule file formats.
const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatForPath picks a format from the file extension. Anything that is not
// .yaml or .yml is read as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// permissionFile mirrors the permission definition file:
//
//	{"module": {"definePermissions": [{"name": "ohos.permission.X"}]}}
type permissionFile struct {
	Module struct {
		DefinePermissions []struct {
			Name string `json:"name" yaml:"name"`
		} `json:"definePermissions" yaml:"definePermissions"`
	} `json:"module" yaml:"module"`
}

// DecodePermissions reads permission names from a permission definition file.
func DecodePermissions(r io.Reader, format Format) ([]string, error) {
	var pf permissionFile
	if err := decode(r, format, &pf); err != nil {
		return nil, fmt.Errorf("decode permission rules: %w", err)
	}
	names := make([]string, 0, len(pf.Module.DefinePermissions))
	for _, p := range pf.Module.DefinePermissions {
		names = append(names, p.Name)
	}
	return names, nil
}

// DecodeSyscaps reads a flat list of system capabilities.
func DecodeSyscaps(r io.Reader, format Format) ([]string, error) {
	var syscaps []string
	if err := decode(r, format, &syscaps); err != nil {
		return nil, fmt.Errorf("decode syscap rules: %w", err)
	}
	return syscaps, nil
}

func decode(r io.Reader, format Format, v any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	switch format {
	case FormatYAML:
		return yaml.Unmarshal(data, v)
	case FormatJSON:
		return json.Unmarshal(data, v)
	}
	return fmt.Errorf("unknown rule file format %d", format)
}

// LoadPermissionFile reads permission names from path.
func LoadPermissionFile(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from user configuration
	if err != nil {
		return nil, fmt.Errorf("open permission rules: %w", err)
	}
	defer func() { _ = f.Close() }()
	return DecodePermissions(f, FormatForPath(path))
}

// LoadSyscapFile reads system capabilities from path.
func LoadSyscapFile(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from user configuration
	if err != nil {
		return nil, fmt.Errorf("open syscap rules: %w", err)
	}
	defer func() { _ = f.Close() }()
	return DecodeSyscaps(f, FormatForPath(path))
}

// Options configures Load.
type Options struct {
	PermissionFile   string   // replaces the embedded permission definitions when set
	SyscapFile       string   // replaces the embedded syscap list when set
	ExtraPermissions []string // added on top of the file contents
	ExtraSyscaps     []string
}

// Load builds a RuleSet from the embedded defaults, optionally replaced by
// rule files on disk, plus any extra entries.
func Load(opts Options) (*RuleSet, error) {
	var (
		perms, syscaps []string
		err            error
	)

	if opts.PermissionFile != "" {
		perms, err = LoadPermissionFile(opts.PermissionFile)
	} else {
		perms, err = embeddedPermissions()
	}
	if err != nil {
		return nil, err
	}

	if opts.SyscapFile != "" {
		syscaps, err = LoadSyscapFile(opts.SyscapFile)
	} else {
		syscaps, err = embeddedSyscaps()
	}
	if err != nil {
		return nil, err
	}

	return New(append(perms, opts.ExtraPermissions...), append(syscaps, opts.ExtraSyscaps...)), nil
}

func embeddedPermissions() ([]string, error) {
	data, err := dataFS.ReadFile(defaultPermissionFile)
	if err != nil {
		return nil, fmt.Errorf("read embedded permission rules: %w", err)
	}
	return DecodePermissions(bytes.NewReader(data), FormatJSON)
}

func embeddedSyscaps() ([]string, error) {
	data, err := dataFS.ReadFile(defaultSyscapFile)
	if err != nil {
		return nil, fmt.Errorf("read embedded syscap rules: %w", err)
	}
	return DecodeSyscaps(bytes.NewReader(data), FormatJSON)
}

func mustLoadDefault() *RuleSet {
	rs, err := Load(Options{})
	if err != nil {
		panic(fmt.Sprintf("ruleset: embedded rules are invalid: %v", err))
	}
	return rs
}
