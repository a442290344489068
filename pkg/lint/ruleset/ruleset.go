// Package ruleset holds the permission and syscap allow-lists used by the
// documentation tag checks.
//
// A RuleSet is immutable once built and safe to share across goroutines.
package ruleset

import (
	"sort"
	"strings"
)

// SeedPermissions are always allowed, whatever the loaded rule files say.
var SeedPermissions = []string{
	"ohos.permission.HEALTH_DATA",
	"ohos.permission.HEART_RATE",
	"ohos.permission.ACCELERATION",
}

// RuleSet is the allow-list configuration of a check run.
type RuleSet struct {
	permissions map[string]struct{}
	syscaps     map[string]struct{}
}

// New builds a RuleSet. The seed permissions are always included. Blank
// entries are ignored and surrounding whitespace is trimmed.
func New(permissions, syscaps []string) *RuleSet {
	rs := &RuleSet{
		permissions: make(map[string]struct{}, len(SeedPermissions)+len(permissions)),
		syscaps:     make(map[string]struct{}, len(syscaps)),
	}
	addAll(rs.permissions, SeedPermissions)
	addAll(rs.permissions, permissions)
	addAll(rs.syscaps, syscaps)
	return rs
}

// Default returns the RuleSet built from the embedded rule files.
func Default() *RuleSet {
	return defaultRuleSet
}

func addAll(set map[string]struct{}, values []string) {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		set[v] = struct{}{}
	}
}

// HasPermission reports whether p is an allowed permission.
func (rs *RuleSet) HasPermission(p string) bool {
	if rs == nil {
		return false
	}
	_, ok := rs.permissions[p]
	return ok
}

// HasSyscap reports whether s is an allowed system capability.
func (rs *RuleSet) HasSyscap(s string) bool {
	if rs == nil {
		return false
	}
	_, ok := rs.syscaps[s]
	return ok
}

// Permissions returns the allowed permissions, sorted.
func (rs *RuleSet) Permissions() []string {
	return sortedKeys(rs.permissions)
}

// Syscaps returns the allowed system capabilities, sorted.
func (rs *RuleSet) Syscaps() []string {
	return sortedKeys(rs.syscaps)
}

// With returns a new RuleSet extended with extra entries. rs is unchanged.
func (rs *RuleSet) With(permissions, syscaps []string) *RuleSet {
	return New(append(rs.Permissions(), permissions...), append(rs.Syscaps(), syscaps...))
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
