package core

// ErrorKind classifies a diagnostic into one of the compliance categories.
type ErrorKind string

// Error kinds reported by the checker.
const (
	// KindNamingError marks an identifier that fails its kind's naming pattern.
	KindNamingError ErrorKind = "NAMING_ERROR"
	// KindEmptyTag marks a tag that requires a value but has none.
	KindEmptyTag ErrorKind = "EMPTY_TAG"
	// KindWrongValue marks a tag value that fails a format or allow-list check.
	KindWrongValue ErrorKind = "WRONG_VALUE"
	// KindWrongScene marks a structural violation (brace misuse, missing companion tag, param count).
	KindWrongScene ErrorKind = "WRONG_SCENE"
	// KindErrorTag marks a tag spelled with uppercase letters.
	KindErrorTag ErrorKind = "ERROR_TAG"
	// KindUnknownDeprecated marks a malformed @deprecated tag.
	KindUnknownDeprecated ErrorKind = "UNKNOWN_DEPRECATED"
)

// AllErrorKinds lists every error kind in reporting order.
func AllErrorKinds() []ErrorKind {
	return []ErrorKind{
		KindNamingError,
		KindEmptyTag,
		KindWrongValue,
		KindWrongScene,
		KindErrorTag,
		KindUnknownDeprecated,
	}
}

// Scope tells which layer of the checker produced a diagnostic.
type Scope string

// Diagnostic scopes.
const (
	ScopeAPI  Scope = "api"  // naming of a declaration
	ScopeDoc  Scope = "doc"  // documentation tags of a declaration
	ScopeFile Scope = "file" // whole-file checks (file name, group and file docs)
)
