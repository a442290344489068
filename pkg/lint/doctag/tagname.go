package doctag

// TagName is a recognized documentation tag.
type TagName int

// Recognized tags. TagUnknown covers everything else; unknown tags are
// ignored apart from the spelling check.
const (
	TagUnknown TagName = iota
	TagAddToGroup
	TagGroupStart // "{", written as @{
	TagGroupEnd   // "}", written as @}
	TagBrief
	TagDeprecated
	TagFile
	TagLibrary
	TagParam
	TagPermission
	TagReturn
	TagSince
	TagSyscap
)

var tagNames = map[string]TagName{
	"addtogroup": TagAddToGroup,
	"{":          TagGroupStart,
	"}":          TagGroupEnd,
	"brief":      TagBrief,
	"deprecated": TagDeprecated,
	"file":       TagFile,
	"library":    TagLibrary,
	"param":      TagParam,
	"permission": TagPermission,
	"return":     TagReturn,
	"since":      TagSince,
	"syscap":     TagSyscap,
}

// ParseTagName maps a lowercase tag spelling to its TagName.
func ParseTagName(s string) TagName {
	return tagNames[s]
}

// String returns the canonical spelling of the tag.
func (t TagName) String() string {
	switch t {
	case TagAddToGroup:
		return "addtogroup"
	case TagGroupStart:
		return "{"
	case TagGroupEnd:
		return "}"
	case TagBrief:
		return "brief"
	case TagDeprecated:
		return "deprecated"
	case TagFile:
		return "file"
	case TagLibrary:
		return "library"
	case TagParam:
		return "param"
	case TagPermission:
		return "permission"
	case TagReturn:
		return "return"
	case TagSince:
		return "since"
	case TagSyscap:
		return "syscap"
	default:
		return "unknown"
	}
}
