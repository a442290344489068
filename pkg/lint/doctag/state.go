package doctag

// DocState accumulates the tags of one comment block.
type DocState struct {
	Brief      string
	Deprecated string
	File       string
	Permission string
	Since      string
	Syscap     string

	// ParamIndex is the position of the last @param seen, -1 before the first.
	ParamIndex int
}

// NewDocState returns the state for a fresh comment block.
func NewDocState() *DocState {
	return &DocState{ParamIndex: -1}
}

// ParamCount returns the number of @param tags seen.
func (d *DocState) ParamCount() int {
	return d.ParamIndex + 1
}

// GroupState tracks the @addtogroup braces of a file.
type GroupState int

// Group states. A group that was entered must reach GroupClosed by the end
// of the file.
const (
	GroupOutside GroupState = iota
	GroupUnopened
	GroupOpened
	GroupClosed
)

// String returns the state name.
func (g GroupState) String() string {
	switch g {
	case GroupUnopened:
		return "unopened"
	case GroupOpened:
		return "opened"
	case GroupClosed:
		return "closed"
	default:
		return "outside"
	}
}

// FileState is the documentation state of one file's traversal.
// It is created per file and never shared between files.
type FileState struct {
	GroupName    string
	Group        GroupState
	InGroupScope bool

	FileName    string
	HasFile     bool
	InFileScope bool

	// File companions, nil until seen inside file scope.
	FileBrief   *string
	FileLibrary *string
	FileSyscap  *string
}

// NewFileState returns the state for a new file.
func NewFileState() *FileState {
	return &FileState{}
}

// HasGroup reports whether an @addtogroup was seen.
func (f *FileState) HasGroup() bool {
	return f.Group != GroupOutside
}

// endBlock leaves group and file scope; scopes never span comment blocks.
func (f *FileState) endBlock() {
	f.InGroupScope = false
	f.InFileScope = false
}
