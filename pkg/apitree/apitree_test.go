package apitree

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/capilint/pkg/core"
)

func TestLoad_FrontendShape(t *testing.T) {
	files, err := Load(filepath.Join("testdata", "qos_frontend.json"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	file := files[0]
	assert.Equal(t, core.KindFile, file.Kind)
	assert.Equal(t, core.RelationDeclarations, file.Relation)
	assert.Nil(t, file.Location)
	assert.Equal(t, "resourceschedule/qos_manager/c/qos.h", file.Path())
	assert.True(t, file.HasComment())
	require.Len(t, file.Children, 3)

	enum := file.Children[0]
	assert.Equal(t, core.KindEnum, enum.Kind)
	assert.Equal(t, core.RelationMembers, enum.Relation)
	assert.Equal(t, &core.Location{Path: "resourceschedule/qos_manager/c/qos.h", Line: 50, Column: 14}, enum.Location)
	require.Len(t, enum.Children, 1)
	assert.Equal(t, core.KindEnumConstant, enum.Children[0].Kind)
	assert.Empty(t, enum.Params())

	fn := file.Children[1]
	assert.Equal(t, core.KindFunction, fn.Kind)
	assert.Equal(t, core.RelationParams, fn.Relation)
	require.Len(t, fn.Params(), 1)
	assert.Equal(t, "level", fn.Params()[0].Name)
	assert.False(t, fn.Params()[0].HasComment())

	typedef := file.Children[2]
	assert.Equal(t, core.KindUnknown, typedef.Kind)
	assert.Equal(t, core.NoComment, typedef.Comment)
	assert.Equal(t, core.RelationNone, typedef.Relation)
}

func TestLoad_NativeSingleObject(t *testing.T) {
	files, err := Load(filepath.Join("testdata", "native_single.json"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	file := files[0]
	assert.Equal(t, "inc/native_sensor.h", file.Name)
	require.Len(t, file.Children, 2)

	fn := file.Children[0]
	assert.False(t, fn.HasComment())
	require.Len(t, fn.Params(), 1)
	assert.Equal(t, 28, fn.Params()[0].Location.Column)

	st := file.Children[1]
	assert.Equal(t, core.RelationMembers, st.Relation)
	assert.Equal(t, core.KindField, st.Children[0].Kind)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		files   int
		wantErr string
	}{
		{name: "empty input", input: "  ", files: 0},
		{name: "empty array", input: "[]", files: 0},
		{name: "kindless top level is a file", input: `{"name":"a.h","children":[{"name":"X","kind":"MACRO_DEFINITION"}]}`, files: 1},
		{name: "malformed", input: `[{"name":`, wantErr: "decode declaration tree"},
		{name: "top level function", input: `{"name":"F","kind":"FUNCTION_DECL"}`, wantErr: "want file"},
		{name: "ambiguous children", input: `{"name":"a.h","children":[{"name":"F","kind":"FUNCTION_DECL","children":[{"name":"a"}],"parm":[{"name":"b"}]}]}`, wantErr: "more than one"},
		{name: "unknown relation", input: `{"name":"a.h","relation":"siblings"}`, wantErr: "unknown child relation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := Decode(strings.NewReader(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, files, tt.files)
		})
	}
}

func TestDecode_DefaultRelations(t *testing.T) {
	input := `{"name":"a.h","kind":"file","children":[
		{"name":"F","kind":"function","children":[{"name":"p","kind":"parameter"}]},
		{"name":"U","kind":"union","children":[{"name":"f","kind":"field"}]},
		{"name":"T","kind":"TYPEDEF_DECL","children":[{"name":"S","kind":"STRUCT_DECL"}]}
	]}`
	files, err := Decode(strings.NewReader(input))
	require.NoError(t, err)
	children := files[0].Children
	assert.Equal(t, core.RelationParams, children[0].Relation)
	assert.Equal(t, core.RelationMembers, children[1].Relation)
	assert.Equal(t, core.RelationDeclarations, children[2].Relation)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open declaration tree")
}
