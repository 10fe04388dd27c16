package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csv-mapper/diagnostic"
	"csv-mapper/primitive"
)

const peoplePkg = "csv-mapper/examples/people"

func loadPresident(t *testing.T) (*Analyzer, *StructInfo) {
	t.Helper()

	analyzer := NewAnalyzer()
	pkgs, err := analyzer.LoadPackages(peoplePkg)
	require.NoError(t, err)
	require.Len(t, pkgs, 1)

	info, err := analyzer.Struct(peoplePkg, "President")
	require.NoError(t, err)

	return analyzer, info
}

func TestAnalyzer_LoadPackages(t *testing.T) {
	analyzer := NewAnalyzer()
	pkgs, err := analyzer.LoadPackages(peoplePkg)
	require.NoError(t, err)
	require.Len(t, pkgs, 1)

	pkg := pkgs[0]
	assert.Equal(t, peoplePkg, pkg.Path)
	assert.Equal(t, "people", pkg.Name)
	assert.NotEmpty(t, pkg.Dir)
	assert.Equal(t, []TypeID{
		{PkgPath: peoplePkg, Name: "President"},
		{PkgPath: peoplePkg, Name: "PresidentColumnSet"},
	}, pkg.Structs, "named non-struct types are not records")
	assert.Empty(t, analyzer.Diagnostics().All(), "structs are analyzed on lookup")

	got, ok := analyzer.Package(peoplePkg)
	require.True(t, ok)
	assert.Same(t, pkg, got)
}

func TestAnalyzer_PresidentFields(t *testing.T) {
	_, info := loadPresident(t)

	type want struct {
		name, column string
		shape        FieldShape
		kind         primitive.KindEnum
	}

	expected := []want{
		{"PresidencyID", "PresidencyId", ShapeScalar, primitive.KindInt},
		{"Name", "President", ShapeScalar, primitive.KindString},
		{"TookOffice", "TookOffice", ShapeScalar, primitive.KindTime},
		{"LeftOffice", "LeftOffice", ShapeOptional, primitive.KindTime},
		{"Party", "Party", ShapeNamed, primitive.KindString},
		{"HomeState", "HomeState", ShapePointer, primitive.KindString},
		{"Terms", "Terms", ShapeNamed, primitive.KindInt},
	}

	require.Len(t, info.Fields, len(expected))

	for i, w := range expected {
		f := info.Fields[i]
		assert.Equal(t, w.name, f.Name)
		assert.Equal(t, w.column, f.Column)
		assert.Equal(t, w.shape, f.Shape, f.Name)
		assert.Equal(t, w.kind, f.Kind, f.Name)
	}

	assert.Equal(t, []string{
		"PresidencyId", "President", "TookOffice", "LeftOffice", "Party", "HomeState", "Terms",
	}, info.Columns())
}

func TestAnalyzer_UnsupportedAndSkippedFields(t *testing.T) {
	analyzer, info := loadPresident(t)

	require.Len(t, info.Unsupported, 1)
	assert.Equal(t, "Aliases", info.Unsupported[0].Name)
	assert.Contains(t, info.Unsupported[0].Reason, "[]string")

	for _, f := range info.Fields {
		assert.NotEqual(t, "Wikipedia", f.Name, "csv:\"-\" skips the field")
	}

	_, err := analyzer.Struct(peoplePkg, "President")
	require.NoError(t, err)

	diags := analyzer.Diagnostics()
	require.Len(t, diags.Warnings, 1, "reported once")
	assert.Equal(t, diagnostic.CodeUnsupportedField, diags.Warnings[0].Code)
	assert.Equal(t, "Aliases", diags.Warnings[0].Field)

	require.Len(t, diags.Infos, 1)
	assert.Equal(t, diagnostic.CodeSkippedField, diags.Infos[0].Code)
	assert.Equal(t, "Wikipedia", diags.Infos[0].Field)

	assert.Equal(t, diags.All(), info.Diagnostics.All())
	require.NoError(t, info.Diagnostics.Err())
}

func TestAnalyzer_DuplicateColumns(t *testing.T) {
	const clashPkg = "csv-mapper/internal/analyze/testdata/clash"

	analyzer := NewAnalyzer()
	_, err := analyzer.LoadPackages(clashPkg)
	require.NoError(t, err)

	info, err := analyzer.Struct(clashPkg, "Contact")
	require.NoError(t, err)

	assert.Equal(t, []string{"Email", "Phone"}, info.Columns(), "the first field keeps the column")

	require.True(t, info.Diagnostics.HasErrors())
	require.Len(t, info.Diagnostics.Errors, 1)
	assert.Equal(t, diagnostic.CodeDuplicateField, info.Diagnostics.Errors[0].Code)
	assert.Equal(t, "Backup", info.Diagnostics.Errors[0].Field)
	require.EqualError(t, info.Diagnostics.Err(),
		`Backup: [duplicate_field] Contact: column "Email" is already used by field Email`)

	assert.True(t, analyzer.Diagnostics().HasErrors(), "merged into the analyzer")
}

func TestAnalyzer_FindStruct(t *testing.T) {
	analyzer := NewAnalyzer()
	_, err := analyzer.LoadPackages(peoplePkg)
	require.NoError(t, err)

	info, err := analyzer.FindStruct("President")
	require.NoError(t, err)
	assert.Equal(t, "people", info.PkgName)

	_, err = analyzer.FindStruct("Senator")
	require.ErrorIs(t, err, ErrTypeNotFound)

	_, err = analyzer.Struct(peoplePkg, "Party")
	require.ErrorIs(t, err, ErrTypeNotFound)
}

func TestAnalyzer_LoadErrors(t *testing.T) {
	analyzer := NewAnalyzer()
	_, err := analyzer.LoadPackages("csv-mapper/does/not/exist")
	require.Error(t, err)
}

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag      string
		wantName string
		wantSkip bool
	}{
		{``, "", false},
		{`json:"id"`, "", false},
		{`csv:"Id"`, "Id", false},
		{`csv:"Id,omitempty"`, "Id", false},
		{`csv:"-"`, "", true},
		{`csv:""`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			name, skip := parseTag(reflectTag(tt.tag))
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantSkip, skip)
		})
	}
}

func TestFieldShapeString(t *testing.T) {
	assert.Equal(t, "scalar", ShapeScalar.String())
	assert.Equal(t, "optional", ShapeOptional.String())
	assert.Equal(t, "pointer", ShapePointer.String())
	assert.Equal(t, "named", ShapeNamed.String())
	assert.Equal(t, "unsupported", ShapeUnsupported.String())
	assert.Equal(t, "csv-mapper/examples/people.President", TypeID{PkgPath: peoplePkg, Name: "President"}.String())
	assert.Equal(t, "int", TypeID{Name: "int"}.String())
}
