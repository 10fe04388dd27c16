package gen

import (
	"go/types"
	"os"
	"path/filepath"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csv-mapper/internal/analyze"
	"csv-mapper/primitive"
)

func syntheticStruct() *analyze.StructInfo {
	timePkg := types.NewPackage("time", "time")
	timeType := types.NewNamed(types.NewTypeName(0, timePkg, "Time", nil), types.NewStruct(nil, nil), nil)

	pkg := types.NewPackage("example/billing", "billing")
	tier := types.NewNamed(types.NewTypeName(0, pkg, "Tier", nil), types.Typ[types.Uint8], nil)

	return &analyze.StructInfo{
		ID:      analyze.TypeID{PkgPath: "example/billing", Name: "HTTPInvoice"},
		PkgName: "billing",
		Fields: []analyze.FieldInfo{
			{Name: "ID", Column: "Id", Shape: analyze.ShapeScalar, Kind: primitive.KindInt64, Type: types.Typ[types.Int64]},
			{Name: "IssuedAt", Column: "IssuedAt", Shape: analyze.ShapeScalar, Kind: primitive.KindTime, Type: timeType},
			{Name: "Note", Column: "note", Shape: analyze.ShapePointer, Kind: primitive.KindString, Type: types.NewPointer(types.Typ[types.String])},
			{Name: "Tier", Column: "Tier", Shape: analyze.ShapeNamed, Kind: primitive.KindUint8, Type: tier},
		},
	}
}

func TestGenerator_Generate(t *testing.T) {
	info := syntheticStruct()

	file, err := NewGenerator(DefaultGeneratorConfig()).Generate(info)
	require.NoError(t, err, spew.Sdump(info.Fields))

	code := string(file.Content)

	assert.Equal(t, "http_invoice_csvmap.go", file.Filename)
	assert.Contains(t, code, "// Code generated by csvmap. DO NOT EDIT.")
	assert.Contains(t, code, "package billing")
	assert.Contains(t, code, `"time"`)
	assert.Contains(t, code, `"csv-mapper/record"`)
	assert.Contains(t, code, `"csv-mapper/convert"`)
	assert.NotContains(t, code, `"csv-mapper/optional"`)
	assert.NotContains(t, code, `"example/billing"`, "own package is not imported")

	assert.Contains(t, code, "type HTTPInvoiceColumnSet struct {")
	assert.Contains(t, code, `record.Field("Id", func(r *HTTPInvoice) *int64 { return &r.ID })`)
	assert.Contains(t, code, `record.Field("IssuedAt", func(r *HTTPInvoice) *time.Time { return &r.IssuedAt })`)
	assert.Contains(t, code, `record.Pointer("note", func(r *HTTPInvoice) **string { return &r.Note })`)
	assert.Contains(t, code, `record.Custom("Tier", func(r *HTTPInvoice) *Tier { return &r.Tier }, func(s string, opts convert.Options) (Tier, error) {`)
	assert.Contains(t, code, "convert.Parse[uint8](s, opts)")
	assert.Contains(t, code, "return Tier(v), err")
	assert.Contains(t, code, "var HTTPInvoiceSchema = record.MustSchema(")
	assert.Contains(t, code, "HTTPInvoiceColumns.Tier,")
	assert.Contains(t, code, "// HTTPInvoiceSchema is the record schema of HTTPInvoice.")
}

func TestGenerator_WithoutComments(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.GenerateComments = false
	cfg.FileSuffix = ".gen.go"

	file, err := NewGenerator(cfg).Generate(syntheticStruct())
	require.NoError(t, err)

	assert.Equal(t, "http_invoice.gen.go", file.Filename)
	assert.NotContains(t, string(file.Content), "// HTTPInvoiceSchema")
}

func TestGenerator_NoFields(t *testing.T) {
	info := &analyze.StructInfo{ID: analyze.TypeID{PkgPath: "example/empty", Name: "Empty"}, PkgName: "empty"}

	_, err := NewGenerator(DefaultGeneratorConfig()).Generate(info)
	require.ErrorIs(t, err, ErrNoFields)
}

func TestGenerator_PeopleIntegration(t *testing.T) {
	analyzer := analyze.NewAnalyzer()
	_, err := analyzer.LoadPackages("csv-mapper/examples/people")
	require.NoError(t, err)

	info, err := analyzer.FindStruct("President")
	require.NoError(t, err)

	file, err := NewGenerator(DefaultGeneratorConfig()).Generate(info)
	require.NoError(t, err, spew.Sdump(info.Fields))
	assert.Equal(t, "president_csvmap.go", file.Filename)

	code := string(file.Content)
	assert.Contains(t, code, `record.Optional("LeftOffice", func(r *President) *optional.Value[time.Time] { return &r.LeftOffice })`)
	assert.Contains(t, code, `record.Field("PresidencyId", func(r *President) *int { return &r.PresidencyID })`)
	assert.Contains(t, code, "convert.Parse[string](s, opts)")
	assert.NotContains(t, code, "Aliases")
	assert.NotContains(t, code, "Wikipedia")
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	files := []GeneratedFile{
		{Filename: "a_csvmap.go", Content: []byte("package a\n")},
		{Filename: "b_csvmap.go", Content: []byte("package b\n")},
	}

	require.NoError(t, WriteFiles(files, dir))

	for _, f := range files {
		got, err := os.ReadFile(filepath.Join(dir, f.Filename))
		require.NoError(t, err)
		assert.Equal(t, f.Content, got)
	}
}

func TestWriteDebugUnformatted(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, writeDebugUnformatted(dir, "x_csvmap.go", []byte("package x")))
	_, err := os.Stat(filepath.Join(dir, "x_csvmap.unformatted.go"))
	require.NoError(t, err)

	require.NoError(t, writeDebugUnformatted("", "x.go", nil))
}

func TestSnakeCase(t *testing.T) {
	tests := map[string]string{
		"President":   "president",
		"HTTPInvoice": "http_invoice",
		"OrderID":     "order_id",
		"userProfile": "user_profile",
		"A":           "a",
	}

	for in, want := range tests {
		assert.Equal(t, want, snakeCase(in), in)
	}
}

func TestIsStdlib(t *testing.T) {
	assert.True(t, isStdlib("time"))
	assert.True(t, isStdlib("net/http"))
	assert.False(t, isStdlib("csv-mapper/record"))
	assert.False(t, isStdlib("github.com/rs/zerolog"))
}
