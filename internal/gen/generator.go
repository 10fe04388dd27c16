package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"go/types"
	"sort"
	"strings"
	"text/template"
	"unicode"

	"csv-mapper/internal/analyze"
)

// ErrNoFields is returned for a struct without any mappable field.
var ErrNoFields = errors.New("struct has no mappable fields")

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// OutputDir is the directory where generated files are written.
	// Empty means the directory of the analyzed package.
	OutputDir string
	// FileSuffix is appended to the lowercased type name to form the file name.
	FileSuffix string
	// GenerateComments enables doc comments on generated declarations.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		FileSuffix:       "_csvmap.go",
		GenerateComments: true,
	}
}

// Generator emits record schemas for analyzed structs.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "president_csvmap.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// templateData holds all data needed for the schema template.
type templateData struct {
	PackageName      string
	TypeName         string
	StdImports       []string
	Imports          []string
	Columns          []columnData
	GenerateComments bool
}

// columnData is one generated column descriptor.
type columnData struct {
	Field       string // Go field name
	Column      string // column identifier
	Constructor string // record.Field, record.Optional, record.Pointer or record.Custom
	RefType     string // type the accessor points to
	ParseType   string // underlying scalar of a named field
}

// Generate produces the schema file for one struct.
func (g *Generator) Generate(info *analyze.StructInfo) (*GeneratedFile, error) {
	if len(info.Fields) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFields, info.ID)
	}

	data := g.buildTemplateData(info)

	var buf bytes.Buffer
	if err := schemaTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	filename := g.filename(info)

	// Format the generated code
	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Best-effort: write unformatted code to a sidecar file to aid debugging.
		_ = writeDebugUnformatted(g.config.OutputDir, filename, buf.Bytes())

		return &GeneratedFile{
			Filename: filename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	return &GeneratedFile{
		Filename: filename,
		Content:  formatted,
	}, nil
}

// buildTemplateData constructs the template data from an analyzed struct.
func (g *Generator) buildTemplateData(info *analyze.StructInfo) *templateData {
	imports := map[string]bool{analyze.RecordPkgPath: true}

	qualifier := func(p *types.Package) string {
		if p.Path() == info.ID.PkgPath {
			return ""
		}

		imports[p.Path()] = true

		return p.Name()
	}

	data := &templateData{
		PackageName:      info.PkgName,
		TypeName:         info.ID.Name,
		GenerateComments: g.config.GenerateComments,
	}

	for _, f := range info.Fields {
		col := columnData{
			Field:   f.Name,
			Column:  f.Column,
			RefType: types.TypeString(f.Type, qualifier),
		}

		switch f.Shape {
		case analyze.ShapeOptional:
			col.Constructor = "record.Optional"
		case analyze.ShapePointer:
			col.Constructor = "record.Pointer"
		case analyze.ShapeNamed:
			col.Constructor = "record.Custom"
			col.ParseType = types.TypeString(f.Type.Underlying(), qualifier)
			imports[analyze.ConvertPkgPath] = true
		default:
			col.Constructor = "record.Field"
		}

		data.Columns = append(data.Columns, col)
	}

	for path := range imports {
		if isStdlib(path) {
			data.StdImports = append(data.StdImports, path)
		} else {
			data.Imports = append(data.Imports, path)
		}
	}

	sort.Strings(data.StdImports)
	sort.Strings(data.Imports)

	return data
}

// filename returns the output file name for a struct.
func (g *Generator) filename(info *analyze.StructInfo) string {
	suffix := g.config.FileSuffix
	if suffix == "" {
		suffix = DefaultGeneratorConfig().FileSuffix
	}

	return snakeCase(info.ID.Name) + suffix
}

// isStdlib reports whether an import path belongs to the standard library.
func isStdlib(path string) bool {
	first, _, _ := strings.Cut(path, "/")
	return !strings.Contains(first, ".") && !strings.Contains(first, "-")
}

// snakeCase converts "HTTPServer" to "http_server".
func snakeCase(s string) string {
	runes := []rune(s)

	var b strings.Builder

	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prevLower := unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

			if prevLower || (unicode.IsUpper(runes[i-1]) && nextLower) {
				b.WriteByte('_')
			}
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// Template for the schema file

var schemaTemplate = template.Must(template.New("schema").Parse(`// Code generated by csvmap. DO NOT EDIT.

package {{.PackageName}}

import (
{{range .StdImports}}	"{{.}}"
{{end}}
{{range .Imports}}	"{{.}}"
{{end}})
{{$type := .TypeName}}
{{if .GenerateComments}}// {{$type}}ColumnSet holds one column descriptor per mapped field of {{$type}}.
{{end}}type {{$type}}ColumnSet struct {
{{range .Columns}}	{{.Field}} *record.Column[{{$type}}]
{{end}}}

{{if .GenerateComments}}// {{$type}}Columns are the column descriptors of {{$type}}, for Mapper.SetField.
{{end}}var {{$type}}Columns = {{$type}}ColumnSet{
{{range .Columns}}{{if .ParseType}}	{{.Field}}: {{.Constructor}}({{printf "%q" .Column}}, func(r *{{$type}}) *{{.RefType}} { return &r.{{.Field}} }, func(s string, opts convert.Options) ({{.RefType}}, error) {
		v, err := convert.Parse[{{.ParseType}}](s, opts)
		return {{.RefType}}(v), err
	}),
{{else}}	{{.Field}}: {{.Constructor}}({{printf "%q" .Column}}, func(r *{{$type}}) *{{.RefType}} { return &r.{{.Field}} }),
{{end}}{{end}}}

{{if .GenerateComments}}// {{$type}}Schema is the record schema of {{$type}}.
{{end}}var {{$type}}Schema = record.MustSchema(
{{range .Columns}}	{{$type}}Columns.{{.Field}},
{{end}})
`))
