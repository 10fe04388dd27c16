package analyze

import (
	"go/types"
	"reflect"
	"strings"

	"csv-mapper/diagnostic"
	"csv-mapper/primitive"
)

// Import paths the generated code refers to.
const (
	OptionalPkgPath = "csv-mapper/optional"
	RecordPkgPath   = "csv-mapper/record"
	ConvertPkgPath  = "csv-mapper/convert"
)

// TagKey is the struct tag that renames or skips a field.
const TagKey = "csv"

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "csv-mapper/examples/people"
	Name    string // e.g., "President"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// FieldShape tells how a struct field maps onto a record column.
type FieldShape int

const (
	ShapeUnsupported FieldShape = iota
	ShapeScalar                 // int, string, time.Time, ...
	ShapeOptional               // optional.Value[scalar]
	ShapePointer                // *scalar
	ShapeNamed                  // named type over a basic scalar, e.g. type Level int
)

// String returns a human-readable representation of the FieldShape.
func (s FieldShape) String() string {
	switch s {
	case ShapeScalar:
		return "scalar"
	case ShapeOptional:
		return "optional"
	case ShapePointer:
		return "pointer"
	case ShapeNamed:
		return "named"
	default:
		return "unsupported"
	}
}

// FieldInfo describes one exported struct field.
type FieldInfo struct {
	Name   string            // Go field name
	Column string            // column identifier: csv tag name or Go field name
	Shape  FieldShape        // how the field is populated
	Kind   primitive.KindEnum // scalar kind of the value, element or underlying type
	Type   types.Type        // declared field type
	Tag    reflect.StructTag // raw struct tag
	Index  int               // field index in the struct
	Reason string            // why the field is unsupported
}

// Supported reports whether the field can be populated from a cell.
func (f *FieldInfo) Supported() bool {
	return f.Shape != ShapeUnsupported
}

// StructInfo describes a struct type and its columns.
type StructInfo struct {
	ID          TypeID
	PkgName     string
	Fields      []FieldInfo // supported fields in declaration order
	Unsupported []FieldInfo
	// Diagnostics holds the notices raised while analyzing this struct.
	// Errors mean no valid schema can be generated.
	Diagnostics diagnostic.Collector
}

// Columns returns the column identifiers of the supported fields.
func (s *StructInfo) Columns() []string {
	out := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		out[i] = f.Column
	}

	return out
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path    string   // Import path
	Name    string   // Package name
	Dir     string   // Directory of the package sources
	Structs []TypeID // Exported struct types in this package
}

// parseTag returns the column name from a csv tag and whether the field is skipped.
func parseTag(tag reflect.StructTag) (string, bool) {
	value, ok := tag.Lookup(TagKey)
	if !ok {
		return "", false
	}

	name, _, _ := strings.Cut(value, ",")
	if name == "-" {
		return "", true
	}

	return name, false
}
