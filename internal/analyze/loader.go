package analyze

import (
	"errors"
	"fmt"
	"go/types"
	"path/filepath"
	"reflect"

	"golang.org/x/tools/go/packages"

	"csv-mapper/diagnostic"
	"csv-mapper/primitive"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedTypes |
	packages.NeedImports

// ErrTypeNotFound is returned when no loaded package declares the requested struct.
var ErrTypeNotFound = errors.New("type not found")

// Analyzer loads Go packages and describes their exported structs as CSV records.
type Analyzer struct {
	// Dir is the directory patterns are resolved from. Empty means the current directory.
	Dir string

	packages map[string]*PackageInfo
	decls    map[TypeID]structDecl
	structs  map[TypeID]*StructInfo // analyzed on first lookup
	diags    *diagnostic.Collector
}

type structDecl struct {
	pkgName string
	st      *types.Struct
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		packages: make(map[string]*PackageInfo),
		decls:    make(map[TypeID]structDecl),
		structs:  make(map[TypeID]*StructInfo),
		diags:    &diagnostic.Collector{},
	}
}

// LoadPackages loads the packages matching patterns
// (e.g., "./models", "csv-mapper/examples/people").
func (a *Analyzer) LoadPackages(patterns ...string) ([]*PackageInfo, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.Dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	out := make([]*PackageInfo, 0, len(pkgs))
	for _, pkg := range pkgs {
		out = append(out, a.processPackage(pkg))
	}

	return out, nil
}

// Diagnostics returns the notices collected while analyzing structs.
func (a *Analyzer) Diagnostics() *diagnostic.Collector {
	return a.diags
}

// processPackage extracts exported structs from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) *PackageInfo {
	if info, ok := a.packages[pkg.PkgPath]; ok {
		return info
	}

	info := &PackageInfo{
		Path: pkg.PkgPath,
		Name: pkg.Name,
	}

	if len(pkg.GoFiles) > 0 {
		info.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		// Only process exported type names
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !typeName.Exported() || typeName.IsAlias() {
			continue
		}

		// Generic structs have no single record type
		if named, ok := typeName.Type().(*types.Named); !ok || named.TypeParams().Len() > 0 {
			continue
		}

		st, ok := typeName.Type().Underlying().(*types.Struct)
		if !ok {
			continue
		}

		id := TypeID{PkgPath: pkg.PkgPath, Name: name}
		a.decls[id] = structDecl{pkgName: pkg.Name, st: st}
		info.Structs = append(info.Structs, id)
	}

	a.packages[pkg.PkgPath] = info

	return info
}

// analyzeStruct classifies every exported field of st. Its diagnostics are
// kept on the result and merged into the analyzer's collector.
func (a *Analyzer) analyzeStruct(id TypeID, pkgName string, st *types.Struct) *StructInfo {
	info := &StructInfo{ID: id, PkgName: pkgName}
	diags := &info.Diagnostics
	owners := make(map[string]string) // column -> field

	for i := range st.NumFields() {
		field := st.Field(i)
		if !field.Exported() || field.Embedded() {
			continue
		}

		tag := reflect.StructTag(st.Tag(i))

		column, skip := parseTag(tag)
		if skip {
			diags.AddInfo(diagnostic.CodeSkippedField,
				fmt.Sprintf("%s: skipped by %s tag", id.Name, TagKey), diagnostic.NoColumn, field.Name())

			continue
		}

		if column == "" {
			column = field.Name()
		}

		fi := FieldInfo{
			Name:   field.Name(),
			Column: column,
			Type:   field.Type(),
			Tag:    tag,
			Index:  i,
		}
		fi.Shape, fi.Kind = classify(field.Type())

		if !fi.Supported() {
			fi.Reason = "unsupported field type " + types.TypeString(field.Type(), packageName)
			info.Unsupported = append(info.Unsupported, fi)
			diags.AddWarning(diagnostic.CodeUnsupportedField,
				fmt.Sprintf("%s: %s", id.Name, fi.Reason), diagnostic.NoColumn, fi.Name)

			continue
		}

		if owner, taken := owners[column]; taken {
			diags.AddError(diagnostic.CodeDuplicateField,
				fmt.Sprintf("%s: column %q is already used by field %s", id.Name, column, owner),
				diagnostic.NoColumn, fi.Name)

			continue
		}

		owners[column] = fi.Name
		info.Fields = append(info.Fields, fi)
	}

	a.diags.Merge(diags)

	return info
}

// Struct returns the analyzed struct by its package path and name.
// Unsupported fields are reported to Diagnostics on the first lookup.
func (a *Analyzer) Struct(pkgPath, name string) (*StructInfo, error) {
	id := TypeID{PkgPath: pkgPath, Name: name}

	if info, ok := a.structs[id]; ok {
		return info, nil
	}

	decl, ok := a.decls[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTypeNotFound, id)
	}

	info := a.analyzeStruct(id, decl.pkgName, decl.st)
	a.structs[id] = info

	return info, nil
}

// FindStruct returns the struct named name from any loaded package.
// The name must be unique across loaded packages.
func (a *Analyzer) FindStruct(name string) (*StructInfo, error) {
	var found *TypeID

	for id := range a.decls {
		if id.Name != name {
			continue
		}

		if found != nil {
			return nil, fmt.Errorf("type %s is ambiguous: declared in %s and %s",
				name, found.PkgPath, id.PkgPath)
		}

		found = &id
	}

	if found == nil {
		return nil, fmt.Errorf("%w: %s", ErrTypeNotFound, name)
	}

	return a.Struct(found.PkgPath, found.Name)
}

// Package returns the loaded package with the given import path.
func (a *Analyzer) Package(path string) (*PackageInfo, bool) {
	info, ok := a.packages[path]
	return info, ok
}

// classify determines how a field of type t maps onto a column.
func classify(t types.Type) (FieldShape, primitive.KindEnum) {
	t = types.Unalias(t)

	if kind, ok := scalarKind(t); ok {
		return ShapeScalar, kind
	}

	switch tt := t.(type) {
	case *types.Pointer:
		if kind, ok := scalarKind(types.Unalias(tt.Elem())); ok {
			return ShapePointer, kind
		}

	case *types.Named:
		obj := tt.Obj()
		if obj.Pkg() != nil && obj.Pkg().Path() == OptionalPkgPath && obj.Name() == "Value" {
			if args := tt.TypeArgs(); args.Len() == 1 {
				if kind, ok := scalarKind(types.Unalias(args.At(0))); ok {
					return ShapeOptional, kind
				}
			}

			return ShapeUnsupported, 0
		}

		if basic, ok := tt.Underlying().(*types.Basic); ok && tt.TypeParams().Len() == 0 {
			if kind, ok := scalarKind(basic); ok {
				return ShapeNamed, kind
			}
		}
	}

	return ShapeUnsupported, 0
}

// scalarKind reports the kind of t when t is exactly one of the scalar types.
func scalarKind(t types.Type) (primitive.KindEnum, bool) {
	switch tt := t.(type) {
	case *types.Basic:
		kind := primitive.FromName(tt.Name())
		return kind, kind.IsValid()

	case *types.Named:
		obj := tt.Obj()
		if obj.Pkg() == nil || obj.Pkg().Path() != "time" {
			return 0, false
		}

		kind := primitive.FromName("time." + obj.Name())

		return kind, kind.IsValid()
	}

	return 0, false
}

func packageName(p *types.Package) string {
	return p.Name()
}
