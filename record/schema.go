package record

import (
	"fmt"

	"csv-mapper/convert"
	"csv-mapper/mapping"
)

// Schema is the accessor table for T: the set of columns a CSV file may populate.
type Schema[T any] struct {
	columns []*Column[T]
	byName  map[string]*Column[T]
}

// NewSchema builds a schema from columns. Names must be non-empty and unique.
func NewSchema[T any](columns ...*Column[T]) (*Schema[T], error) {
	s := &Schema[T]{
		columns: make([]*Column[T], 0, len(columns)),
		byName:  make(map[string]*Column[T], len(columns)),
	}

	for i, c := range columns {
		if c == nil {
			return nil, fmt.Errorf("%w: column %d is nil", ErrInvalidSchema, i)
		}

		if c.name == "" {
			return nil, fmt.Errorf("%w: column %d has no name", ErrInvalidSchema, i)
		}

		if _, dup := s.byName[c.name]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrInvalidSchema, c.name)
		}

		s.columns = append(s.columns, c)
		s.byName[c.name] = c
	}

	return s, nil
}

// MustSchema is like NewSchema but panics on error.
// It is meant for package level schema variables.
func MustSchema[T any](columns ...*Column[T]) *Schema[T] {
	s, err := NewSchema(columns...)
	if err != nil {
		panic(err)
	}

	return s
}

// Columns returns the columns in declaration order.
func (s *Schema[T]) Columns() []*Column[T] {
	out := make([]*Column[T], len(s.columns))
	copy(out, s.columns)

	return out
}

// Names returns the column names in declaration order.
func (s *Schema[T]) Names() []string {
	out := make([]string, len(s.columns))
	for i, c := range s.columns {
		out[i] = c.name
	}

	return out
}

// Lookup finds a column by exact name.
func (s *Schema[T]) Lookup(name string) (*Column[T], bool) {
	c, ok := s.byName[name]
	return c, ok
}

// Contains reports whether c is one of this schema's columns.
func (s *Schema[T]) Contains(c *Column[T]) bool {
	if c == nil {
		return false
	}

	return s.byName[c.name] == c
}

// Bind resolves every mapped field against the schema.
func (s *Schema[T]) Bind(table *mapping.Table, opts convert.Options) (*Plan[T], error) {
	p := &Plan[T]{
		bindings: make([]binding[T], 0, table.Len()),
		opts:     opts,
	}

	for field, pos := range table.All() {
		c, ok := s.byName[field]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, field)
		}

		p.bindings = append(p.bindings, binding[T]{column: c, position: pos})
	}

	return p, nil
}

// Materialize builds one record from row using table.
// It is Bind followed by Plan.Materialize; streaming callers should bind once.
func (s *Schema[T]) Materialize(row []string, table *mapping.Table, opts convert.Options) (T, error) {
	p, err := s.Bind(table, opts)
	if err != nil {
		var zero T
		return zero, err
	}

	return p.Materialize(row)
}

type binding[T any] struct {
	column   *Column[T]
	position int
}

// Plan is a mapping table resolved against a schema. It is read-only and
// may be reused for any number of rows.
type Plan[T any] struct {
	bindings []binding[T]
	opts     convert.Options
}

// Width returns the minimum number of cells a row needs.
func (p *Plan[T]) Width() int {
	width := 0
	for _, b := range p.bindings {
		width = max(width, b.position+1)
	}

	return width
}

// Materialize builds one record from row. On error the zero T is returned,
// never a partially populated record.
func (p *Plan[T]) Materialize(row []string) (T, error) {
	var rec T

	for _, b := range p.bindings {
		if b.position >= len(row) {
			var zero T
			return zero, &RowShapeError{Field: b.column.name, Position: b.position, Cells: len(row)}
		}

		if err := b.column.assign(&rec, row[b.position], p.opts); err != nil {
			var zero T
			return zero, fmt.Errorf("field %q column %d: %w", b.column.name, b.position, err)
		}
	}

	return rec, nil
}
