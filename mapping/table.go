package mapping

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

// ErrNegativePosition is returned by Set for positions below zero.
var ErrNegativePosition = errors.New("column position must not be negative")

// Table maps record field identifiers to zero-based column positions.
// Each identifier appears at most once; several identifiers may share a position.
// A Table is not safe for concurrent mutation.
type Table struct {
	positions map[string]int
	order     []string
}

// NewTable creates an empty Table.
func NewTable() *Table {
	return &Table{positions: make(map[string]int)}
}

// Set maps field to position, replacing any previous position for field.
func (t *Table) Set(field string, position int) error {
	if position < 0 {
		return fmt.Errorf("%w: %s -> %d", ErrNegativePosition, field, position)
	}

	if t.positions == nil {
		t.positions = make(map[string]int)
	}

	if _, ok := t.positions[field]; !ok {
		t.order = append(t.order, field)
	}

	t.positions[field] = position

	return nil
}

// Remove deletes the mapping for field. Removing an unmapped field is a no-op.
func (t *Table) Remove(field string) {
	if _, ok := t.positions[field]; !ok {
		return
	}

	delete(t.positions, field)
	t.order = slices.DeleteFunc(t.order, func(f string) bool { return f == field })
}

// Lookup returns the position mapped to field.
func (t *Table) Lookup(field string) (int, bool) {
	pos, ok := t.positions[field]
	return pos, ok
}

// Len returns the number of mapped fields.
func (t *Table) Len() int {
	return len(t.order)
}

// Fields returns the mapped identifiers in insertion order.
func (t *Table) Fields() []string {
	return slices.Clone(t.order)
}

// All yields every (field, position) pair in insertion order.
func (t *Table) All() iter.Seq2[string, int] {
	return func(yield func(string, int) bool) {
		for _, field := range t.order {
			if !yield(field, t.positions[field]) {
				return
			}
		}
	}
}

// MaxPosition returns the highest mapped position, or -1 for an empty table.
func (t *Table) MaxPosition() int {
	highest := -1
	for _, pos := range t.positions {
		highest = max(highest, pos)
	}

	return highest
}

// Clone returns an independent copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{
		positions: make(map[string]int, len(t.positions)),
		order:     slices.Clone(t.order),
	}

	for field, pos := range t.positions {
		out.positions[field] = pos
	}

	return out
}
