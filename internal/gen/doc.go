// Package gen emits record schemas for analyzed structs.
//
// Generation uses text/template + go/format. For a struct T the output holds:
//   - TColumnSet: a struct with one *record.Column[T] per mapped field
//   - TColumns: the populated column set, for Mapper.SetField
//   - TSchema: the record.Schema built from every column
//
// Named types over a scalar, such as type Level int, become record.Custom
// columns that parse the underlying scalar and convert it.
package gen
