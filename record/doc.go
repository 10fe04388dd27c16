// Package record describes target record types and builds records from rows.
//
// A Schema is a compile-time checked accessor table: each Column pairs a field
// identifier with a function returning a pointer to the field, so assigning a
// converted cell needs no runtime reflection. Schemas are written by hand or
// generated with "csvmap gen":
//
//	var CustomerSchema = record.MustSchema(
//		record.Field("Id", func(c *Customer) *int { return &c.Id }),
//		record.Field("Email", func(c *Customer) *string { return &c.Email }),
//		record.Optional("CreditCard", func(c *Customer) *optional.Value[int64] { return &c.CreditCard }),
//	)
//
// Column kinds:
//   - Field: plain scalar, empty cell -> zero value
//   - Optional: optional.Value, empty cell -> None
//   - Pointer: *V, empty cell -> nil
//   - Custom: any type with a caller supplied parser, empty cell -> zero value
package record
