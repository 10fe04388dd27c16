// Package analyze loads Go packages and describes their structs as CSV records.
//
// It uses golang.org/x/tools/go/packages with go/types to classify every
// exported field:
//   - scalar: int, string, bool, float, time.Time, time.Duration, ...
//   - optional: optional.Value of a scalar
//   - pointer: *scalar
//   - named: a named type over a basic scalar, such as type Level int
//
// A `csv:"name"` tag renames the column, `csv:"-"` skips the field. Fields of
// any other type are reported as unsupported diagnostics.
package analyze
