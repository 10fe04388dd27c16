// Package csvmapper reads delimited text files into typed Go records.
//
// The target type is described by a record.Schema, a table of typed field
// accessors written by hand or generated with "csvmap gen". A Mapper pairs a
// schema with one file and a column mapping, set explicitly or inferred from
// the header line:
//
//	m, err := csvmapper.New("customers.csv", CustomerSchema, csvmapper.AutoSetConfig())
//	if err != nil {
//		return err
//	}
//
//	for c, err := range m.Load() {
//		if err != nil {
//			return err
//		}
//		fmt.Println(c.Email)
//	}
//
// Cells are split on a single separator rune with no quoting support. Empty
// cells produce the zero value, or None and nil for optional fields. Any
// conversion failure or short row ends the read at that line.
package csvmapper
