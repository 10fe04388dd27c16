// Package mapping holds the correspondence between record fields and CSV columns.
//
// A Table maps field identifiers to zero-based column positions. Setting an
// identifier twice keeps only the last position. Profiles persist a table
// together with reader settings as YAML:
//
//	separator: ";"
//	header: true
//	time_layouts: ["02/01/2006"]
//	fields:
//	  Id: 0
//	  Email: 3
package mapping
