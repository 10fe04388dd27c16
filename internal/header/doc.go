// Package header infers a column mapping from a CSV header line.
package header
