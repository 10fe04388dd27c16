package csvmapper

import (
	"fmt"

	"csv-mapper/internal/stream"
	"csv-mapper/record"
)

// Rows is a pull based iterator over the records of one file.
//
//	rows, err := m.Open()
//	if err != nil {
//		return err
//	}
//	defer rows.Close()
//
//	for rows.Next() {
//		use(rows.Record())
//	}
//
//	return rows.Err()
type Rows[T any] struct {
	reader *stream.Reader
	plan   *record.Plan[T]
	rec    T
	err    error
}

// Next reads and materializes the next line. It returns false at end of file
// or on the first error; the file is closed in both cases.
func (r *Rows[T]) Next() bool {
	if r.err != nil {
		return false
	}

	var zero T
	r.rec = zero

	if !r.reader.Next() {
		if err := r.reader.Err(); err != nil {
			r.err = err
		}

		return false
	}

	rec, err := r.plan.Materialize(r.reader.Cells())
	if err != nil {
		r.err = fmt.Errorf("line %d: %w", r.reader.Line(), err)
		_ = r.reader.Close()

		return false
	}

	r.rec = rec

	return true
}

// Record returns the record read by the last successful Next.
func (r *Rows[T]) Record() T {
	return r.rec
}

// Line returns the one-based file line of the current record.
func (r *Rows[T]) Line() int {
	return r.reader.Line()
}

// Err returns the error that stopped iteration, if any.
func (r *Rows[T]) Err() error {
	return r.err
}

// Close releases the file. It is safe to call more than once and after
// iteration has ended.
func (r *Rows[T]) Close() error {
	return r.reader.Close()
}
