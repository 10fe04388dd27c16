package record

import (
	"errors"
	"fmt"
)

var (
	// ErrFieldNotFound is returned when a mapping names a field the schema lacks.
	ErrFieldNotFound = errors.New("field not found")
	// ErrRowShape matches every *RowShapeError.
	ErrRowShape = errors.New("row has too few cells")
	// ErrInvalidSchema is returned by NewSchema for malformed column sets.
	ErrInvalidSchema = errors.New("invalid schema")
)

// RowShapeError reports a row too short for a mapped column position.
type RowShapeError struct {
	Field    string
	Position int
	Cells    int
}

func (e *RowShapeError) Error() string {
	return fmt.Sprintf("field %q reads column %d but the row has %d cells", e.Field, e.Position, e.Cells)
}

// Unwrap returns ErrRowShape.
func (e *RowShapeError) Unwrap() error {
	return ErrRowShape
}
