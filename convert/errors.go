package convert

import (
	"errors"
	"fmt"

	"csv-mapper/primitive"
)

// ErrConversion matches every *Error.
var ErrConversion = errors.New("conversion error")

// Error reports a cell text that could not be converted to its target kind.
type Error struct {
	Text string
	Kind primitive.KindEnum
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("cannot convert %q to %s: %v", e.Text, kindName(e.Kind), e.Err)
}

// Unwrap exposes both ErrConversion and the underlying parse error.
func (e *Error) Unwrap() []error {
	return []error{ErrConversion, e.Err}
}

func kindName(k primitive.KindEnum) string {
	switch k {
	case primitive.KindTime:
		return "time.Time"
	case primitive.KindDuration:
		return "time.Duration"
	case primitive.KindCustom:
		return "custom type"
	}

	if !k.IsValid() {
		return k.String()
	}

	// KindInt64 -> int64
	name := k.String()[len("Kind"):]

	return string(name[0]+('a'-'A')) + name[1:]
}
