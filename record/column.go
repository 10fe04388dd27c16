package record

import (
	"errors"

	"csv-mapper/convert"
	"csv-mapper/optional"
	"csv-mapper/primitive"
)

// Column is the typed accessor for one settable field of T.
// Columns are created by Field, Optional, Pointer and Custom and compared by identity.
type Column[T any] struct {
	name     string
	kind     primitive.KindEnum
	optional bool
	assign   func(rec *T, text string, opts convert.Options) error
}

// Name returns the field identifier used for mapping and header matching.
func (c *Column[T]) Name() string {
	return c.name
}

// Kind returns the scalar kind the cell text is converted into.
func (c *Column[T]) Kind() primitive.KindEnum {
	return c.kind
}

// Optional reports whether an empty cell leaves the field absent rather than zero.
func (c *Column[T]) Optional() bool {
	return c.optional
}

// Assign converts text and stores it in rec.
func (c *Column[T]) Assign(rec *T, text string, opts convert.Options) error {
	return c.assign(rec, text, opts)
}

// Field declares a plain scalar field. An empty cell stores the zero value of V.
func Field[T any, V primitive.Scalar](name string, ref func(*T) *V) *Column[T] {
	return &Column[T]{
		name: name,
		kind: primitive.KindOf[V](),
		assign: func(rec *T, text string, opts convert.Options) error {
			v, err := convert.Parse[V](text, opts)
			if err != nil {
				return err
			}

			*ref(rec) = v

			return nil
		},
	}
}

// Optional declares an optional.Value field. An empty cell stores None.
func Optional[T any, V primitive.Scalar](name string, ref func(*T) *optional.Value[V]) *Column[T] {
	return &Column[T]{
		name:     name,
		kind:     primitive.KindOf[V](),
		optional: true,
		assign: func(rec *T, text string, opts convert.Options) error {
			v, err := convert.ParseOptional[V](text, opts)
			if err != nil {
				return err
			}

			*ref(rec) = v

			return nil
		},
	}
}

// Pointer declares a pointer field. An empty cell stores nil.
func Pointer[T any, V primitive.Scalar](name string, ref func(*T) **V) *Column[T] {
	return &Column[T]{
		name:     name,
		kind:     primitive.KindOf[V](),
		optional: true,
		assign: func(rec *T, text string, opts convert.Options) error {
			v, err := convert.ParsePointer[V](text, opts)
			if err != nil {
				return err
			}

			*ref(rec) = v

			return nil
		},
	}
}

// Custom declares a field of any type converted by parse, which receives the
// mapper's conversion options. An empty cell stores the zero value of V
// without calling parse.
func Custom[T any, V any](name string, ref func(*T) *V, parse func(string, convert.Options) (V, error)) *Column[T] {
	return &Column[T]{
		name: name,
		kind: primitive.KindCustom,
		assign: func(rec *T, text string, opts convert.Options) error {
			var v V
			if text != "" {
				parsed, err := parse(text, opts)
				if err != nil {
					var convErr *convert.Error
					if errors.As(err, &convErr) {
						return err
					}

					return &convert.Error{Text: text, Kind: primitive.KindCustom, Err: err}
				}

				v = parsed
			}

			*ref(rec) = v

			return nil
		},
	}
}
