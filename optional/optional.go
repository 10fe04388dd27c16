// Package optional provides Value, a value that may be absent.
//
// A record field of type Value[T] receives None for an empty CSV cell and
// Some(parsed) otherwise.
package optional

import "fmt"

// Value holds either a T (Some) or nothing (None). The zero Value is None.
type Value[T any] struct {
	value T
	valid bool
}

// Some returns a present Value holding v.
func Some[T any](v T) Value[T] {
	return Value[T]{value: v, valid: true}
}

// None returns an absent Value.
func None[T any]() Value[T] {
	return Value[T]{}
}

// FromPointer returns Some(*p), or None when p is nil.
func FromPointer[T any](p *T) Value[T] {
	if p == nil {
		return None[T]()
	}

	return Some(*p)
}

// IsSome reports whether the value is present.
func (v Value[T]) IsSome() bool {
	return v.valid
}

// IsNone reports whether the value is absent.
func (v Value[T]) IsNone() bool {
	return !v.valid
}

// Get returns the held value and whether it is present.
func (v Value[T]) Get() (T, bool) {
	return v.value, v.valid
}

// OrElse returns the held value, or fallback when absent.
func (v Value[T]) OrElse(fallback T) T {
	if !v.valid {
		return fallback
	}

	return v.value
}

// MustGet returns the held value and panics when absent.
func (v Value[T]) MustGet() T {
	if !v.valid {
		panic("optional: MustGet called on None")
	}

	return v.value
}

// Ptr returns a pointer to a copy of the held value, or nil when absent.
func (v Value[T]) Ptr() *T {
	if !v.valid {
		return nil
	}

	out := v.value

	return &out
}

// String formats Some(v) as v and None as "None".
func (v Value[T]) String() string {
	if !v.valid {
		return "None"
	}

	return fmt.Sprint(v.value)
}
