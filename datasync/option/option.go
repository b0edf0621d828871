// Package option holds the optional value used wherever the wire protocol
// distinguishes "absent" from a zero value: a page total, a continuation,
// a take limit.
package option

import (
	"bytes"
	"encoding/json"
	"fmt"
)

var jsonNull = []byte("null")

// Option is either Some(value) or Nothing.
type Option[T any] struct {
	val   T
	valid bool
}

func Some[T any](val T) Option[T] {
	return Option[T]{val: val, valid: true}
}

func Nothing[T any]() Option[T] {
	return Option[T]{}
}

// FromPointer maps nil to Nothing.
func FromPointer[T any](ptr *T) Option[T] {
	if ptr == nil {
		return Nothing[T]()
	}
	return Some(*ptr)
}

func (o Option[T]) IsSome() bool {
	return o.valid
}

func (o Option[T]) IsNothing() bool {
	return !o.valid
}

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.val, o.valid
}

// Unwrap panics on Nothing.
func (o Option[T]) Unwrap() T {
	if !o.valid {
		panic("called Unwrap on a Nothing Option")
	}
	return o.val
}

func (o Option[T]) UnwrapOr(def T) T {
	if o.valid {
		return o.val
	}
	return def
}

func (o Option[T]) UnwrapOrZero() T {
	return o.val
}

// Or keeps the receiver when it is Some, otherwise returns other.
func (o Option[T]) Or(other Option[T]) Option[T] {
	if o.valid {
		return o
	}
	return other
}

func (o Option[T]) String() string {
	if o.valid {
		return fmt.Sprintf("Some(%v)", o.val)
	}
	return "Nothing"
}

// MarshalJSON encodes Nothing as null.
func (o Option[T]) MarshalJSON() ([]byte, error) {
	if !o.valid {
		return jsonNull, nil
	}
	return json.Marshal(o.val)
}

// UnmarshalJSON decodes null as Nothing. A missing member leaves the
// receiver untouched, so it stays Nothing when decoding into a fresh value.
func (o *Option[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		*o = Nothing[T]()
		return nil
	}
	var val T
	if err := json.Unmarshal(data, &val); err != nil {
		return err
	}
	*o = Some(val)
	return nil
}
