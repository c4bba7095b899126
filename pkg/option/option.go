// Package option provides an optional-value container with no I/O dependencies.
package option

import "encoding/json"

// Option represents a value that may be absent. The zero value is None.
type Option[T any] struct {
	value T
	some  bool
}

// Some creates an Option containing a value.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, some: true}
}

// None creates an empty Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// IsSome returns true if the Option contains a value.
func (o Option[T]) IsSome() bool {
	return o.some
}

// IsNone returns true if the Option is empty.
func (o Option[T]) IsNone() bool {
	return !o.some
}

// Unwrap returns the contained value. Panics if empty; an empty unwrap is a
// programming error, not a recoverable condition.
func (o Option[T]) Unwrap() T {
	if !o.some {
		panic("option: Unwrap called on None")
	}
	return o.value
}

// UnwrapOr returns the contained value or the provided default. Never panics.
func (o Option[T]) UnwrapOr(def T) T {
	if o.some {
		return o.value
	}
	return def
}

// Match eliminates the Option: exactly one of the two branches runs.
func Match[T, R any](o Option[T], ifSome func(T) R, ifNone func() R) R {
	if o.some {
		return ifSome(o.value)
	}
	return ifNone()
}

// Bind applies f only when the Option holds a value; emptiness propagates
// without invoking f.
func Bind[T, R any](o Option[T], f func(T) Option[R]) Option[R] {
	if !o.some {
		return None[R]()
	}
	return f(o.value)
}

// Map is Bind specialized to a plain transform.
func Map[T, R any](o Option[T], f func(T) R) Option[R] {
	return Bind(o, func(v T) Option[R] { return Some(f(v)) })
}

// MarshalJSON encodes None as null.
func (o Option[T]) MarshalJSON() ([]byte, error) {
	if !o.some {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON decodes null as None.
func (o *Option[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = Option[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}
