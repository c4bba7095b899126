// Package result provides a success-or-error container mirroring pkg/option.
package result

import "github.com/cpearson/order-service/pkg/option"

// Result holds either a success value or an error value, never both.
type Result[S, E any] struct {
	success S
	err     E
	ok      bool
}

// Ok creates a Result holding a success value.
func Ok[S, E any](v S) Result[S, E] {
	return Result[S, E]{success: v, ok: true}
}

// Err creates a Result holding an error value.
func Err[S, E any](e E) Result[S, E] {
	return Result[S, E]{err: e}
}

// IsOk returns true if the Result holds a success value.
func (r Result[S, E]) IsOk() bool {
	return r.ok
}

// Unwrap returns the success value. Panics if the Result holds an error.
func (r Result[S, E]) Unwrap() S {
	if !r.ok {
		panic("result: Unwrap called on an error result")
	}
	return r.success
}

// UnwrapErr returns the error value. Panics if the Result holds a success.
func (r Result[S, E]) UnwrapErr() E {
	if r.ok {
		panic("result: UnwrapErr called on a success result")
	}
	return r.err
}

// Match eliminates the Result: exactly one of the two branches runs.
func Match[S, E, R any](r Result[S, E], ifOk func(S) R, ifErr func(E) R) R {
	if r.ok {
		return ifOk(r.success)
	}
	return ifErr(r.err)
}

// Bind applies f only to a success value; an error passes through unchanged
// without invoking f.
func Bind[S, R, E any](r Result[S, E], f func(S) Result[R, E]) Result[R, E] {
	if !r.ok {
		return Err[R, E](r.err)
	}
	return f(r.success)
}

// Map is Bind specialized to a plain transform.
func Map[S, R, E any](r Result[S, E], f func(S) R) Result[R, E] {
	return Bind(r, func(v S) Result[R, E] { return Ok[R, E](f(v)) })
}

// FromOption converts an Option into a Result. A held value becomes a
// success; emptiness becomes the error produced by errProvider, which is
// invoked lazily and only on the empty path.
func FromOption[S, E any](o option.Option[S], errProvider func() E) Result[S, E] {
	return option.Match(o,
		func(v S) Result[S, E] { return Ok[S, E](v) },
		func() Result[S, E] { return Err[S, E](errProvider()) },
	)
}
