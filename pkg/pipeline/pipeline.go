// Package pipeline composes suspending operations with the same vocabulary as
// pkg/option and pkg/result.
//
// A Task is lazy: nothing runs until the Task is invoked with a context. That
// makes Bind chains strictly sequential: the second operation is never started
// before the first has completed, and a fault anywhere in the chain forwards
// to the final awaiter without starting the steps behind it.
package pipeline

import (
	"context"

	"github.com/cpearson/order-service/pkg/option"
	"github.com/cpearson/order-service/pkg/result"
)

// Task is a suspending operation producing T. The error return is the fault
// channel: collaborator and programmer defects, never business errors. Those
// ride inside a result.Result carried as T.
type Task[T any] func(ctx context.Context) (T, error)

// Of lifts a plain value into an immediately-ready Task.
func Of[T any](v T) Task[T] {
	return func(context.Context) (T, error) { return v, nil }
}

// Fail produces a Task that faults with err.
func Fail[T any](err error) Task[T] {
	return func(context.Context) (T, error) {
		var zero T
		return zero, err
	}
}

// Bind awaits t and, only on success, awaits f applied to its value. A fault
// from t forwards without invoking f; a fault from f's task forwards as-is.
func Bind[T, R any](t Task[T], f func(T) Task[R]) Task[R] {
	return func(ctx context.Context) (R, error) {
		v, err := t(ctx)
		if err != nil {
			var zero R
			return zero, err
		}
		return f(v)(ctx)
	}
}

// Map is Bind specialized to a non-suspending transform.
func Map[T, R any](t Task[T], f func(T) R) Task[R] {
	return Bind(t, func(v T) Task[R] { return Of(f(v)) })
}

// BindResult chains a result-producing Task into another. A fault short-
// circuits the chain; a business error passes through unchanged without
// invoking f; only a success value reaches f.
func BindResult[S, R, E any](t Task[result.Result[S, E]], f func(S) Task[result.Result[R, E]]) Task[result.Result[R, E]] {
	return Bind(t, func(r result.Result[S, E]) Task[result.Result[R, E]] {
		return result.Match(r,
			func(v S) Task[result.Result[R, E]] { return f(v) },
			func(e E) Task[result.Result[R, E]] { return Of(result.Err[R, E](e)) },
		)
	})
}

// MapResult transforms the success value inside a result-producing Task
// without re-suspending.
func MapResult[S, R, E any](t Task[result.Result[S, E]], f func(S) R) Task[result.Result[R, E]] {
	return Map(t, func(r result.Result[S, E]) result.Result[R, E] {
		return result.Map(r, f)
	})
}

// FromOption bridges a Task producing an Option into a Task producing a
// Result, applying the option-to-result conversion after the suspension
// completes. errProvider runs lazily, only on the empty path.
func FromOption[S, E any](t Task[option.Option[S]], errProvider func() E) Task[result.Result[S, E]] {
	return Map(t, func(o option.Option[S]) result.Result[S, E] {
		return result.FromOption(o, errProvider)
	})
}
