package result_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cpearson/order-service/pkg/option"
	"github.com/cpearson/order-service/pkg/result"
)

func TestOkAndErr(t *testing.T) {
	ok := result.Ok[int, string](5)
	assert.True(t, ok.IsOk())
	assert.Equal(t, 5, ok.Unwrap())

	er := result.Err[int, string]("boom")
	assert.False(t, er.IsOk())
	assert.Equal(t, "boom", er.UnwrapErr())
}

func TestUnwrapWrongVariantPanics(t *testing.T) {
	assert.Panics(t, func() {
		result.Err[int, string]("e").Unwrap()
	})
	assert.Panics(t, func() {
		result.Ok[int, string](1).UnwrapErr()
	})
}

func TestMatchRunsExactlyOneBranch(t *testing.T) {
	okRuns, errRuns := 0, 0

	got := result.Match(result.Ok[int, string](2),
		func(v int) int { okRuns++; return v },
		func(e string) int { errRuns++; return -1 })
	assert.Equal(t, 2, got)
	assert.Equal(t, 1, okRuns)
	assert.Equal(t, 0, errRuns)

	got = result.Match(result.Err[int, string]("e"),
		func(v int) int { okRuns++; return v },
		func(e string) int { errRuns++; return -1 })
	assert.Equal(t, -1, got)
	assert.Equal(t, 1, okRuns)
	assert.Equal(t, 1, errRuns)
}

func TestBindShortCircuitsAndPreservesError(t *testing.T) {
	calls := 0
	got := result.Bind(result.Err[int, string]("original"), func(v int) result.Result[int, string] {
		calls++
		return result.Ok[int, string](v)
	})

	assert.Equal(t, 0, calls)
	assert.Equal(t, "original", got.UnwrapErr())
}

func TestBindInvokesOnceOnOk(t *testing.T) {
	calls := 0
	got := result.Bind(result.Ok[int, string](4), func(v int) result.Result[int, string] {
		calls++
		return result.Ok[int, string](v + 1)
	})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 5, got.Unwrap())
}

func TestMapPreservesError(t *testing.T) {
	calls := 0
	got := result.Map(result.Err[int, string]("kept"), func(v int) int {
		calls++
		return v * 10
	})

	assert.Equal(t, 0, calls)
	assert.Equal(t, "kept", got.UnwrapErr())
}

func TestFromOptionSome(t *testing.T) {
	providerCalls := 0
	got := result.FromOption(option.Some(9), func() string {
		providerCalls++
		return "missing"
	})

	assert.Equal(t, 0, providerCalls, "provider must stay lazy on the value path")
	assert.Equal(t, 9, got.Unwrap())
}

func TestFromOptionNoneInvokesProviderOnce(t *testing.T) {
	providerCalls := 0
	got := result.FromOption(option.None[int](), func() string {
		providerCalls++
		return "missing"
	})

	assert.Equal(t, 1, providerCalls)
	assert.Equal(t, "missing", got.UnwrapErr())
}
