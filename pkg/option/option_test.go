package option_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpearson/order-service/pkg/option"
)

func TestSomeHoldsValue(t *testing.T) {
	o := option.Some(42)

	assert.True(t, o.IsSome())
	assert.False(t, o.IsNone())
	assert.Equal(t, 42, o.Unwrap())
}

func TestNoneIsEmpty(t *testing.T) {
	o := option.None[int]()

	assert.False(t, o.IsSome())
	assert.True(t, o.IsNone())
}

func TestZeroValueIsNone(t *testing.T) {
	var o option.Option[string]

	assert.True(t, o.IsNone())
}

func TestUnwrapPanicsOnNone(t *testing.T) {
	assert.Panics(t, func() {
		option.None[int]().Unwrap()
	})
}

func TestUnwrapOr(t *testing.T) {
	assert.Equal(t, 7, option.Some(7).UnwrapOr(99))
	assert.Equal(t, 99, option.None[int]().UnwrapOr(99))
}

func TestMatchRunsExactlyOneBranch(t *testing.T) {
	someRuns, noneRuns := 0, 0

	got := option.Match(option.Some("v"),
		func(v string) string { someRuns++; return v },
		func() string { noneRuns++; return "none" })
	assert.Equal(t, "v", got)
	assert.Equal(t, 1, someRuns)
	assert.Equal(t, 0, noneRuns)

	got = option.Match(option.None[string](),
		func(v string) string { someRuns++; return v },
		func() string { noneRuns++; return "none" })
	assert.Equal(t, "none", got)
	assert.Equal(t, 1, someRuns)
	assert.Equal(t, 1, noneRuns)
}

func TestBindInvokesOnceOnSome(t *testing.T) {
	calls := 0
	got := option.Bind(option.Some(3), func(v int) option.Option[int] {
		calls++
		return option.Some(v * 2)
	})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 6, got.Unwrap())
}

func TestBindShortCircuitsOnNone(t *testing.T) {
	calls := 0
	got := option.Bind(option.None[int](), func(v int) option.Option[int] {
		calls++
		return option.Some(v)
	})

	assert.Equal(t, 0, calls)
	assert.True(t, got.IsNone())
}

func TestBindAssociativity(t *testing.T) {
	double := func(v int) option.Option[int] { return option.Some(v * 2) }
	inc := func(v int) option.Option[int] { return option.Some(v + 1) }

	left := option.Bind(option.Bind(option.Some(5), double), inc)
	right := option.Bind(option.Some(5), func(v int) option.Option[int] {
		return option.Bind(double(v), inc)
	})

	assert.Equal(t, left.Unwrap(), right.Unwrap())
}

func TestMap(t *testing.T) {
	got := option.Map(option.Some(2), func(v int) string {
		if v == 2 {
			return "two"
		}
		return "other"
	})
	assert.Equal(t, "two", got.Unwrap())

	none := option.Map(option.None[int](), func(v int) string { return "never" })
	assert.True(t, none.IsNone())
}

func TestJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(option.Some(int64(123)))
	require.NoError(t, err)
	assert.Equal(t, "123", string(data))

	data, err = json.Marshal(option.None[int64]())
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	var o option.Option[int64]
	require.NoError(t, json.Unmarshal([]byte("123"), &o))
	assert.Equal(t, int64(123), o.Unwrap())

	require.NoError(t, json.Unmarshal([]byte("null"), &o))
	assert.True(t, o.IsNone())
}
