package postgres_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/cpearson/order-service/internal/orders/domain"
	"github.com/cpearson/order-service/internal/orders/infrastructure/postgres"
	"github.com/cpearson/order-service/pkg/option"
)

// Requires docker; enable with ORDERS_PG_INTEGRATION=1.
func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if os.Getenv("ORDERS_PG_INTEGRATION") == "" {
		t.Skip("set ORDERS_PG_INTEGRATION=1 to run postgres integration tests")
	}

	ctx := context.Background()
	pgC, err := pgcontainer.Run(ctx,
		"postgres:16-alpine",
		pgcontainer.WithDatabase("orders"),
		pgcontainer.WithUsername("postgres"),
		pgcontainer.WithPassword("postgres"),
		pgcontainer.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	url, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool))
	return pool
}

func TestOrderStoreRoundTrip(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	log := slog.Default()
	orders := postgres.NewOrderStore(log, pool)

	created, err := orders.Create(func(o *domain.Order) {
		o.UserID = 1
		o.Lines[5] = 2
	})(ctx)
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	found, err := orders.GetByID(created.ID)(ctx)
	require.NoError(t, err)
	require.True(t, found.IsSome())
	got := found.Unwrap()
	assert.Equal(t, int64(1), got.UserID)
	assert.Equal(t, map[int64]int{5: 2}, got.Lines)
	assert.True(t, got.Active())

	missing, err := orders.GetByID(created.ID + 100)(ctx)
	require.NoError(t, err)
	assert.True(t, missing.IsNone())
}

func TestOrderStoreQueries(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	orders := postgres.NewOrderStore(slog.Default(), pool)

	active, err := orders.Create(func(o *domain.Order) { o.UserID = 7 })(ctx)
	require.NoError(t, err)
	_, err = orders.Create(func(o *domain.Order) {
		o.UserID = 7
		o.CompletedAt = option.Some(time.Now().UnixNano())
	})(ctx)
	require.NoError(t, err)

	single, err := orders.SingleWhere(func(o domain.Order) bool {
		return o.UserID == 7 && o.Active()
	})(ctx)
	require.NoError(t, err)
	require.True(t, single.IsSome())
	assert.Equal(t, active.ID, single.Unwrap().ID)

	completed, err := orders.AllWhere(func(o domain.Order) bool {
		return o.UserID == 7 && o.CompletedAt.IsSome()
	})(ctx)
	require.NoError(t, err)
	assert.Len(t, completed, 1)

	none, err := orders.AllWhere(func(o domain.Order) bool { return o.UserID == 99 })(ctx)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestOrderStoreUpdateRollsBackOnError(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	orders := postgres.NewOrderStore(slog.Default(), pool)

	created, err := orders.Create(func(o *domain.Order) {
		o.UserID = 3
		o.Lines[1] = 1
	})(ctx)
	require.NoError(t, err)

	updated, err := orders.Update(created.ID, func(o *domain.Order) error {
		o.Lines[1] = 9
		return nil
	})(ctx)
	require.NoError(t, err)
	assert.Equal(t, 9, updated.Lines[1])

	_, err = orders.Update(created.ID, func(o *domain.Order) error {
		o.Lines[1] = 50
		return domain.InvalidQuantity(-1)
	})(ctx)
	require.Error(t, err)

	found, err := orders.GetByID(created.ID)(ctx)
	require.NoError(t, err)
	assert.Equal(t, 9, found.Unwrap().Lines[1], "rolled-back mutation must not persist")
}
