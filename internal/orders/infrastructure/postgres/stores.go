package postgres

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cpearson/order-service/internal/orders/domain"
)

// Migrate creates the record tables if they are missing.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, table := range []string{"users", "products", "orders"} {
		_, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS `+table+` (
			id bigserial PRIMARY KEY,
			doc jsonb NOT NULL
		)`)
		if err != nil {
			return err
		}
	}
	return nil
}

func NewUserStore(log *slog.Logger, pool *pgxpool.Pool) *Store[domain.User] {
	return NewStore(log, pool, "users",
		func(id int64) domain.User { return domain.User{ID: id} },
		encodeJSON[domain.User], decodeJSON[domain.User])
}

func NewProductStore(log *slog.Logger, pool *pgxpool.Pool) *Store[domain.Product] {
	return NewStore(log, pool, "products",
		func(id int64) domain.Product { return domain.Product{ID: id} },
		encodeJSON[domain.Product], decodeJSON[domain.Product])
}

func NewOrderStore(log *slog.Logger, pool *pgxpool.Pool) *Store[domain.Order] {
	return NewStore(log, pool, "orders",
		func(id int64) domain.Order { return domain.Order{ID: id, Lines: make(map[int64]int)} },
		encodeJSON[domain.Order],
		func(doc []byte) (domain.Order, error) {
			o, err := decodeJSON[domain.Order](doc)
			if o.Lines == nil {
				o.Lines = make(map[int64]int)
			}
			return o, err
		})
}

func encodeJSON[T any](item T) ([]byte, error) {
	return json.Marshal(item)
}

func decodeJSON[T any](doc []byte) (T, error) {
	var item T
	err := json.Unmarshal(doc, &item)
	return item, err
}
