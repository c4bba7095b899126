// Package postgres backs the record store with pgx. Records are stored as
// JSONB documents keyed by a bigserial id; Update runs read-modify-write
// inside a transaction with a row lock, so concurrent mutations of the same
// record serialize at the database.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cpearson/order-service/pkg/option"
	"github.com/cpearson/order-service/pkg/pipeline"
)

// Store holds records of one type in a single-table JSONB layout.
type Store[T any] struct {
	log    *slog.Logger
	pool   *pgxpool.Pool
	table  string
	newRec func(id int64) T
	encode func(T) ([]byte, error)
	decode func([]byte) (T, error)
}

func NewStore[T any](log *slog.Logger, pool *pgxpool.Pool, table string, newRec func(id int64) T, encode func(T) ([]byte, error), decode func([]byte) (T, error)) *Store[T] {
	return &Store[T]{
		log:    log,
		pool:   pool,
		table:  table,
		newRec: newRec,
		encode: encode,
		decode: decode,
	}
}

// Create inserts a fresh record, applying init before the row is written.
func (s *Store[T]) Create(init func(*T)) pipeline.Task[T] {
	return func(ctx context.Context) (T, error) {
		var zero T
		tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
		if err != nil {
			return zero, err
		}
		defer func() {
			_ = tx.Rollback(ctx)
		}()

		var id int64
		if err := tx.QueryRow(ctx, fmt.Sprintf(`INSERT INTO %s (doc) VALUES ('null') RETURNING id`, s.table)).Scan(&id); err != nil {
			return zero, err
		}

		item := s.newRec(id)
		if init != nil {
			init(&item)
		}
		doc, err := s.encode(item)
		if err != nil {
			return zero, err
		}
		if _, err := tx.Exec(ctx, fmt.Sprintf(`UPDATE %s SET doc=$1 WHERE id=$2`, s.table), doc, id); err != nil {
			return zero, err
		}
		if err := tx.Commit(ctx); err != nil {
			return zero, err
		}
		return item, nil
	}
}

func (s *Store[T]) GetByID(id int64) pipeline.Task[option.Option[T]] {
	return func(ctx context.Context) (option.Option[T], error) {
		var doc []byte
		err := s.pool.QueryRow(ctx, fmt.Sprintf(`SELECT doc FROM %s WHERE id=$1`, s.table), id).Scan(&doc)
		if errors.Is(err, pgx.ErrNoRows) {
			return option.None[T](), nil
		}
		if err != nil {
			return option.None[T](), err
		}
		item, err := s.decode(doc)
		if err != nil {
			return option.None[T](), err
		}
		return option.Some(item), nil
	}
}

// AllWhere scans the table in id order and filters in process. The data sets
// this service manages are demo-sized; a per-query index is not worth the
// coupling to the document layout.
func (s *Store[T]) AllWhere(pred func(T) bool) pipeline.Task[[]T] {
	return func(ctx context.Context) ([]T, error) {
		items, err := s.scanAll(ctx)
		if err != nil {
			return nil, err
		}
		matched := make([]T, 0, len(items))
		for _, item := range items {
			if pred(item) {
				matched = append(matched, item)
			}
		}
		return matched, nil
	}
}

func (s *Store[T]) SingleWhere(pred func(T) bool) pipeline.Task[option.Option[T]] {
	return func(ctx context.Context) (option.Option[T], error) {
		items, err := s.scanAll(ctx)
		if err != nil {
			return option.None[T](), err
		}
		found := option.None[T]()
		count := 0
		for _, item := range items {
			if pred(item) {
				count++
				if count > 1 {
					return option.None[T](), nil
				}
				found = option.Some(item)
			}
		}
		if count != 1 {
			return option.None[T](), nil
		}
		return found, nil
	}
}

// Update locks the row, applies fn, and writes back only when fn returns
// nil. fn errors roll the transaction back and propagate unchanged.
func (s *Store[T]) Update(id int64, fn func(*T) error) pipeline.Task[T] {
	return func(ctx context.Context) (T, error) {
		var zero T
		tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
		if err != nil {
			return zero, err
		}
		defer func() {
			_ = tx.Rollback(ctx)
		}()

		var doc []byte
		if err := tx.QueryRow(ctx, fmt.Sprintf(`SELECT doc FROM %s WHERE id=$1 FOR UPDATE`, s.table), id).Scan(&doc); err != nil {
			return zero, err
		}
		item, err := s.decode(doc)
		if err != nil {
			return zero, err
		}
		if err := fn(&item); err != nil {
			return zero, err
		}
		updated, err := s.encode(item)
		if err != nil {
			return zero, err
		}
		if _, err := tx.Exec(ctx, fmt.Sprintf(`UPDATE %s SET doc=$1 WHERE id=$2`, s.table), updated, id); err != nil {
			return zero, err
		}
		if err := tx.Commit(ctx); err != nil {
			return zero, err
		}
		return item, nil
	}
}

func (s *Store[T]) scanAll(ctx context.Context) ([]T, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`SELECT doc FROM %s ORDER BY id`, s.table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []T
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		item, err := s.decode(doc)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
