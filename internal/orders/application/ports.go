package application

import (
	"context"

	"github.com/cpearson/order-service/internal/orders/domain"
	"github.com/cpearson/order-service/pkg/option"
	"github.com/cpearson/order-service/pkg/pipeline"
)

// Store is the typed record store the service suspends on. Every method
// returns a lazy Task; nothing touches storage until the task runs.
//
// Create persists a fresh record with a store-assigned identity, applying
// init before the record becomes visible. Update applies fn to the record
// under the store's lock and commits only when fn returns nil, so a failed
// mutation leaves the record untouched. AllWhere returns a plain slice; an
// empty result set is valid here, and any empty-is-error policy belongs to
// the caller.
type Store[T any] interface {
	Create(init func(*T)) pipeline.Task[T]
	GetByID(id int64) pipeline.Task[option.Option[T]]
	AllWhere(pred func(T) bool) pipeline.Task[[]T]
	SingleWhere(pred func(T) bool) pipeline.Task[option.Option[T]]
	Update(id int64, fn func(*T) error) pipeline.Task[T]
}

// UserReader resolves users by id for existence checks.
type UserReader interface {
	GetByID(id int64) pipeline.Task[option.Option[domain.User]]
}

// ProductReader resolves products by id.
type ProductReader interface {
	GetByID(id int64) pipeline.Task[option.Option[domain.Product]]
}

// EventPublisher emits order lifecycle events. Publishing is best-effort and
// never surfaces into the business result.
type EventPublisher interface {
	PublishOrderCompleted(ctx context.Context, ev domain.OrderCompleted) error
}
