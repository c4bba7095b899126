package application

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cpearson/order-service/internal/orders/domain"
	"github.com/cpearson/order-service/pkg/option"
	"github.com/cpearson/order-service/pkg/pipeline"
	"github.com/cpearson/order-service/pkg/result"
)

// OrderResult is the outcome of every single-order operation: the order on
// success, a domain error kind on business failure. Faults ride the Task
// error channel instead.
type OrderResult = result.Result[domain.Order, domain.Error]

// OrdersResult is the outcome of the completed-orders query.
type OrdersResult = result.Result[[]domain.Order, domain.Error]

// Service implements the order lifecycle over the user/product readers and
// the order store. Every public operation checks user, then product (when one
// is involved), then resolves the order.
type Service struct {
	log      *slog.Logger
	users    UserReader
	products ProductReader
	orders   Store[domain.Order]
	events   EventPublisher
	now      func() int64
}

func NewService(log *slog.Logger, users UserReader, products ProductReader, orders Store[domain.Order], events EventPublisher) *Service {
	return &Service{
		log:      log,
		users:    users,
		products: products,
		orders:   orders,
		events:   events,
		now:      func() int64 { return time.Now().UTC().UnixNano() },
	}
}

// GetOrCreateActiveOrderForUser resolves the user's single active order,
// creating an empty one when none exists. A completed order is never
// returned here; completing an order makes the next call create a new one.
func (s *Service) GetOrCreateActiveOrderForUser(userID int64) pipeline.Task[OrderResult] {
	return pipeline.BindResult(s.resolveUser(userID), func(domain.User) pipeline.Task[OrderResult] {
		return s.activeOrder(userID)
	})
}

// AddProductToActiveOrder inserts a line with quantity 1 or increments an
// existing line.
func (s *Service) AddProductToActiveOrder(userID, productID int64) pipeline.Task[OrderResult] {
	return s.modifyOrderForProduct(userID, productID, func(o *domain.Order, p domain.Product) error {
		o.Lines[p.ID]++
		return nil
	})
}

// RemoveProductFromActiveOrder decrements a line, dropping it entirely when
// the quantity would reach zero. A line that is not present is not an error.
func (s *Service) RemoveProductFromActiveOrder(userID, productID int64) pipeline.Task[OrderResult] {
	return s.modifyOrderForProduct(userID, productID, func(o *domain.Order, p domain.Product) error {
		if q, ok := o.Lines[p.ID]; ok {
			if q-1 <= 0 {
				delete(o.Lines, p.ID)
			} else {
				o.Lines[p.ID] = q - 1
			}
		}
		return nil
	})
}

// SetProductQuantityOnActiveOrder sets a line to exactly quantity. Negative
// quantities are rejected; zero deletes the line if present.
func (s *Service) SetProductQuantityOnActiveOrder(userID, productID int64, quantity int) pipeline.Task[OrderResult] {
	return s.modifyOrderForProduct(userID, productID, func(o *domain.Order, p domain.Product) error {
		if quantity < 0 {
			return domain.InvalidQuantity(quantity)
		}
		if quantity == 0 {
			delete(o.Lines, p.ID)
			return nil
		}
		o.Lines[p.ID] = quantity
		return nil
	})
}

// ClearProductsForActiveOrder empties the active order's lines. Succeeds
// even when the order is already empty.
func (s *Service) ClearProductsForActiveOrder(userID int64) pipeline.Task[OrderResult] {
	return pipeline.BindResult(s.resolveUser(userID), func(domain.User) pipeline.Task[OrderResult] {
		return pipeline.BindResult(s.activeOrder(userID), func(o domain.Order) pipeline.Task[OrderResult] {
			return s.applyUpdate(o.ID, func(o *domain.Order) error {
				o.Lines = make(map[int64]int)
				return nil
			})
		})
	})
}

// GetCompletedOrdersForUser returns the user's completed orders. An empty
// result set is reported as a business error by policy of this service; the
// store itself treats empty as valid.
func (s *Service) GetCompletedOrdersForUser(userID int64) pipeline.Task[OrdersResult] {
	return pipeline.BindResult(
		pipeline.FromOption(s.users.GetByID(userID), func() domain.Error { return domain.NoUser(userID) }),
		func(u domain.User) pipeline.Task[OrdersResult] {
			completed := s.orders.AllWhere(func(o domain.Order) bool {
				return o.UserID == u.ID && o.CompletedAt.IsSome()
			})
			return pipeline.Map(completed, func(found []domain.Order) OrdersResult {
				if len(found) == 0 {
					return result.Err[[]domain.Order, domain.Error](domain.NoCompletedOrders(userID))
				}
				return result.Ok[[]domain.Order, domain.Error](found)
			})
		})
}

// CompleteActiveOrder stamps the user's active order with the current time.
// The order must exist and hold at least one line. Completion is terminal:
// no operation mutates a completed order, and the next active-order resolve
// for the user creates a fresh one.
func (s *Service) CompleteActiveOrder(userID int64) pipeline.Task[OrderResult] {
	return pipeline.BindResult(s.resolveUser(userID), func(domain.User) pipeline.Task[OrderResult] {
		located := pipeline.FromOption(
			s.orders.SingleWhere(func(o domain.Order) bool { return o.UserID == userID && o.Active() }),
			func() domain.Error { return domain.NoActiveOrder(userID) },
		)
		return pipeline.BindResult(located, func(o domain.Order) pipeline.Task[OrderResult] {
			completed := s.applyUpdate(o.ID, func(o *domain.Order) error {
				if len(o.Lines) == 0 {
					return domain.EmptyOrder()
				}
				o.CompletedAt = option.Some(s.now())
				return nil
			})
			return func(ctx context.Context) (OrderResult, error) {
				res, err := completed(ctx)
				if err == nil && res.IsOk() {
					s.publishCompleted(ctx, res.Unwrap())
				}
				return res, err
			}
		})
	})
}

func (s *Service) resolveUser(userID int64) pipeline.Task[result.Result[domain.User, domain.Error]] {
	return pipeline.FromOption(s.users.GetByID(userID), func() domain.Error { return domain.NoUser(userID) })
}

// modifyOrderForProduct resolves the product and the user's active order,
// then applies mutate to the order under the store's update lock. mutate may
// return a domain.Error to fail the operation on the business channel.
func (s *Service) modifyOrderForProduct(userID, productID int64, mutate func(*domain.Order, domain.Product) error) pipeline.Task[OrderResult] {
	return pipeline.BindResult(s.resolveUser(userID), func(domain.User) pipeline.Task[OrderResult] {
		product := pipeline.FromOption(s.products.GetByID(productID), func() domain.Error { return domain.NoProduct(productID) })
		return pipeline.BindResult(product, func(p domain.Product) pipeline.Task[OrderResult] {
			return pipeline.BindResult(s.activeOrder(userID), func(o domain.Order) pipeline.Task[OrderResult] {
				return s.applyUpdate(o.ID, func(o *domain.Order) error {
					return mutate(o, p)
				})
			})
		})
	})
}

// activeOrder locates the single active order for the user, creating one
// when none exists. The resolution error is defensive: the create path of a
// healthy store always yields an order.
func (s *Service) activeOrder(userID int64) pipeline.Task[OrderResult] {
	located := pipeline.Bind(
		s.orders.SingleWhere(func(o domain.Order) bool { return o.UserID == userID && o.Active() }),
		func(found option.Option[domain.Order]) pipeline.Task[option.Option[domain.Order]] {
			return option.Match(found,
				func(o domain.Order) pipeline.Task[option.Option[domain.Order]] {
					return pipeline.Of(option.Some(o))
				},
				func() pipeline.Task[option.Option[domain.Order]] {
					created := s.orders.Create(func(o *domain.Order) {
						o.UserID = userID
						o.Lines = make(map[int64]int)
						o.CompletedAt = option.None[int64]()
					})
					return pipeline.Map(created, option.Some[domain.Order])
				})
		})
	return pipeline.FromOption(located, func() domain.Error { return domain.OrderResolution(userID) })
}

// applyUpdate runs fn against the stored order and maps a domain.Error from
// the mutation onto the business channel. Any other failure is a fault.
func (s *Service) applyUpdate(orderID int64, fn func(*domain.Order) error) pipeline.Task[OrderResult] {
	return func(ctx context.Context) (OrderResult, error) {
		updated, err := s.orders.Update(orderID, fn)(ctx)
		if err != nil {
			var derr domain.Error
			if errors.As(err, &derr) {
				return result.Err[domain.Order, domain.Error](derr), nil
			}
			return OrderResult{}, err
		}
		return result.Ok[domain.Order, domain.Error](updated), nil
	}
}

func (s *Service) publishCompleted(ctx context.Context, o domain.Order) {
	if s.events == nil {
		return
	}
	ev := domain.OrderCompleted{
		OrderID:     o.ID,
		UserID:      o.UserID,
		LineCount:   len(o.Lines),
		CompletedAt: o.CompletedAt.UnwrapOr(0),
	}
	if err := s.events.PublishOrderCompleted(ctx, ev); err != nil {
		s.log.Error("order completed event publish failed", "order_id", o.ID, "err", err)
	}
}
