package memory

import (
	"time"

	"github.com/cpearson/order-service/internal/orders/domain"
	"github.com/cpearson/order-service/pkg/option"
)

// NewUserStore builds a user store.
func NewUserStore() *Store[domain.User] {
	return NewStore(
		func(id int64) domain.User { return domain.User{ID: id} },
		func(u domain.User) domain.User { return u },
	)
}

// NewProductStore builds a product store.
func NewProductStore() *Store[domain.Product] {
	return NewStore(
		func(id int64) domain.Product { return domain.Product{ID: id} },
		func(p domain.Product) domain.Product { return p },
	)
}

// NewOrderStore builds an order store.
func NewOrderStore() *Store[domain.Order] {
	return NewStore(
		func(id int64) domain.Order {
			return domain.Order{ID: id, Lines: make(map[int64]int)}
		},
		domain.Order.Clone,
	)
}

// Seed loads the demo data set: one user, two products, and one already
// completed order so the completed-orders query has something to return.
func Seed(users *Store[domain.User], products *Store[domain.Product], orders *Store[domain.Order]) {
	users.insert(1, domain.User{ID: 1, Name: "Demo User"})

	products.insert(1, domain.Product{ID: 1, Name: "Some product"})
	products.insert(10, domain.Product{ID: 10, Name: "Some other product"})

	orders.insert(1, domain.Order{
		ID:          1,
		UserID:      1,
		Lines:       map[int64]int{1: 10},
		CompletedAt: option.Some(time.Now().UTC().UnixNano()),
	})
}
