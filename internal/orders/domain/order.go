package domain

import (
	"maps"

	"github.com/cpearson/order-service/pkg/option"
)

// Order is a per-user collection of product lines. An order with no
// completion timestamp is the user's active order; stamping CompletedAt makes
// it terminal. A quantity of zero never appears as a stored line.
type Order struct {
	ID          int64                `json:"id"`
	UserID      int64                `json:"user_id"`
	Lines       map[int64]int        `json:"lines"`
	CompletedAt option.Option[int64] `json:"completed_at"`
}

// Active reports whether the order has not been completed.
func (o Order) Active() bool {
	return o.CompletedAt.IsNone()
}

// Clone returns a copy sharing no state with the receiver.
func (o Order) Clone() Order {
	o.Lines = maps.Clone(o.Lines)
	return o
}

type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
