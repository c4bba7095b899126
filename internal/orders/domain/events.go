package domain

// OrderCompleted is published when an active order is stamped complete.
type OrderCompleted struct {
	OrderID     int64 `json:"order_id"`
	UserID      int64 `json:"user_id"`
	LineCount   int   `json:"line_count"`
	CompletedAt int64 `json:"completed_at"`
}
