package domain

import "fmt"

// ErrorKind is the closed set of business failures the order service can
// report. Transport layers render kinds into wire text; nothing branches on
// message strings.
type ErrorKind int

const (
	KindNoUser ErrorKind = iota
	KindNoProduct
	KindNoActiveOrder
	KindOrderResolution
	KindInvalidQuantity
	KindNoCompletedOrders
	KindEmptyOrder
)

// Error is a business error carrying the identifiers the failure concerns.
type Error struct {
	Kind      ErrorKind
	UserID    int64
	ProductID int64
	Quantity  int
}

func (e Error) Error() string {
	switch e.Kind {
	case KindNoUser:
		return fmt.Sprintf("No user for ID: %d", e.UserID)
	case KindNoProduct:
		return fmt.Sprintf("No product for ID: %d", e.ProductID)
	case KindNoActiveOrder:
		return fmt.Sprintf("Unable to locate an active order for user: %d", e.UserID)
	case KindOrderResolution:
		return "Failed to locate or construct order for user"
	case KindInvalidQuantity:
		return fmt.Sprintf("Quantity must be positive; %d is not valid", e.Quantity)
	case KindNoCompletedOrders:
		return "No completed orders found for this user"
	case KindEmptyOrder:
		return "Order does not contain any lines"
	default:
		return "Unknown order error"
	}
}

func NoUser(userID int64) Error {
	return Error{Kind: KindNoUser, UserID: userID}
}

func NoProduct(productID int64) Error {
	return Error{Kind: KindNoProduct, ProductID: productID}
}

func NoActiveOrder(userID int64) Error {
	return Error{Kind: KindNoActiveOrder, UserID: userID}
}

func OrderResolution(userID int64) Error {
	return Error{Kind: KindOrderResolution, UserID: userID}
}

func InvalidQuantity(quantity int) Error {
	return Error{Kind: KindInvalidQuantity, Quantity: quantity}
}

func NoCompletedOrders(userID int64) Error {
	return Error{Kind: KindNoCompletedOrders, UserID: userID}
}

func EmptyOrder() Error {
	return Error{Kind: KindEmptyOrder}
}
