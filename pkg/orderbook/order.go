// file: pkg/orderbook/order.go

package orderbook

import "time"

type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// OrderType is fixed at Limit for anything the engine actually executes.
// Market is reserved by the source system's Order.Type field and kept here
// so callers can name the constant, but the venue never creates one:
// Venue.Submit always builds Limit orders (see pkg/venue). Valid does not
// look at Type.
type OrderType string

const (
	Limit  OrderType = "LIMIT"
	Market OrderType = "MARKET"
)

// Order is the venue's immutable identity plus the one field the matching
// engine and cancel are allowed to mutate: Remaining. It is shared between
// a price level's deque and the book's by-ID index — both views must
// observe the same mutations, so Order is always handled by pointer.
type Order struct {
	ID          int64
	Symbol      string
	Side        Side
	Type        OrderType
	LimitPrice  Price
	Remaining   int64
	SubmittedAt time.Time
	UserID      string
}

// Valid reports whether the order satisfies the invariants a book is
// allowed to accept: positive remaining quantity, positive price, a known
// side, and non-empty symbol/user identifiers.
func (o *Order) Valid() bool {
	if o == nil {
		return false
	}
	if o.Remaining <= 0 {
		return false
	}
	if o.LimitPrice <= 0 {
		return false
	}
	if o.Symbol == "" || o.UserID == "" {
		return false
	}
	return o.Side == Buy || o.Side == Sell
}
