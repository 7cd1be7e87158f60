// file: pkg/orderbook/error.go

package orderbook

import "errors"

var (
	// ErrInvalidOrder covers non-positive quantity or price, empty symbol,
	// empty user id, or an unknown side.
	ErrInvalidOrder = errors.New("orderbook: invalid order")

	// ErrSymbolMismatch is returned when Add is called on a book for a
	// different symbol than the order carries.
	ErrSymbolMismatch = errors.New("orderbook: symbol mismatch")

	// ErrDuplicateOrderID is only reachable via buggy id assignment
	// upstream: the book never assigns ids itself.
	ErrDuplicateOrderID = errors.New("orderbook: duplicate order id")
)
