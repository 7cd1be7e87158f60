// file: pkg/orderbook/trade.go

package orderbook

import "time"

// Trade is a write-once record of one execution. It is emitted by
// pkg/matching and never mutated after creation.
type Trade struct {
	ID          int64
	Symbol      string
	BuyOrderID  int64
	SellOrderID int64
	BuyUser     string
	SellUser    string
	Qty         int64
	Price       Price
	ExecutedAt  time.Time
}
