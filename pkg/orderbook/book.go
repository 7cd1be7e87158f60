// file: pkg/orderbook/book.go

package orderbook

import (
	"container/heap"

	"github.com/gammazero/deque"
)

// Book is the per-symbol resting-order container described in spec §4.1.
// It is a plain data structure: it has no lock of its own. §5 puts
// concurrency control entirely on the owner (pkg/venue), which serializes
// every operation against a given symbol's Book, including the matching
// engine's calls into it during a single match. Nothing here is safe for
// concurrent use without that external discipline.
type Book struct {
	symbol string

	bids map[Price]*deque.Deque[*Order]
	asks map[Price]*deque.Deque[*Order]

	bidHeap *priceHeap // max-heap: highest bid first
	askHeap *priceHeap // min-heap: lowest ask first

	byID map[int64]*Order
}

// New creates an empty book for symbol.
func New(symbol string) *Book {
	return &Book{
		symbol:  symbol,
		bids:    make(map[Price]*deque.Deque[*Order]),
		asks:    make(map[Price]*deque.Deque[*Order]),
		bidHeap: newPriceHeap(func(i, j Price) bool { return i > j }),
		askHeap: newPriceHeap(func(i, j Price) bool { return i < j }),
		byID:    make(map[int64]*Order),
	}
}

func (b *Book) Symbol() string { return b.symbol }

func (b *Book) sideMaps(side Side) (map[Price]*deque.Deque[*Order], *priceHeap) {
	if side == Buy {
		return b.bids, b.bidHeap
	}
	return b.asks, b.askHeap
}

// Add inserts order as a new resting order. It returns ErrInvalidOrder if
// order fails Valid, ErrSymbolMismatch if it names another symbol, and
// ErrDuplicateOrderID if its id is already resting.
func (b *Book) Add(order *Order) error {
	if !order.Valid() {
		return ErrInvalidOrder
	}
	if order.Symbol != b.symbol {
		return ErrSymbolMismatch
	}
	if _, exists := b.byID[order.ID]; exists {
		return ErrDuplicateOrderID
	}

	book, ph := b.sideMaps(order.Side)
	level, ok := book[order.LimitPrice]
	if !ok {
		// A price only ever reaches heap.Push here, the one instant its
		// level map entry is created, so ph never sees the same price twice.
		level = &deque.Deque[*Order]{}
		book[order.LimitPrice] = level
		heap.Push(ph, order.LimitPrice)
	}
	level.PushBack(order)
	b.byID[order.ID] = order

	return nil
}

// Cancel removes order id from the book. It never panics: an unknown id is
// a no-op returning false, and calling Cancel twice for the same id
// returns true then false.
func (b *Book) Cancel(id int64) bool {
	order, ok := b.byID[id]
	if !ok {
		return false
	}

	book, ph := b.sideMaps(order.Side)
	level := book[order.LimitPrice]
	if level == nil {
		return false
	}

	idx := level.Index(func(o *Order) bool { return o.ID == id })
	if idx < 0 {
		return false
	}
	level.Remove(idx)
	if level.Len() == 0 {
		b.dropLevel(book, ph, order.LimitPrice)
	}
	delete(b.byID, id)

	return true
}

// Get returns a snapshot of the order, or false if it is not resting (a
// fully filled order is absent, never a stale historical copy — spec §9).
func (b *Book) Get(id int64) (Order, bool) {
	order, ok := b.byID[id]
	if !ok {
		return Order{}, false
	}
	return *order, true
}

// BestBid returns the highest resting buy price, if any.
func (b *Book) BestBid() (Price, bool) { return b.bidHeap.Peek() }

// BestAsk returns the lowest resting sell price, if any.
func (b *Book) BestAsk() (Price, bool) { return b.askHeap.Peek() }

// Uncrossed reports whether the book satisfies the "best_bid < best_ask"
// invariant every public operation must leave it in.
func (b *Book) Uncrossed() bool {
	bid, hasBid := b.BestBid()
	ask, hasAsk := b.BestAsk()
	if hasBid && hasAsk {
		return bid < ask
	}
	return true
}

// FrontOf returns the head of the level at price on side, without removing
// it. The returned pointer aliases the resting Order — the matching engine
// mutates its Remaining field directly through this pointer.
func (b *Book) FrontOf(side Side, price Price) (*Order, bool) {
	book, _ := b.sideMaps(side)
	level := book[price]
	if level == nil || level.Len() == 0 {
		return nil, false
	}
	return level.Front(), true
}

// PopFront removes and returns the head of the level at price on side. If
// the level becomes empty it is removed from the book entirely.
func (b *Book) PopFront(side Side, price Price) (*Order, bool) {
	book, ph := b.sideMaps(side)
	level := book[price]
	if level == nil || level.Len() == 0 {
		return nil, false
	}
	order := level.PopFront()
	delete(b.byID, order.ID)
	if level.Len() == 0 {
		b.dropLevel(book, ph, price)
	}
	return order, true
}

func (b *Book) dropLevel(book map[Price]*deque.Deque[*Order], ph *priceHeap, price Price) {
	delete(book, price)
	for i, p := range ph.prices {
		if p == price {
			heap.Remove(ph, i)
			break
		}
	}
}
