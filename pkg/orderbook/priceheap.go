// file: pkg/orderbook/priceheap.go

package orderbook

// priceHeap implements heap.Interface over the set of distinct price levels
// on one side of a book. bids use a max-heap (less reports i > j), asks use
// a min-heap (less reports i < j), so Peek always returns the current best
// price for that side.
//
// priceHeap does not guard against duplicate prices itself: Book already
// knows exactly which prices have a level, since it keys its own
// bids/asks map by Price, so it is the one place that can tell "new
// level" from "existing level" for free. Book.Add only calls heap.Push
// when it has just created a level's map entry, and Book.dropLevel only
// calls heap.Remove when a level's deque has emptied — so a duplicate
// push or a spurious removal can't reach this type. Tracking membership
// again here would just be a second copy of a fact Book already has.
type priceHeap struct {
	prices []Price
	less   func(i, j Price) bool
}

func newPriceHeap(less func(i, j Price) bool) *priceHeap {
	return &priceHeap{less: less}
}

func (h priceHeap) Len() int { return len(h.prices) }

func (h priceHeap) Less(i, j int) bool { return h.less(h.prices[i], h.prices[j]) }

func (h priceHeap) Swap(i, j int) { h.prices[i], h.prices[j] = h.prices[j], h.prices[i] }

func (h *priceHeap) Push(x any) {
	h.prices = append(h.prices, x.(Price))
}

func (h *priceHeap) Pop() any {
	n := len(h.prices)
	price := h.prices[n-1]
	h.prices = h.prices[:n-1]
	return price
}

func (h *priceHeap) Peek() (Price, bool) {
	if len(h.prices) == 0 {
		return 0, false
	}
	return h.prices[0], true
}
