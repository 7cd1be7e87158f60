// file: pkg/matching/engine.go

package matching

import (
	"fmt"
	"time"

	"github.com/joripage/venue-engine/pkg/orderbook"
)

// TradeIDSource hands out monotonically increasing, venue-scoped trade
// ids. It exists so the engine stays a pure function of (book, incoming)
// plus id/time assignment, rather than owning global counters itself —
// spec §9 calls out process-wide counters as the thing to scope down to
// the venue instance.
type TradeIDSource func() int64

// MatchIncoming crosses incoming against the resting liquidity in book
// under strict price-time priority, per spec §4.2. incoming must not
// already be present in book. On return, any unfilled remainder of
// incoming has been inserted into book as a new resting order; a fully
// consumed incoming order is not added. now is used as the timestamp for
// every trade emitted by this call, so a single submit produces trades
// that all share one execution time.
//
// MatchIncoming never rejects incoming on input validity grounds — that
// happens at the venue boundary before the order reaches here (spec §7).
// It does not itself take a lock: the caller must hold exclusive access to
// book for the duration of the call.
func MatchIncoming(book *orderbook.Book, incoming *orderbook.Order, now time.Time, nextTradeID TradeIDSource) []*orderbook.Trade {
	var trades []*orderbook.Trade

	oppositeSide := orderbook.Sell
	if incoming.Side == orderbook.Sell {
		oppositeSide = orderbook.Buy
	}

	for incoming.Remaining > 0 {
		oppPrice, ok := bestOpposing(book, incoming.Side)
		if !ok || !crosses(incoming.Side, incoming.LimitPrice, oppPrice) {
			break
		}

		resting, ok := book.FrontOf(oppositeSide, oppPrice)
		if !ok {
			// A level exists in the price heap but is empty — an
			// invariant the book itself is supposed to prevent.
			panic(fmt.Sprintf("matching: empty level at price %s on %s side of %s", oppPrice, oppositeSide, book.Symbol()))
		}

		qty := min(incoming.Remaining, resting.Remaining)
		price := resting.LimitPrice // maker price rule

		trade := buildTrade(nextTradeID(), incoming, resting, qty, price, now)
		trades = append(trades, trade)

		incoming.Remaining -= qty
		resting.Remaining -= qty
		if incoming.Remaining < 0 || resting.Remaining < 0 {
			panic(fmt.Sprintf("matching: negative remaining quantity after trade %d", trade.ID))
		}

		if resting.Remaining == 0 {
			if _, ok := book.PopFront(oppositeSide, oppPrice); !ok {
				panic(fmt.Sprintf("matching: failed to pop filled resting order %d", resting.ID))
			}
		}
	}

	if incoming.Remaining > 0 {
		if err := book.Add(incoming); err != nil {
			panic(fmt.Sprintf("matching: could not rest incoming order %d: %v", incoming.ID, err))
		}
	}

	return trades
}

func bestOpposing(book *orderbook.Book, side orderbook.Side) (orderbook.Price, bool) {
	if side == orderbook.Buy {
		return book.BestAsk()
	}
	return book.BestBid()
}

func crosses(side orderbook.Side, limitPrice, oppPrice orderbook.Price) bool {
	if side == orderbook.Buy {
		return limitPrice >= oppPrice
	}
	return oppPrice >= limitPrice
}

func buildTrade(id int64, incoming, resting *orderbook.Order, qty int64, price orderbook.Price, now time.Time) *orderbook.Trade {
	trade := &orderbook.Trade{
		ID:         id,
		Symbol:     incoming.Symbol,
		Qty:        qty,
		Price:      price,
		ExecutedAt: now,
	}
	if incoming.Side == orderbook.Buy {
		trade.BuyOrderID, trade.BuyUser = incoming.ID, incoming.UserID
		trade.SellOrderID, trade.SellUser = resting.ID, resting.UserID
	} else {
		trade.SellOrderID, trade.SellUser = incoming.ID, incoming.UserID
		trade.BuyOrderID, trade.BuyUser = resting.ID, resting.UserID
	}
	return trade
}
