package eventlog

import (
	"testing"
	"time"

	"github.com/joripage/venue-engine/pkg/orderbook"
)

func TestRecordOrderAppendsInOrder(t *testing.T) {
	log := New()
	now := time.Now()

	log.RecordOrder(Event{OrderID: 1, Symbol: "AAPL", Kind: Submitted, Remaining: 100, At: now})
	log.RecordOrder(Event{OrderID: 1, Symbol: "AAPL", Kind: PartiallyFilled, Remaining: 40, At: now.Add(time.Millisecond)})
	log.RecordOrder(Event{OrderID: 1, Symbol: "AAPL", Kind: Filled, Remaining: 0, At: now.Add(2 * time.Millisecond)})

	hist := log.History(1)
	if len(hist) != 3 {
		t.Fatalf("expected 3 events, got %d", len(hist))
	}
	if hist[0].Kind != Submitted || hist[1].Kind != PartiallyFilled || hist[2].Kind != Filled {
		t.Errorf("unexpected event order: %+v", hist)
	}
}

func TestHistoryUnknownOrderIsEmpty(t *testing.T) {
	log := New()
	if hist := log.History(999); len(hist) != 0 {
		t.Errorf("expected no history for unknown order, got %+v", hist)
	}
}

func TestForgetDropsHistory(t *testing.T) {
	log := New()
	log.RecordOrder(Event{OrderID: 1, Kind: Submitted})
	log.Forget(1)
	if hist := log.History(1); len(hist) != 0 {
		t.Errorf("expected history to be forgotten, got %+v", hist)
	}
}

func TestRecordTradeAccumulatesTape(t *testing.T) {
	log := New()
	log.RecordTrade(orderbook.Trade{ID: 1, Symbol: "AAPL", Qty: 10})
	log.RecordTrade(orderbook.Trade{ID: 2, Symbol: "AAPL", Qty: 20})

	trades := log.Trades()
	if len(trades) != 2 {
		t.Fatalf("expected 2 trades, got %d", len(trades))
	}
	if trades[0].ID != 1 || trades[1].ID != 2 {
		t.Errorf("unexpected trade order: %+v", trades)
	}
}
