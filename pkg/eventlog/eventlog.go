// file: pkg/eventlog/eventlog.go

package eventlog

import (
	"sync"
	"time"

	"github.com/joripage/venue-engine/pkg/orderbook"
)

// Kind identifies what happened to an order.
type Kind string

const (
	Submitted       Kind = "SUBMITTED"
	PartiallyFilled Kind = "PARTIALLY_FILLED"
	Filled          Kind = "FILLED"
	Cancelled       Kind = "CANCELLED"
	Rejected        Kind = "REJECTED"
)

// Event is one append-only record of an order's lifecycle. It carries a
// snapshot of the order's remaining quantity at the moment the event was
// recorded, not a live pointer, so the log's history can't be mutated by
// later matching.
type Event struct {
	OrderID   int64
	Symbol    string
	Kind      Kind
	Remaining int64
	Reason    string
	At        time.Time
}

// Log is an in-memory, append-only journal of order events and trades. It
// has no durability: a process restart loses it. That mirrors the venue's
// own resource policy — everything is in-memory and owned by the venue —
// so the log is a read side of the same lifetime, not a separate one.
type Log struct {
	mu     sync.RWMutex
	events map[int64][]Event
	trades []orderbook.Trade
}

func New() *Log {
	return &Log{
		events: make(map[int64][]Event),
	}
}

// RecordOrder appends an event to orderID's history.
func (l *Log) RecordOrder(ev Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events[ev.OrderID] = append(l.events[ev.OrderID], ev)
}

// RecordTrade appends trade to the venue-wide trade tape.
func (l *Log) RecordTrade(trade orderbook.Trade) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.trades = append(l.trades, trade)
}

// History returns a copy of orderID's recorded events in the order they
// were appended.
func (l *Log) History(orderID int64) []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()
	src := l.events[orderID]
	out := make([]Event, len(src))
	copy(out, src)
	return out
}

// Trades returns a copy of the full trade tape.
func (l *Log) Trades() []orderbook.Trade {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]orderbook.Trade, len(l.trades))
	copy(out, l.trades)
	return out
}

// Forget drops orderID's history. It is a caller-driven retention hook,
// not something the venue invokes on an order's own terminal event: a
// Filled or Cancelled event is still worth reading right after it is
// recorded. A driver that knows an order is done and will never be
// queried again can call this so the log does not grow without bound
// over a long-running process.
func (l *Log) Forget(orderID int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.events, orderID)
}
