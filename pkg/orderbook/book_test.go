package orderbook

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func testPrice(s string) Price {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return NewPrice(d)
}

func TestAddRejectsInvalidOrder(t *testing.T) {
	b := New("AAPL")
	err := b.Add(&Order{ID: 1, Symbol: "AAPL", Side: Buy, LimitPrice: testPrice("100"), Remaining: 0, UserID: "u"})
	if err != ErrInvalidOrder {
		t.Fatalf("expected ErrInvalidOrder, got %v", err)
	}
}

func TestAddRejectsSymbolMismatch(t *testing.T) {
	b := New("AAPL")
	err := b.Add(&Order{ID: 1, Symbol: "MSFT", Side: Buy, LimitPrice: testPrice("100"), Remaining: 10, UserID: "u"})
	if err != ErrSymbolMismatch {
		t.Fatalf("expected ErrSymbolMismatch, got %v", err)
	}
}

func TestAddRejectsDuplicateID(t *testing.T) {
	b := New("AAPL")
	o := &Order{ID: 1, Symbol: "AAPL", Side: Buy, LimitPrice: testPrice("100"), Remaining: 10, UserID: "u"}
	if err := b.Add(o); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dup := &Order{ID: 1, Symbol: "AAPL", Side: Sell, LimitPrice: testPrice("100"), Remaining: 5, UserID: "u2"}
	if err := b.Add(dup); err != ErrDuplicateOrderID {
		t.Fatalf("expected ErrDuplicateOrderID, got %v", err)
	}
}

func TestCancelIdempotence(t *testing.T) {
	b := New("AAPL")
	o := &Order{ID: 1, Symbol: "AAPL", Side: Buy, LimitPrice: testPrice("100"), Remaining: 10, UserID: "u", SubmittedAt: time.Now()}
	_ = b.Add(o)

	if !b.Cancel(1) {
		t.Fatalf("expected first cancel to succeed")
	}
	if b.Cancel(1) {
		t.Fatalf("expected second cancel to be a no-op")
	}
	if _, ok := b.Get(1); ok {
		t.Fatalf("cancelled order should not be resident")
	}
	if _, ok := b.BestBid(); ok {
		t.Fatalf("level should have been removed once empty")
	}
}

func TestCancelUnknownIDIsNoop(t *testing.T) {
	b := New("AAPL")
	if b.Cancel(999) {
		t.Fatalf("expected cancel of unknown id to return false")
	}
}

func TestGetAbsentAfterFullPop(t *testing.T) {
	b := New("AAPL")
	o := &Order{ID: 1, Symbol: "AAPL", Side: Buy, LimitPrice: testPrice("100"), Remaining: 10, UserID: "u"}
	_ = b.Add(o)

	popped, ok := b.PopFront(Buy, testPrice("100"))
	if !ok || popped.ID != 1 {
		t.Fatalf("expected to pop order 1, got %+v ok=%v", popped, ok)
	}
	if _, ok := b.Get(1); ok {
		t.Fatalf("fully popped order should be absent, not a historical snapshot")
	}
}

func TestBestBidBestAskOrdering(t *testing.T) {
	b := New("AAPL")
	_ = b.Add(&Order{ID: 1, Symbol: "AAPL", Side: Buy, LimitPrice: testPrice("100"), Remaining: 10, UserID: "u"})
	_ = b.Add(&Order{ID: 2, Symbol: "AAPL", Side: Buy, LimitPrice: testPrice("101"), Remaining: 10, UserID: "u"})
	_ = b.Add(&Order{ID: 3, Symbol: "AAPL", Side: Sell, LimitPrice: testPrice("105"), Remaining: 10, UserID: "u"})
	_ = b.Add(&Order{ID: 4, Symbol: "AAPL", Side: Sell, LimitPrice: testPrice("104"), Remaining: 10, UserID: "u"})

	bid, ok := b.BestBid()
	if !ok || bid != testPrice("101") {
		t.Fatalf("expected best bid 101, got %v ok=%v", bid, ok)
	}
	ask, ok := b.BestAsk()
	if !ok || ask != testPrice("104") {
		t.Fatalf("expected best ask 104, got %v ok=%v", ask, ok)
	}
	if !b.Uncrossed() {
		t.Fatalf("expected uncrossed book")
	}
}

func TestFIFOOrderingWithinLevel(t *testing.T) {
	b := New("AAPL")
	t1 := time.Unix(1, 0)
	t2 := time.Unix(2, 0)
	_ = b.Add(&Order{ID: 1, Symbol: "AAPL", Side: Sell, LimitPrice: testPrice("100"), Remaining: 5, UserID: "u1", SubmittedAt: t1})
	_ = b.Add(&Order{ID: 2, Symbol: "AAPL", Side: Sell, LimitPrice: testPrice("100"), Remaining: 5, UserID: "u2", SubmittedAt: t2})

	front, ok := b.FrontOf(Sell, testPrice("100"))
	if !ok || front.ID != 1 {
		t.Fatalf("expected order 1 at the front, got %+v ok=%v", front, ok)
	}
}
