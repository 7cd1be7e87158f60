// file: pkg/venue/venue.go

package venue

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/joripage/venue-engine/pkg/eventlog"
	"github.com/joripage/venue-engine/pkg/logging"
	"github.com/joripage/venue-engine/pkg/matching"
	"github.com/joripage/venue-engine/pkg/orderbook"
	"github.com/joripage/venue-engine/pkg/portfolio"
	"github.com/joripage/venue-engine/pkg/venue/riskrule"
)

// PriceFeed is the venue's current_price collaborator from spec §4.4: an
// opaque, read-only accessor the core consults for mark-to-market
// valuation. The venue does not care how the feed keeps prices fresh.
type PriceFeed interface {
	CurrentPrice(ctx context.Context, symbol string) (decimal.Decimal, bool)
}

type bookEntry struct {
	mu   sync.Mutex
	book *orderbook.Book
}

// Venue is the outer coordinator from spec §2/§4.4. It owns symbol →
// OrderBook and user → Portfolio, assigns ids and timestamps, and is the
// only place that locks around an order book: OrderBook and the matching
// engine are deliberately lock-free, per §5's "no lock visible in the
// component contracts." Portfolio, eventlog.Log and the price collar rule
// each guard their own state separately.
type Venue struct {
	books      sync.Map // symbol (string) -> *bookEntry
	portfolios sync.Map // userID (string) -> *portfolio.Portfolio

	nextOrderID atomic.Int64
	nextTradeID atomic.Int64

	allowedSymbols map[string]bool // nil/empty => auto-create any symbol
	initialCash    decimal.Decimal

	checker   *riskrule.Checker
	log       *eventlog.Log
	priceFeed PriceFeed
	logger    *logging.Logger
}

// New builds a Venue. allowedSymbols is the closed whitelist described in
// spec §7's UnknownSymbol case; pass nil to auto-create a book for any
// symbol on first submit. checker, priceFeed, and logger may be nil to
// disable risk checks, mark-to-market lookups, and structured logging
// respectively.
func New(allowedSymbols []string, initialCash decimal.Decimal, checker *riskrule.Checker, log *eventlog.Log, priceFeed PriceFeed, logger *logging.Logger) *Venue {
	var whitelist map[string]bool
	if len(allowedSymbols) > 0 {
		whitelist = make(map[string]bool, len(allowedSymbols))
		for _, s := range allowedSymbols {
			whitelist[s] = true
		}
	}
	if log == nil {
		log = eventlog.New()
	}

	v := &Venue{
		allowedSymbols: whitelist,
		initialCash:    initialCash,
		checker:        checker,
		log:            log,
		priceFeed:      priceFeed,
		logger:         logger,
	}
	v.nextOrderID.Store(0)
	v.nextTradeID.Store(0)
	return v
}

// logDebug, logInfo, and logWarn are no-ops when the venue was built
// without a logger, so every call site above can log unconditionally.
func (v *Venue) logDebug(ctx context.Context, msg string, fields ...zap.Field) {
	if v.logger != nil {
		v.logger.Debug(ctx, msg, fields...)
	}
}

func (v *Venue) logInfo(ctx context.Context, msg string, fields ...zap.Field) {
	if v.logger != nil {
		v.logger.Info(ctx, msg, fields...)
	}
}

func (v *Venue) logWarn(ctx context.Context, msg string, fields ...zap.Field) {
	if v.logger != nil {
		v.logger.Warn(ctx, msg, fields...)
	}
}

func (v *Venue) nextOrderIDVal() int64 { return v.nextOrderID.Add(1) }
func (v *Venue) nextTradeIDVal() int64 { return v.nextTradeID.Add(1) }

// bookFor returns the entry for symbol, creating one if the venue's
// policy permits it. The second return is false for a whitelisted venue
// when symbol is not in the whitelist.
func (v *Venue) bookFor(symbol string) (*bookEntry, bool) {
	if entry, ok := v.books.Load(symbol); ok {
		return entry.(*bookEntry), true
	}
	if v.allowedSymbols != nil && !v.allowedSymbols[symbol] {
		return nil, false
	}
	entry := &bookEntry{book: orderbook.New(symbol)}
	actual, _ := v.books.LoadOrStore(symbol, entry)
	return actual.(*bookEntry), true
}

// portfolioFor returns userID's portfolio, creating one seeded with the
// venue's configured initial cash on first sight — spec §3's "a Portfolio
// is created on first sight of a user."
func (v *Venue) portfolioFor(userID string) *portfolio.Portfolio {
	if p, ok := v.portfolios.Load(userID); ok {
		return p.(*portfolio.Portfolio)
	}
	p := portfolio.New(userID, v.initialCash)
	actual, _ := v.portfolios.LoadOrStore(userID, p)
	return actual.(*portfolio.Portfolio)
}

// Portfolio exposes a user's portfolio for read-only reporting. It
// creates the portfolio if the user has never traded, the same as a
// submit would.
func (v *Venue) Portfolio(userID string) *portfolio.Portfolio {
	return v.portfolioFor(userID)
}

// Submit validates, books, and matches a new order, then routes every
// resulting trade to the two affected portfolios in emission order, per
// spec §4.4.
func (v *Venue) Submit(ctx context.Context, userID, symbol string, side orderbook.Side, qty int64, limitPrice decimal.Decimal) ([]*orderbook.Trade, error) {
	price := orderbook.NewPrice(limitPrice)
	order := &orderbook.Order{
		Symbol:      symbol,
		Side:        side,
		Type:        orderbook.Limit,
		LimitPrice:  price,
		Remaining:   qty,
		UserID:      userID,
		SubmittedAt: time.Now(),
	}
	if !order.Valid() {
		v.log.RecordOrder(eventlog.Event{Symbol: symbol, Kind: eventlog.Rejected, Reason: "invalid order", At: order.SubmittedAt})
		v.logWarn(ctx, "order rejected", zap.String("symbol", symbol), zap.String("user_id", userID), zap.Error(ErrInvalidOrder))
		return nil, ErrInvalidOrder
	}

	if v.checker != nil {
		if err := v.checker.Check(order); err != nil {
			wrapped := fmt.Errorf("%w: %s", ErrRiskRuleViolation, err)
			v.log.RecordOrder(eventlog.Event{Symbol: symbol, Kind: eventlog.Rejected, Reason: wrapped.Error(), At: order.SubmittedAt})
			v.logWarn(ctx, "order rejected", zap.String("symbol", symbol), zap.String("user_id", userID), zap.Error(wrapped))
			return nil, wrapped
		}
	}

	entry, ok := v.bookFor(symbol)
	if !ok {
		v.log.RecordOrder(eventlog.Event{Symbol: symbol, Kind: eventlog.Rejected, Reason: "unknown symbol", At: order.SubmittedAt})
		v.logWarn(ctx, "order rejected", zap.String("symbol", symbol), zap.String("user_id", userID), zap.Error(ErrUnknownSymbol))
		return nil, ErrUnknownSymbol
	}

	order.ID = v.nextOrderIDVal()
	v.logDebug(ctx, "order accepted", zap.Int64("order_id", order.ID), zap.String("symbol", symbol), zap.String("user_id", userID), zap.Int64("qty", qty), zap.String("side", string(side)))

	// Every order touched by this match (the incoming order plus every
	// resting counterparty it traded against) needs a post-match fill
	// snapshot. That has to be read under entry.mu, before any other
	// submit or cancel on this symbol can move the book again.
	entry.mu.Lock()
	trades := v.match(ctx, entry, order)
	touched := map[int64]bool{order.ID: true}
	for _, trade := range trades {
		touched[trade.BuyOrderID] = true
		touched[trade.SellOrderID] = true
	}
	stillResting := make(map[int64]orderbook.Order, len(touched))
	for id := range touched {
		if resting, ok := entry.book.Get(id); ok {
			stillResting[id] = resting
		}
	}
	submittedRemaining := order.Remaining
	entry.mu.Unlock()

	v.log.RecordOrder(eventlog.Event{
		OrderID:   order.ID,
		Symbol:    symbol,
		Kind:      eventlog.Submitted,
		Remaining: submittedRemaining,
		At:        order.SubmittedAt,
	})

	for _, trade := range trades {
		v.log.RecordTrade(*trade)
		v.logInfo(ctx, "trade executed", zap.Int64("trade_id", trade.ID), zap.String("symbol", symbol), zap.Int64("qty", trade.Qty), zap.Stringer("price", trade.Price))
		v.portfolioFor(trade.BuyUser).Apply(*trade, true)
		v.portfolioFor(trade.SellUser).Apply(*trade, false)
	}

	if len(trades) > 0 {
		for id := range touched {
			v.recordFillProgress(symbol, id, stillResting)
		}
	}

	return trades, nil
}

// match runs the matching engine against entry.book, converting any
// invariant panic it raises into a structured zap Panic-level log entry
// before letting the panic continue to unwind. The caller must already
// hold entry.mu; match neither takes nor releases it.
func (v *Venue) match(ctx context.Context, entry *bookEntry, order *orderbook.Order) []*orderbook.Trade {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if v.logger != nil {
			v.logger.Panic(ctx, "matching invariant violated", zap.String("symbol", entry.book.Symbol()), zap.Int64("order_id", order.ID), zap.Any("recovered", r))
			return // unreachable: Logger.Panic always panics
		}
		panic(r)
	}()
	return matching.MatchIncoming(entry.book, order, order.SubmittedAt, v.nextTradeIDVal)
}

// recordFillProgress logs orderID's post-match fill state: PartiallyFilled
// if it is still in stillResting, Filled otherwise. It is called after
// entry.mu has been released, using a snapshot taken while the lock was
// held. It does not forget the order's history — a Filled event is still
// worth reading right after Submit returns it; pruning old history is
// a separate retention decision, left to Log.Forget's caller.
func (v *Venue) recordFillProgress(symbol string, orderID int64, stillResting map[int64]orderbook.Order) {
	if resting, ok := stillResting[orderID]; ok {
		v.log.RecordOrder(eventlog.Event{OrderID: orderID, Symbol: symbol, Kind: eventlog.PartiallyFilled, Remaining: resting.Remaining, At: resting.SubmittedAt})
		return
	}
	v.log.RecordOrder(eventlog.Event{OrderID: orderID, Symbol: symbol, Kind: eventlog.Filled, At: time.Now()})
}

// Cancel forwards to symbol's OrderBook, holding the same per-symbol lock
// a submit would.
func (v *Venue) Cancel(symbol string, orderID int64) bool {
	entry, ok := v.bookFor(symbol)
	if !ok {
		return false
	}
	entry.mu.Lock()
	removed := entry.book.Cancel(orderID)
	entry.mu.Unlock()

	if removed {
		v.log.RecordOrder(eventlog.Event{OrderID: orderID, Symbol: symbol, Kind: eventlog.Cancelled, At: time.Now()})
	}
	return removed
}

// CurrentPrice reports symbol's mark-to-market price via the configured
// PriceFeed, or false if there is none configured or it has no quote.
func (v *Venue) CurrentPrice(ctx context.Context, symbol string) (decimal.Decimal, bool) {
	if v.priceFeed == nil {
		return decimal.Zero, false
	}
	return v.priceFeed.CurrentPrice(ctx, symbol)
}
