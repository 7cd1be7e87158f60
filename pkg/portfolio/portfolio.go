// file: pkg/portfolio/portfolio.go

package portfolio

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/joripage/venue-engine/pkg/orderbook"
)

// Portfolio tracks one user's cash balance, signed per-symbol position, and
// weighted-average cost, updated trade by trade as the venue reports fills.
// It never talks to the matching engine or the book directly: the venue
// calls Apply once per side of every trade the user is party to, twice for
// a self-trade.
//
// A Portfolio has its own mutex because, unlike orderbook.Book, nothing
// above it serializes access per user — a user's fills can land from
// concurrent matches on different symbols at the same instant.
type Portfolio struct {
	mu sync.Mutex

	userID string
	cash   decimal.Decimal

	positions map[string]int64           // symbol -> signed quantity, long positive
	avgCost   map[string]decimal.Decimal // symbol -> weighted average cost of the current side

	trades []orderbook.Trade
}

// New creates a Portfolio for userID seeded with initialCash. The venue
// decides the seed amount; nothing in this package hardcodes one.
func New(userID string, initialCash decimal.Decimal) *Portfolio {
	return &Portfolio{
		userID:    userID,
		cash:      initialCash,
		positions: make(map[string]int64),
		avgCost:   make(map[string]decimal.Decimal),
	}
}

func (p *Portfolio) UserID() string { return p.userID }

// Apply folds one side of trade into the portfolio. isBuyer selects which
// leg of the trade this user played; the same trade is applied twice for a
// self-trade, once with isBuyer true and once false, and cash conservation
// falls out automatically since the two calls move cash by equal and
// opposite amounts.
func (p *Portfolio) Apply(trade orderbook.Trade, isBuyer bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.trades = append(p.trades, trade)
	if isBuyer {
		p.applyBuy(trade.Symbol, trade.Qty, trade.Price.Decimal())
	} else {
		p.applySell(trade.Symbol, trade.Qty, trade.Price.Decimal())
	}
}

// applyBuy mirrors the source system's addBuyTrade: growing or opening a
// long position blends the new fill into the running average cost;
// covering a short keeps its average cost unless the buy overshoots and
// flips the position long, in which case the fill price becomes the new
// average cost for the freshly opened long.
func (p *Portfolio) applyBuy(symbol string, qty int64, price decimal.Decimal) {
	totalCost := price.Mul(decimal.NewFromInt(qty))
	p.cash = p.cash.Sub(totalCost)

	current := p.positions[symbol]
	currentAvg := p.avgCost[symbol]

	switch {
	case current >= 0:
		totalValue := currentAvg.Mul(decimal.NewFromInt(current)).Add(totalCost)
		newPosition := current + qty
		p.positions[symbol] = newPosition
		p.avgCost[symbol] = totalValue.Div(decimal.NewFromInt(newPosition))
	case qty <= -current:
		// Partially or fully covering the short; its average cost is
		// unchanged unless the cover brings the position flat, in which
		// case there is no side left to hold an average cost for.
		newPosition := current + qty
		p.positions[symbol] = newPosition
		if newPosition == 0 {
			p.avgCost[symbol] = decimal.Zero
		}
	default:
		excess := qty + current // current is negative here
		p.positions[symbol] = excess
		p.avgCost[symbol] = price
	}
}

// applySell mirrors the source system's addSellTrade, the buy-side logic
// reflected across zero.
func (p *Portfolio) applySell(symbol string, qty int64, price decimal.Decimal) {
	totalRevenue := price.Mul(decimal.NewFromInt(qty))
	p.cash = p.cash.Add(totalRevenue)

	current := p.positions[symbol]
	currentAvg := p.avgCost[symbol]

	switch {
	case current <= 0:
		totalValue := currentAvg.Mul(decimal.NewFromInt(-current)).Add(totalRevenue)
		newPosition := current - qty
		p.positions[symbol] = newPosition
		p.avgCost[symbol] = totalValue.Div(decimal.NewFromInt(-newPosition))
	case qty <= current:
		// Partially or fully selling the long; its average cost is
		// unchanged unless the sale brings the position flat, in which
		// case there is no side left to hold an average cost for.
		newPosition := current - qty
		p.positions[symbol] = newPosition
		if newPosition == 0 {
			p.avgCost[symbol] = decimal.Zero
		}
	default:
		excess := qty - current
		p.positions[symbol] = -excess
		p.avgCost[symbol] = price
	}
}

// Position returns the signed net position for symbol, 0 if untouched.
func (p *Portfolio) Position(symbol string) int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.positions[symbol]
}

// AvgCost returns the weighted average cost of the current side of the
// position in symbol, decimal.Zero if there is no position.
func (p *Portfolio) AvgCost(symbol string) decimal.Decimal {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.avgCost[symbol]
}

// Cash returns the current cash balance.
func (p *Portfolio) Cash() decimal.Decimal {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cash
}

// HasPosition reports whether symbol currently has a nonzero position.
func (p *Portfolio) HasPosition(symbol string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.positions[symbol] != 0
}

// Positions returns a snapshot copy of every nonzero position, keyed by
// symbol.
func (p *Portfolio) Positions() map[string]int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]int64, len(p.positions))
	for symbol, qty := range p.positions {
		if qty != 0 {
			out[symbol] = qty
		}
	}
	return out
}

// Trades returns a snapshot copy of the trade history in the order Apply
// received them.
func (p *Portfolio) Trades() []orderbook.Trade {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]orderbook.Trade, len(p.trades))
	copy(out, p.trades)
	return out
}

// RealizedCashFlow returns the net cash moved by trades alone: initial
// cash is deliberately excluded so this is comparable across portfolios
// seeded with different amounts.
func (p *Portfolio) RealizedCashFlow() decimal.Decimal {
	p.mu.Lock()
	defer p.mu.Unlock()

	flow := decimal.Zero
	for _, trade := range p.trades {
		notional := trade.Price.Decimal().Mul(decimal.NewFromInt(trade.Qty))
		if trade.BuyUser == p.userID {
			flow = flow.Sub(notional)
		}
		if trade.SellUser == p.userID {
			flow = flow.Add(notional)
		}
	}
	return flow
}

// UnrealizedPnL marks every open position to currentPrices. A symbol
// missing from currentPrices is skipped, not treated as zero, since a
// missing quote says nothing about the position's value.
func (p *Portfolio) UnrealizedPnL(currentPrices map[string]decimal.Decimal) decimal.Decimal {
	p.mu.Lock()
	defer p.mu.Unlock()

	pnl := decimal.Zero
	for symbol, qty := range p.positions {
		if qty == 0 {
			continue
		}
		current, ok := currentPrices[symbol]
		if !ok {
			continue
		}
		avg := p.avgCost[symbol]
		if qty > 0 {
			pnl = pnl.Add(current.Sub(avg).Mul(decimal.NewFromInt(qty)))
		} else {
			pnl = pnl.Add(avg.Sub(current).Mul(decimal.NewFromInt(-qty)))
		}
	}
	return pnl
}

// TotalValue is cash plus every open position marked to currentPrices.
func (p *Portfolio) TotalValue(currentPrices map[string]decimal.Decimal) decimal.Decimal {
	p.mu.Lock()
	positions := make(map[string]int64, len(p.positions))
	for symbol, qty := range p.positions {
		positions[symbol] = qty
	}
	total := p.cash
	p.mu.Unlock()

	for symbol, qty := range positions {
		if qty == 0 {
			continue
		}
		current, ok := currentPrices[symbol]
		if !ok {
			continue
		}
		total = total.Add(current.Mul(decimal.NewFromInt(qty)))
	}
	return total
}

// ClearPosition zeroes out symbol's position and average cost without
// touching cash. It exists as an administrative escape hatch for
// corrections; matching never calls it, and calling it breaks the
// cash/quantity conservation invariant on purpose.
func (p *Portfolio) ClearPosition(symbol string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.positions[symbol] = 0
	p.avgCost[symbol] = decimal.Zero
}
