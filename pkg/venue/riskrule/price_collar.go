// file: pkg/venue/riskrule/price_collar.go

package riskrule

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/joripage/venue-engine/pkg/orderbook"
)

// PriceCollarRule rejects an order whose limit price sits outside a band
// around a reference price for its symbol. The band is expressed as a
// fraction (0.10 = ten percent) either side of the reference. A symbol
// with no reference price set is unconstrained, so a venue can turn the
// collar on incrementally as reference prices become known.
type PriceCollarRule struct {
	mu        sync.RWMutex
	band      decimal.Decimal
	reference map[string]decimal.Decimal
}

func NewPriceCollarRule(band decimal.Decimal) *PriceCollarRule {
	return &PriceCollarRule{
		band:      band,
		reference: make(map[string]decimal.Decimal),
	}
}

// SetReference updates the reference price a symbol's collar is measured
// against, e.g. the last trade price or a seeded market open.
func (r *PriceCollarRule) SetReference(symbol string, price decimal.Decimal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reference[symbol] = price
}

func (r *PriceCollarRule) Check(order *orderbook.Order) error {
	r.mu.RLock()
	ref, ok := r.reference[order.Symbol]
	r.mu.RUnlock()
	if !ok {
		return nil
	}

	one := decimal.NewFromInt(1)
	ceil := ref.Mul(one.Add(r.band))
	floor := ref.Mul(one.Sub(r.band))

	price := order.LimitPrice.Decimal()
	if price.GreaterThan(ceil) || price.LessThan(floor) {
		return fmt.Errorf("riskrule: price %s outside collar [%s, %s] for %s", price, floor, ceil, order.Symbol)
	}
	return nil
}
