// file: pkg/venue/riskrule/tick_size.go

package riskrule

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/joripage/venue-engine/pkg/orderbook"
)

// TickSizeRule rejects an order whose limit price does not fall on a
// multiple of its symbol's configured tick size. Symbols absent from
// Steps are unconstrained.
type TickSizeRule struct {
	Steps map[string]decimal.Decimal
}

func NewTickSizeRule(steps map[string]decimal.Decimal) *TickSizeRule {
	return &TickSizeRule{Steps: steps}
}

func (r *TickSizeRule) Check(order *orderbook.Order) error {
	step, ok := r.Steps[order.Symbol]
	if !ok || step.IsZero() {
		return nil
	}

	price := order.LimitPrice.Decimal()
	if !price.Mod(step).IsZero() {
		return fmt.Errorf("riskrule: price %s is not a multiple of tick size %s for %s", price, step, order.Symbol)
	}
	return nil
}
