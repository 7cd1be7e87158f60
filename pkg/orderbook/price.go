// file: pkg/orderbook/price.go

package orderbook

import "github.com/shopspring/decimal"

// TickExponent is the number of decimal places a Price carries. A Price of
// 1 represents 10^-TickExponent of a unit, so with TickExponent=4 a Price
// of 1_500_000 is 150.0000. Storing prices as an integer number of ticks
// instead of a float64 (as the source system does) keeps order-book map
// keys exact: binary floating point can turn two textually-identical
// prices into two different map keys and split one price level into two.
const TickExponent int32 = 4

// Price is an exact fixed-point price expressed in ticks of 10^-TickExponent.
type Price int64

// NewPrice converts a decimal price into ticks, rounding to the nearest tick.
func NewPrice(d decimal.Decimal) Price {
	return Price(d.Shift(TickExponent).Round(0).IntPart())
}

// Decimal converts a Price back into a decimal.Decimal for display or
// external reporting.
func (p Price) Decimal() decimal.Decimal {
	return decimal.New(int64(p), -TickExponent)
}

func (p Price) String() string {
	return p.Decimal().StringFixed(TickExponent)
}
