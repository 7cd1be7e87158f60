package riskrule

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/joripage/venue-engine/pkg/orderbook"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return d
}

func order(t *testing.T, symbol, price string) *orderbook.Order {
	t.Helper()
	return &orderbook.Order{
		ID:         1,
		Symbol:     symbol,
		Side:       orderbook.Buy,
		LimitPrice: orderbook.NewPrice(mustDecimal(t, price)),
		Remaining:  10,
		UserID:     "u",
	}
}

func TestTickSizeRuleRejectsOffTickPrice(t *testing.T) {
	rule := NewTickSizeRule(map[string]decimal.Decimal{"AAPL": mustDecimal(t, "0.05")})

	if err := rule.Check(order(t, "AAPL", "150.05")); err != nil {
		t.Errorf("expected 150.05 to be on-tick, got %v", err)
	}
	if err := rule.Check(order(t, "AAPL", "150.03")); err == nil {
		t.Errorf("expected 150.03 to violate the 0.05 tick size")
	}
}

func TestTickSizeRuleUnconstrainedSymbol(t *testing.T) {
	rule := NewTickSizeRule(map[string]decimal.Decimal{"AAPL": mustDecimal(t, "0.05")})
	if err := rule.Check(order(t, "MSFT", "150.037")); err != nil {
		t.Errorf("expected unconfigured symbol to pass, got %v", err)
	}
}

func TestPriceCollarRuleRejectsOutsideBand(t *testing.T) {
	rule := NewPriceCollarRule(mustDecimal(t, "0.10"))
	rule.SetReference("AAPL", mustDecimal(t, "100"))

	if err := rule.Check(order(t, "AAPL", "105")); err != nil {
		t.Errorf("expected 105 within a 10%% band of 100, got %v", err)
	}
	if err := rule.Check(order(t, "AAPL", "115")); err == nil {
		t.Errorf("expected 115 to breach the collar ceiling")
	}
	if err := rule.Check(order(t, "AAPL", "89")); err == nil {
		t.Errorf("expected 89 to breach the collar floor")
	}
}

func TestPriceCollarRuleUnsetReferenceIsUnconstrained(t *testing.T) {
	rule := NewPriceCollarRule(mustDecimal(t, "0.10"))
	if err := rule.Check(order(t, "AAPL", "999999")); err != nil {
		t.Errorf("expected symbol with no reference price to pass, got %v", err)
	}
}

func TestCheckerStopsAtFirstFailure(t *testing.T) {
	tick := NewTickSizeRule(map[string]decimal.Decimal{"AAPL": mustDecimal(t, "1")})
	collar := NewPriceCollarRule(mustDecimal(t, "0.05"))
	collar.SetReference("AAPL", mustDecimal(t, "100"))

	checker := NewChecker(tick, collar)
	if err := checker.Check(order(t, "AAPL", "100.50")); err == nil {
		t.Fatalf("expected tick size violation to be reported")
	}
	if err := checker.Check(order(t, "AAPL", "150")); err == nil {
		t.Fatalf("expected collar violation to be reported")
	}
	if err := checker.Check(order(t, "AAPL", "101")); err != nil {
		t.Fatalf("expected order satisfying both rules to pass, got %v", err)
	}
}
