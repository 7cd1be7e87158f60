// file: pkg/venue/riskrule/riskrule.go

package riskrule

import (
	"github.com/joripage/venue-engine/pkg/orderbook"
)

// Rule vets a submit before it reaches the book. Rules never see resting
// state; they judge a single incoming order in isolation, the same way
// the source system's per-order checks did.
type Rule interface {
	Check(order *orderbook.Order) error
}

// Checker runs an ordered list of Rules and stops at the first failure.
type Checker struct {
	rules []Rule
}

func NewChecker(rules ...Rule) *Checker {
	return &Checker{rules: rules}
}

func (c *Checker) Check(order *orderbook.Order) error {
	for _, r := range c.rules {
		if err := r.Check(order); err != nil {
			return err
		}
	}
	return nil
}
