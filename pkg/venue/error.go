// file: pkg/venue/error.go

package venue

import "errors"

var (
	// ErrInvalidOrder covers non-positive quantity or price, empty
	// symbol, empty user id, or an unknown side — checked before an
	// order ever reaches a book.
	ErrInvalidOrder = errors.New("venue: invalid order")

	// ErrUnknownSymbol is returned when the venue's policy is a closed
	// symbol whitelist and submit names a symbol outside it.
	ErrUnknownSymbol = errors.New("venue: unknown symbol")

	// ErrRiskRuleViolation is wrapped by the error Submit returns when a
	// risk rule fails; that error's message carries the first failing
	// rule's message.
	ErrRiskRuleViolation = errors.New("venue: risk rule violation")
)
