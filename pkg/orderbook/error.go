package orderbook

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateOrder     = errors.New("duplicate order id")
	ErrOrderNotFound      = errors.New("order not found")
	ErrNoImmediateMatch   = errors.New("fill and kill order has no immediate match")
	ErrInvalidQuantity    = errors.New("invalid order quantity")
	ErrInvalidSide        = errors.New("invalid order side")
	ErrInvalidOrderType   = errors.New("invalid order type")
	ErrInvariantViolation = errors.New("order book invariant violation")
)

func errMissingLevel(side Side, price Price) error {
	return fmt.Errorf("%w: no %s level at %d", ErrInvariantViolation, side, price)
}
