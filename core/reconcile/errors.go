package reconcile

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientStock matches any *InsufficientStockError via errors.Is.
	ErrInsufficientStock = errors.New("not enough stock")
	// ErrInvalidQuantity is returned for negative quantities.
	ErrInvalidQuantity = errors.New("invalid quantity")
)

// InsufficientStockError reports a reservation the size counter cannot cover.
type InsufficientStockError struct {
	Size      string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for size %q: available %d, requested %d", e.Size, e.Available, e.Requested)
}

// Is lets errors.Is(err, ErrInsufficientStock) match.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
