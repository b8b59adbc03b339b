package reconcile

import (
	"fmt"

	"order-manager/core/models"
)

// DefaultQty is used when an order does not specify a quantity.
const DefaultQty = 1

// Hold is the quantity an order holds against one size of one stock.
type Hold struct {
	StockID string
	Sizes   models.Sizes
	Size    string
	Qty     int
}

// Reserve takes want units of size out of sizes and returns the new counters.
// sizes is never modified and reserving 0 returns an equal copy. A failed
// reservation returns *InsufficientStockError carrying the available quantity.
func Reserve(sizes models.Sizes, size string, want int) (models.Sizes, error) {
	if want < 0 {
		return nil, fmt.Errorf("%w: reserve %d", ErrInvalidQuantity, want)
	}

	available := sizes.Get(size)
	if available < want {
		return nil, &InsufficientStockError{Size: size, Available: available, Requested: want}
	}

	out := sizes.Clone()
	if want > 0 {
		out[size] = available - want
	}
	return out, nil
}

// Release puts qty units of size back. It has no upper bound: releasing more
// than was ever reserved is accepted.
func Release(sizes models.Sizes, size string, qty int) models.Sizes {
	out := sizes.Clone()
	out[size] = sizes.Get(size) + qty
	return out
}

// AdjustOnQtyChange moves a hold on size from oldQty to newQty units.
func AdjustOnQtyChange(sizes models.Sizes, size string, oldQty, newQty int) (models.Sizes, error) {
	if oldQty < 0 || newQty < 0 {
		return nil, fmt.Errorf("%w: %d -> %d", ErrInvalidQuantity, oldQty, newQty)
	}

	switch diff := newQty - oldQty; {
	case diff > 0:
		return Reserve(sizes, size, diff)
	case diff < 0:
		return Release(sizes, size, -diff), nil
	default:
		return sizes.Clone(), nil
	}
}

// TransferReservation releases from and reserves to. When both holds point at
// the same stock the reservation is taken from the post-release counters and
// both returned maps are that single result.
//
// Neither input is modified, so when the reserve fails nothing has changed and
// the caller has nothing to persist.
func TransferReservation(from, to Hold) (fromSizes, toSizes models.Sizes, err error) {
	if from.Qty < 0 || to.Qty < 0 {
		return nil, nil, fmt.Errorf("%w: transfer %d -> %d", ErrInvalidQuantity, from.Qty, to.Qty)
	}

	released := Release(from.Sizes, from.Size, from.Qty)

	if from.StockID == to.StockID {
		reserved, err := Reserve(released, to.Size, to.Qty)
		if err != nil {
			return nil, nil, err
		}
		return reserved, reserved, nil
	}

	reserved, err := Reserve(to.Sizes, to.Size, to.Qty)
	if err != nil {
		return nil, nil, err
	}
	return released, reserved, nil
}
