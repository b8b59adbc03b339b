package reconcile

import (
	"errors"
	"testing"

	"order-manager/core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserve(t *testing.T) {
	tests := []struct {
		name      string
		sizes     models.Sizes
		size      string
		want      int
		expect    models.Sizes
		available int
		expectErr error
	}{
		{name: "Decrements", sizes: models.Sizes{"M": 5}, size: "M", want: 2, expect: models.Sizes{"M": 3}},
		{name: "Exact", sizes: models.Sizes{"M": 2}, size: "M", want: 2, expect: models.Sizes{"M": 0}},
		{name: "Zero Is Noop", sizes: models.Sizes{"M": 5}, size: "M", want: 0, expect: models.Sizes{"M": 5}},
		{name: "Zero On Absent Size", sizes: models.Sizes{"M": 5}, size: "L", want: 0, expect: models.Sizes{"M": 5}},
		{name: "One Over Available", sizes: models.Sizes{"M": 3}, size: "M", want: 4, expectErr: ErrInsufficientStock, available: 3},
		{name: "Absent Size Reads Zero", sizes: models.Sizes{"M": 3}, size: "XL", want: 1, expectErr: ErrInsufficientStock, available: 0},
		{name: "Nil Sizes", sizes: nil, size: "M", want: 1, expectErr: ErrInsufficientStock, available: 0},
		{name: "Negative", sizes: models.Sizes{"M": 3}, size: "M", want: -1, expectErr: ErrInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.sizes.Clone()

			got, err := Reserve(tt.sizes, tt.size, tt.want)

			if tt.sizes != nil {
				assert.Equal(t, before, tt.sizes, "input must not be mutated")
			}
			if tt.expectErr != nil {
				require.ErrorIs(t, err, tt.expectErr)
				assert.Nil(t, got)

				var insufficient *InsufficientStockError
				if errors.As(err, &insufficient) {
					assert.Equal(t, tt.available, insufficient.Available)
					assert.Equal(t, tt.want, insufficient.Requested)
					assert.Equal(t, tt.size, insufficient.Size)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expect, got)
		})
	}
}

func TestReserve_Arithmetic(t *testing.T) {
	for available := 0; available <= 6; available++ {
		for q := 0; q <= available; q++ {
			got, err := Reserve(models.Sizes{"S": available}, "S", q)
			require.NoError(t, err)
			assert.Equal(t, available-q, got["S"])
		}
	}
}

func TestRelease(t *testing.T) {
	sizes := models.Sizes{"M": 1}

	got := Release(sizes, "M", 4)
	assert.Equal(t, models.Sizes{"M": 5}, got)
	assert.Equal(t, models.Sizes{"M": 1}, sizes)

	assert.Equal(t, models.Sizes{"L": 2}, Release(nil, "L", 2))
}

// Release has no upper bound. Restoring more than was ever reserved is accepted
// and this test pins that behavior so any future cap is a deliberate change.
func TestRelease_NoUpperBound(t *testing.T) {
	got := Release(models.Sizes{"M": 5}, "M", 1000)
	assert.Equal(t, 1005, got["M"])
}

func TestReserveRelease_RoundTrip(t *testing.T) {
	original := models.Sizes{"S": 2, "M": 5, "L": 0}

	for _, size := range []string{"S", "M", "L"} {
		for q := 0; q <= original[size]; q++ {
			reserved, err := Reserve(original, size, q)
			require.NoError(t, err)
			assert.Equal(t, original, Release(reserved, size, q))
		}
	}
}

func TestAdjustOnQtyChange(t *testing.T) {
	t.Run("Increase Reserves Diff", func(t *testing.T) {
		got, err := AdjustOnQtyChange(models.Sizes{"M": 3}, "M", 2, 4)
		require.NoError(t, err)
		assert.Equal(t, 1, got["M"])
	})

	t.Run("Decrease Releases Diff", func(t *testing.T) {
		got, err := AdjustOnQtyChange(models.Sizes{"M": 1}, "M", 4, 1)
		require.NoError(t, err)
		assert.Equal(t, 4, got["M"])
	})

	t.Run("Unchanged", func(t *testing.T) {
		sizes := models.Sizes{"M": 1}
		got, err := AdjustOnQtyChange(sizes, "M", 3, 3)
		require.NoError(t, err)
		assert.Equal(t, sizes, got)
	})

	t.Run("Increase Beyond Available", func(t *testing.T) {
		_, err := AdjustOnQtyChange(models.Sizes{"M": 1}, "M", 2, 5)
		var insufficient *InsufficientStockError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, 1, insufficient.Available)
		assert.Equal(t, 3, insufficient.Requested)
	})

	t.Run("Negative", func(t *testing.T) {
		_, err := AdjustOnQtyChange(models.Sizes{"M": 1}, "M", 2, -1)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})
}

func TestTransferReservation(t *testing.T) {
	t.Run("Different Stocks", func(t *testing.T) {
		from := Hold{StockID: "a", Sizes: models.Sizes{"L": 0}, Size: "L", Qty: 2}
		to := Hold{StockID: "b", Sizes: models.Sizes{"M": 4}, Size: "M", Qty: 3}

		fromSizes, toSizes, err := TransferReservation(from, to)
		require.NoError(t, err)
		assert.Equal(t, models.Sizes{"L": 2}, fromSizes)
		assert.Equal(t, models.Sizes{"M": 1}, toSizes)
	})

	t.Run("Same Stock Uses Post Release Counters", func(t *testing.T) {
		sizes := models.Sizes{"M": 0, "L": 1}
		from := Hold{StockID: "a", Sizes: sizes, Size: "M", Qty: 2}
		to := Hold{StockID: "a", Sizes: sizes, Size: "M", Qty: 2}

		fromSizes, toSizes, err := TransferReservation(from, to)
		require.NoError(t, err)
		assert.Equal(t, models.Sizes{"M": 0, "L": 1}, fromSizes)
		assert.Equal(t, fromSizes, toSizes)
	})

	t.Run("Same Stock Size Change", func(t *testing.T) {
		sizes := models.Sizes{"M": 0, "L": 3}
		from := Hold{StockID: "a", Sizes: sizes, Size: "M", Qty: 2}
		to := Hold{StockID: "a", Sizes: sizes, Size: "L", Qty: 3}

		fromSizes, _, err := TransferReservation(from, to)
		require.NoError(t, err)
		assert.Equal(t, models.Sizes{"M": 2, "L": 0}, fromSizes)
	})

	t.Run("Failed Reserve Leaves Both Untouched", func(t *testing.T) {
		fromSizes := models.Sizes{"L": 0}
		toSizes := models.Sizes{"M": 1}
		from := Hold{StockID: "a", Sizes: fromSizes, Size: "L", Qty: 2}
		to := Hold{StockID: "b", Sizes: toSizes, Size: "M", Qty: 5}

		gotFrom, gotTo, err := TransferReservation(from, to)
		var insufficient *InsufficientStockError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, 1, insufficient.Available)
		assert.Nil(t, gotFrom)
		assert.Nil(t, gotTo)
		assert.Equal(t, models.Sizes{"L": 0}, fromSizes)
		assert.Equal(t, models.Sizes{"M": 1}, toSizes)
	})

	t.Run("Negative", func(t *testing.T) {
		_, _, err := TransferReservation(Hold{Qty: 1}, Hold{Qty: -1})
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})
}

func TestInsufficientStockError(t *testing.T) {
	err := error(&InsufficientStockError{Size: "M", Available: 3, Requested: 10})
	assert.True(t, errors.Is(err, ErrInsufficientStock))
	assert.False(t, errors.Is(err, ErrInvalidQuantity))
	assert.Contains(t, err.Error(), "available 3")
}
