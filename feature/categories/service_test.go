package categories_test

import (
	"context"
	"testing"
	"time"

	"order-manager/core/database"
	"order-manager/core/models"
	"order-manager/core/store"
	"order-manager/feature/categories"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func stores(t *testing.T) map[string]store.Store {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	sqlStore := store.NewSQL(db)
	require.NoError(t, sqlStore.Migrate(context.Background()))
	t.Cleanup(func() { _ = sqlStore.Close() })

	return map[string]store.Store{
		"sql":  sqlStore,
		"file": store.NewDocument(store.NewFSBlob(afero.NewMemMapFs(), "data"), zap.NewNop()),
	}
}

func TestCreateAndList(t *testing.T) {
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			svc := categories.NewService(st, zap.NewNop())

			created, err := svc.Create(ctx, categories.CreateInput{Slug: "t-shirts"})
			require.NoError(t, err)
			assert.Equal(t, "T Shirts", created.Name)

			_, err = svc.Create(ctx, categories.CreateInput{Slug: "bags", Name: "All Bags"})
			require.NoError(t, err)

			_, err = svc.Create(ctx, categories.CreateInput{Slug: "bags"})
			assert.ErrorIs(t, err, categories.ErrExists)

			_, err = svc.Create(ctx, categories.CreateInput{Slug: "  "})
			assert.ErrorIs(t, err, categories.ErrInvalid)

			list, err := svc.List(ctx)
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, "bags", list[0].Slug)
			assert.Equal(t, "All Bags", list[0].Name)
			assert.Equal(t, "t-shirts", list[1].Slug)
		})
	}
}

func TestDeleteCascades(t *testing.T) {
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			svc := categories.NewService(st, zap.NewNop())
			now := time.Now().UTC()

			require.NoError(t, st.Update(ctx, func(tx store.Tx) error {
				for _, c := range []string{"tops", "bottoms"} {
					if err := tx.SaveCategory(&models.Category{Slug: c, Name: categories.Title(c), CreatedAt: now}); err != nil {
						return err
					}
				}
				stocks := []models.Stock{
					{ID: "s-top", Category: "tops", Name: "Tee", Sizes: models.Sizes{"M": 1}},
					{ID: "s-bottom", Category: "bottoms", Name: "Jeans", Sizes: models.Sizes{"32": 1}},
				}
				for i := range stocks {
					stocks[i].CreatedAt, stocks[i].UpdatedAt = now, now
					if err := tx.SaveStock(&stocks[i]); err != nil {
						return err
					}
				}
				orders := []models.Order{
					{ID: "o-top", CustomerName: "A", Phone: "1", Category: "tops", ItemID: "s-top", Size: "M", Qty: 1},
					// category label drifted but the stock is still the removed one
					{ID: "o-moved", CustomerName: "B", Phone: "2", Category: "bottoms", ItemID: "s-top", Size: "M", Qty: 1},
					// category only
					{ID: "o-label", CustomerName: "C", Phone: "3", Category: "tops", ItemID: "gone", Size: "M", Qty: 1},
					{ID: "o-keep", CustomerName: "D", Phone: "4", Category: "bottoms", ItemID: "s-bottom", Size: "32", Qty: 1},
				}
				for i := range orders {
					orders[i].Status = models.DefaultStatus
					orders[i].CreatedAt, orders[i].UpdatedAt = now, now
					if err := tx.SaveOrder(&orders[i]); err != nil {
						return err
					}
				}
				return nil
			}))

			removed, err := svc.Delete(ctx, "tops")
			require.NoError(t, err)
			assert.Equal(t, categories.Removed{Stocks: 1, Orders: 3}, removed)

			require.NoError(t, st.View(ctx, func(tx store.Tx) error {
				cats, err := tx.ListCategories()
				require.NoError(t, err)
				require.Len(t, cats, 1)
				assert.Equal(t, "bottoms", cats[0].Slug)

				stocks, err := tx.ListStocks()
				require.NoError(t, err)
				require.Len(t, stocks, 1)
				assert.Equal(t, "s-bottom", stocks[0].ID)

				orders, err := tx.ListOrders()
				require.NoError(t, err)
				require.Len(t, orders, 1)
				assert.Equal(t, "o-keep", orders[0].ID)
				return nil
			}))

			_, err = svc.Delete(ctx, "tops")
			assert.ErrorIs(t, err, categories.ErrNotFound)
		})
	}
}

func TestSeed(t *testing.T) {
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			svc := categories.NewService(st, zap.NewNop())

			added, err := svc.Seed(ctx, []string{"tops", "bottoms", "tops", ""})
			require.NoError(t, err)
			assert.Equal(t, 2, added)

			added, err = svc.Seed(ctx, []string{"outerwear"})
			require.NoError(t, err)
			assert.Zero(t, added)

			list, err := svc.List(ctx)
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, "Bottoms", list[0].Name)
		})
	}
}

func TestTitle(t *testing.T) {
	tests := map[string]string{
		"tops":        "Tops",
		"t-shirts":    "T Shirts",
		"under_wear":  "Under Wear",
		"élan":        "Élan",
		"--odd--case": "Odd Case",
	}
	for in, want := range tests {
		assert.Equal(t, want, categories.Title(in), in)
	}
}
