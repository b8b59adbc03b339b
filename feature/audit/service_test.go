package audit

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"order-manager/core/models"
	"order-manager/core/reconcile"
	"order-manager/core/store"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seeded(t *testing.T) store.Store {
	t.Helper()
	st := store.NewDocument(store.NewFSBlob(afero.NewMemMapFs(), "data"), zap.NewNop())
	now := time.Now().UTC()

	require.NoError(t, st.Update(context.Background(), func(tx store.Tx) error {
		stock := &models.Stock{ID: "s1", Category: "tops", Name: "Tee", Sizes: models.Sizes{"M": 3, "L": 0}, CreatedAt: now, UpdatedAt: now}
		if err := tx.SaveStock(stock); err != nil {
			return err
		}
		orders := []models.Order{
			{ID: "o1", ItemID: "s1", Size: "M", Qty: 2},
			{ID: "o2", ItemID: "s1", Size: "XL", Qty: 1},
			{ID: "o3", ItemID: "gone", Size: "M", Qty: 1},
		}
		for i := range orders {
			orders[i].CustomerName, orders[i].Phone, orders[i].Status = "A", "1", models.DefaultStatus
			orders[i].CreatedAt, orders[i].UpdatedAt = now, now
			if err := tx.SaveOrder(&orders[i]); err != nil {
				return err
			}
		}
		return nil
	}))
	return st
}

func TestReport(t *testing.T) {
	svc := NewService(seeded(t), zap.NewNop())

	report, err := svc.Report(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Summary.Sizes)
	assert.Equal(t, 3, report.Summary.Available)
	assert.Equal(t, 2, report.Summary.Committed)
	assert.Equal(t, 2, report.Summary.Orphans)
	assert.Empty(t, report.Actions)
}

func TestReport_Concurrent(t *testing.T) {
	svc := NewService(seeded(t), zap.NewNop())

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			report, err := svc.Report(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, 2, report.Summary.Orphans)
		}()
	}
	wg.Wait()
}

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		opts     reconcile.Options
		executed int
		remain   int
	}{
		{"Report Only", reconcile.Options{}, 0, 3},
		{"Unconfirmed", reconcile.Options{DoPurge: true}, 0, 3},
		{"Dry Run", reconcile.Options{DoPurge: true, Confirmed: true, DryRun: true}, 0, 3},
		{"Confirmed", reconcile.Options{DoPurge: true, Confirmed: true}, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := seeded(t)
			svc := NewService(st, zap.NewNop())

			report, executed, err := svc.Apply(context.Background(), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.executed, executed)
			if tt.opts.DoPurge {
				assert.Len(t, report.Actions, 2)
			}

			require.NoError(t, st.View(context.Background(), func(tx store.Tx) error {
				orders, err := tx.ListOrders()
				require.NoError(t, err)
				assert.Len(t, orders, tt.remain)
				return nil
			}))

			after, err := svc.Report(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 3, after.Summary.Available)
		})
	}
}

func TestHandlers(t *testing.T) {
	app := fiber.New()
	require.NoError(t, NewFeature(seeded(t), zap.NewNop()).Load(app.Group("/api")))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/reconcile", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var report reconcile.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Len(t, report.Orphans, 2)

	resp, err = app.Test(httptest.NewRequest("POST", "/api/reconcile/purge?dry_run=true", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var dry PurgeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&dry))
	assert.True(t, dry.DryRun)
	assert.Zero(t, dry.Executed)
	assert.Len(t, dry.Report.Actions, 2)

	resp, err = app.Test(httptest.NewRequest("POST", "/api/reconcile/purge", nil), -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"executed":2`)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/reconcile", nil), -1)
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Empty(t, report.Orphans)
}
