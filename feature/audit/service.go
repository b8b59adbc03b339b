package audit

import (
	"context"
	"fmt"

	"order-manager/core/models"
	"order-manager/core/reconcile"
	"order-manager/core/store"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Service audits stock counters against orders.
type Service struct {
	store  store.Store
	logger *zap.Logger
	group  singleflight.Group
}

// NewService creates a new audit service.
func NewService(st store.Store, logger *zap.Logger) *Service {
	return &Service{store: st, logger: logger}
}

// Report audits a consistent snapshot. Concurrent callers share one read.
func (s *Service) Report(ctx context.Context) (reconcile.Report, error) {
	v, err, shared := s.group.Do("report", func() (any, error) {
		var stocks []models.Stock
		var orders []models.Order
		err := s.store.View(ctx, func(tx store.Tx) error {
			var err error
			if stocks, err = tx.ListStocks(); err != nil {
				return err
			}
			orders, err = tx.ListOrders()
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("failed to snapshot store: %w", err)
		}
		return reconcile.Audit(stocks, orders, reconcile.Options{}), nil
	})
	if err != nil {
		return reconcile.Report{}, err
	}
	if shared {
		s.logger.Debug("Audit report shared between callers")
	}
	return v.(reconcile.Report), nil
}

// Apply plans under the write lock and, when opts allow it, deletes every
// orphan order. Orphans hold nothing, so no counter is touched.
func (s *Service) Apply(ctx context.Context, opts reconcile.Options) (reconcile.Report, int, error) {
	var report reconcile.Report
	executed := 0

	err := s.store.Update(ctx, func(tx store.Tx) error {
		stocks, err := tx.ListStocks()
		if err != nil {
			return err
		}
		orders, err := tx.ListOrders()
		if err != nil {
			return err
		}

		report = reconcile.Audit(stocks, orders, opts)
		if !opts.CanApply() {
			return nil
		}

		for _, action := range report.Actions {
			if action.Type != reconcile.ActionDeleteOrder {
				continue
			}
			if err := tx.DeleteOrder(action.Key); err != nil {
				return fmt.Errorf("failed to purge order %s: %w", action.Key, err)
			}
			executed++
		}
		return nil
	})
	if err != nil {
		return reconcile.Report{}, 0, err
	}

	if executed > 0 {
		s.logger.Info("Purged orphan orders", zap.Int("count", executed))
	}
	return report, executed, nil
}
