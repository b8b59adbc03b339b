package orders

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"order-manager/core/events"
	"order-manager/core/models"
	"order-manager/core/reconcile"
	"order-manager/core/store"

	"go.uber.org/zap"
)

// Result is an order together with the stock list read after the change
// committed. Stocks is nil when that read failed.
type Result struct {
	Order  *models.Order
	Stocks []models.Stock
}

// Service runs the order lifecycle against the store.
type Service struct {
	store     store.Store
	publisher events.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewService creates a new order service.
func NewService(st store.Store, publisher events.Publisher, logger *zap.Logger) *Service {
	return &Service{
		store:     st,
		publisher: publisher,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// List returns all orders, newest first.
func (s *Service) List(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.store.View(ctx, func(tx store.Tx) error {
		var err error
		orders, err = tx.ListOrders()
		return err
	})
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// Create reserves the requested quantity and records the order in one transaction.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	qty := reconcile.DefaultQty
	if in.Qty != nil {
		qty = *in.Qty
	}

	id, err := models.NewOrderID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order id: %w", err)
	}
	now := s.now()

	order := &models.Order{
		ID:           id,
		CustomerName: in.CustomerName,
		Phone:        in.Phone,
		Address:      in.Address,
		Payment:      in.Payment,
		Category:     in.Category,
		ItemID:       in.ItemID,
		ItemName:     in.ItemName,
		Size:         in.Size,
		Qty:          qty,
		Notes:        in.Notes,
		Price:        in.Price,
		Status:       in.Status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if order.Status == "" {
		order.Status = models.DefaultStatus
	}

	err = s.store.Update(ctx, func(tx store.Tx) error {
		stock, err := getStock(tx, order.ItemID)
		if err != nil {
			return err
		}

		sizes, err := reconcile.Reserve(stock.Sizes, order.Size, qty)
		if err != nil {
			return err
		}
		stock.Sizes = sizes
		stock.UpdatedAt = now

		if order.ItemName == "" {
			order.ItemName = stock.Name
		}
		if order.Category == "" {
			order.Category = stock.Category
		}

		if err := tx.SaveStock(stock); err != nil {
			return err
		}
		return tx.SaveOrder(order)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order created",
		zap.String("order_id", order.ID),
		zap.String("item_id", order.ItemID),
		zap.String("size", order.Size),
		zap.Int("qty", order.Qty))

	s.publish(ctx, events.OrderCreated, *order)
	return &Result{Order: order, Stocks: s.snapshot(ctx)}, nil
}

// Update overlays patch onto the order and moves its hold to the new item,
// size and quantity. Stock and order are saved in one transaction.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (*Result, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var order *models.Order
	err := s.store.Update(ctx, func(tx store.Tx) error {
		var err error
		order, err = getOrder(tx, id)
		if err != nil {
			return err
		}
		now := s.now()

		newItem := order.ItemID
		if patch.ItemID != nil {
			newItem = *patch.ItemID
		}
		newSize := order.Size
		if patch.Size != nil {
			newSize = *patch.Size
		}
		newQty := order.Qty
		if patch.Qty != nil {
			newQty = *patch.Qty
		}

		if newItem == order.ItemID && newSize == order.Size {
			if newQty != order.Qty {
				stock, err := getStock(tx, newItem)
				if err != nil {
					return err
				}
				sizes, err := reconcile.AdjustOnQtyChange(stock.Sizes, newSize, order.Qty, newQty)
				if err != nil {
					return err
				}
				stock.Sizes = sizes
				stock.UpdatedAt = now
				if err := tx.SaveStock(stock); err != nil {
					return err
				}
			}
		} else {
			newStock, err := s.transfer(tx, order, newItem, newSize, newQty, now)
			if err != nil {
				return err
			}
			if newItem != order.ItemID {
				if patch.ItemName == nil {
					order.ItemName = newStock.Name
				}
				if patch.Category == nil {
					order.Category = newStock.Category
				}
			}
		}

		applyPatch(order, patch)
		order.ItemID = newItem
		order.Size = newSize
		order.Qty = newQty
		order.UpdatedAt = now
		return tx.SaveOrder(order)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order updated",
		zap.String("order_id", order.ID),
		zap.String("item_id", order.ItemID),
		zap.String("size", order.Size),
		zap.Int("qty", order.Qty))

	s.publish(ctx, events.OrderUpdated, *order)
	return &Result{Order: order, Stocks: s.snapshot(ctx)}, nil
}

// transfer releases the order's current hold and reserves the new one. Both
// legs are decided before either stock is saved.
func (s *Service) transfer(tx store.Tx, order *models.Order, newItem, newSize string, newQty int, now time.Time) (*models.Stock, error) {
	stocks, err := lockStocks(tx, order.ItemID, newItem)
	if err != nil {
		return nil, err
	}

	newStock, ok := stocks[newItem]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrStockNotFound, newItem)
	}

	oldStock, ok := stocks[order.ItemID]
	if !ok {
		s.logger.Warn("Previous stock missing, release skipped",
			zap.String("order_id", order.ID),
			zap.String("item_id", order.ItemID),
			zap.Int("qty", order.Qty))

		sizes, err := reconcile.Reserve(newStock.Sizes, newSize, newQty)
		if err != nil {
			return nil, err
		}
		newStock.Sizes = sizes
		newStock.UpdatedAt = now
		return newStock, tx.SaveStock(newStock)
	}

	fromSizes, toSizes, err := reconcile.TransferReservation(
		reconcile.Hold{StockID: oldStock.ID, Sizes: oldStock.Sizes, Size: order.Size, Qty: order.Qty},
		reconcile.Hold{StockID: newStock.ID, Sizes: newStock.Sizes, Size: newSize, Qty: newQty},
	)
	if err != nil {
		return nil, err
	}

	if oldStock.ID != newStock.ID {
		oldStock.Sizes = fromSizes
		oldStock.UpdatedAt = now
		if err := tx.SaveStock(oldStock); err != nil {
			return nil, err
		}
	}
	newStock.Sizes = toSizes
	newStock.UpdatedAt = now
	return newStock, tx.SaveStock(newStock)
}

// Delete releases the order's hold and removes it. When the stock no longer
// exists the quantity is not restored.
func (s *Service) Delete(ctx context.Context, id string) (*Result, error) {
	var order *models.Order
	err := s.store.Update(ctx, func(tx store.Tx) error {
		var err error
		order, err = getOrder(tx, id)
		if err != nil {
			return err
		}

		stock, err := tx.GetStock(order.ItemID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			s.logger.Warn("Stock missing, release skipped",
				zap.String("order_id", order.ID),
				zap.String("item_id", order.ItemID),
				zap.Int("qty", order.Qty))
		case err != nil:
			return err
		default:
			stock.Sizes = reconcile.Release(stock.Sizes, order.Size, order.Qty)
			stock.UpdatedAt = s.now()
			if err := tx.SaveStock(stock); err != nil {
				return err
			}
		}

		return tx.DeleteOrder(order.ID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order deleted", zap.String("order_id", order.ID))

	s.publish(ctx, events.OrderDeleted, *order)
	return &Result{Order: order, Stocks: s.snapshot(ctx)}, nil
}

// snapshot reads the stock list after a commit. The change is already durable,
// so a failed read is logged and reported as a nil list.
func (s *Service) snapshot(ctx context.Context) []models.Stock {
	var stocks []models.Stock
	err := s.store.View(ctx, func(tx store.Tx) error {
		var err error
		stocks, err = tx.ListStocks()
		return err
	})
	if err != nil {
		s.logger.Error("Failed to reload stocks after commit", zap.Error(err))
		return nil
	}
	if stocks == nil {
		stocks = []models.Stock{}
	}
	return stocks
}

func (s *Service) publish(ctx context.Context, eventType string, order models.Order) {
	event := events.Event{Type: eventType, Order: order, OccurredAt: s.now()}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish order event",
			zap.String("type", eventType),
			zap.String("order_id", order.ID),
			zap.Error(err))
	}
}

func getOrder(tx store.Tx, id string) (*models.Order, error) {
	order, err := tx.GetOrder(id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	return order, err
}

func getStock(tx store.Tx, id string) (*models.Stock, error) {
	stock, err := tx.GetStock(id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrStockNotFound, id)
	}
	return stock, err
}

// lockStocks reads the given stocks in id order so concurrent transfers
// between the same two stocks lock rows in the same sequence. Missing stocks
// are left out of the map.
func lockStocks(tx store.Tx, ids ...string) (map[string]*models.Stock, error) {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	sort.Strings(unique)

	stocks := make(map[string]*models.Stock, len(unique))
	for _, id := range unique {
		stock, err := tx.GetStock(id)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		stocks[id] = stock
	}
	return stocks, nil
}

func applyPatch(order *models.Order, patch Patch) {
	set := func(dst, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&order.CustomerName, patch.CustomerName)
	set(&order.Phone, patch.Phone)
	set(&order.Address, patch.Address)
	set(&order.Payment, patch.Payment)
	set(&order.Category, patch.Category)
	set(&order.ItemName, patch.ItemName)
	set(&order.Notes, patch.Notes)
	set(&order.Status, patch.Status)
	if patch.Price != nil {
		order.Price.Decimal = *patch.Price
		order.Price.Valid = true
	}
}
