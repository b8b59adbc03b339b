package stocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"order-manager/core/models"
	"order-manager/core/store"

	"go.uber.org/zap"
)

var (
	// ErrInvalid is returned for requests that fail validation.
	ErrInvalid = errors.New("invalid stock")
	// ErrNotFound is returned when the stock id does not resolve.
	ErrNotFound = errors.New("stock not found")
)

// CreateInput is the body of POST /api/stocks.
type CreateInput struct {
	Category string       `json:"category"`
	Name     string       `json:"name"`
	Sizes    models.Sizes `json:"sizes"`
}

// Patch is the body of PUT /api/stocks/:id. Sizes replaces the whole map.
type Patch struct {
	Category *string       `json:"category"`
	Name     *string       `json:"name"`
	Sizes    *models.Sizes `json:"sizes"`
}

// Service handles direct stock edits.
type Service struct {
	store  store.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new stock service.
func NewService(st store.Store, logger *zap.Logger) *Service {
	return &Service{
		store:  st,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// List returns every stock sorted by category, name and id.
func (s *Service) List(ctx context.Context) ([]models.Stock, error) {
	var stocks []models.Stock
	err := s.store.View(ctx, func(tx store.Tx) error {
		var err error
		stocks, err = tx.ListStocks()
		return err
	})
	if err != nil {
		return nil, err
	}
	if stocks == nil {
		stocks = []models.Stock{}
	}
	return stocks, nil
}

// Create adds a stock. Sizes defaults to an empty map.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Stock, error) {
	if strings.TrimSpace(in.Category) == "" || strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: category and name are required", ErrInvalid)
	}
	if err := in.Sizes.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	now := s.now()
	stock := &models.Stock{
		ID:        models.NewStockID(),
		Category:  in.Category,
		Name:      in.Name,
		Sizes:     in.Sizes.Clone(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.store.Update(ctx, func(tx store.Tx) error {
		return tx.SaveStock(stock)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Stock created", zap.String("stock_id", stock.ID), zap.String("name", stock.Name))
	return stock, nil
}

// Update applies patch to the stock.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (*models.Stock, error) {
	if patch.Category != nil && strings.TrimSpace(*patch.Category) == "" {
		return nil, fmt.Errorf("%w: category must not be blank", ErrInvalid)
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, fmt.Errorf("%w: name must not be blank", ErrInvalid)
	}
	if patch.Sizes != nil {
		if err := patch.Sizes.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}

	var stock *models.Stock
	err := s.store.Update(ctx, func(tx store.Tx) error {
		var err error
		stock, err = tx.GetStock(id)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		if err != nil {
			return err
		}

		if patch.Category != nil {
			stock.Category = *patch.Category
		}
		if patch.Name != nil {
			stock.Name = *patch.Name
		}
		if patch.Sizes != nil {
			stock.Sizes = patch.Sizes.Clone()
		}
		stock.UpdatedAt = s.now()
		return tx.SaveStock(stock)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Stock updated", zap.String("stock_id", stock.ID))
	return stock, nil
}

// Delete removes the stock. Orders that reference it are kept.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.store.Update(ctx, func(tx store.Tx) error {
		return tx.DeleteStock(id)
	})
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return err
	}

	s.logger.Info("Stock deleted", zap.String("stock_id", id))
	return nil
}
