package categories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"order-manager/core/models"
	"order-manager/core/store"

	"go.uber.org/zap"
)

var (
	// ErrInvalid is returned when the slug is missing.
	ErrInvalid = errors.New("slug is required")
	// ErrExists is returned when a category with the slug already exists.
	ErrExists = errors.New("category already exists")
	// ErrNotFound is returned when the slug does not resolve.
	ErrNotFound = errors.New("category not found")
)

// CreateInput is the body of POST /api/categories.
type CreateInput struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Removed counts what a cascading delete took with it.
type Removed struct {
	Stocks int `json:"stocks"`
	Orders int `json:"orders"`
}

// Service manages categories.
type Service struct {
	store  store.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new category service.
func NewService(st store.Store, logger *zap.Logger) *Service {
	return &Service{
		store:  st,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// List returns every category sorted by slug.
func (s *Service) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.store.View(ctx, func(tx store.Tx) error {
		var err error
		categories, err = tx.ListCategories()
		return err
	})
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

// Create adds a category. Name defaults to the title-cased slug.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Category, error) {
	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		return nil, ErrInvalid
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = Title(slug)
	}

	category := &models.Category{Slug: slug, Name: name, CreatedAt: s.now()}
	err := s.store.Update(ctx, func(tx store.Tx) error {
		_, err := tx.GetCategory(slug)
		if err == nil {
			return fmt.Errorf("%w: %s", ErrExists, slug)
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		return tx.SaveCategory(category)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Category created", zap.String("slug", slug))
	return category, nil
}

// Delete removes the category, every stock in it, and every order that
// belongs to the category or to one of the removed stocks.
func (s *Service) Delete(ctx context.Context, slug string) (Removed, error) {
	var removed Removed
	err := s.store.Update(ctx, func(tx store.Tx) error {
		if err := tx.DeleteCategory(slug); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("%w: %s", ErrNotFound, slug)
			}
			return err
		}

		stocks, err := tx.ListStocks()
		if err != nil {
			return err
		}
		gone := make(map[string]struct{})
		for _, stock := range stocks {
			if stock.Category != slug {
				continue
			}
			if err := tx.DeleteStock(stock.ID); err != nil {
				return fmt.Errorf("failed to delete stock %s: %w", stock.ID, err)
			}
			gone[stock.ID] = struct{}{}
		}
		removed.Stocks = len(gone)

		orders, err := tx.ListOrders()
		if err != nil {
			return err
		}
		for _, order := range orders {
			_, orphaned := gone[order.ItemID]
			if order.Category != slug && !orphaned {
				continue
			}
			if err := tx.DeleteOrder(order.ID); err != nil {
				return fmt.Errorf("failed to delete order %s: %w", order.ID, err)
			}
			removed.Orders++
		}
		return nil
	})
	if err != nil {
		return Removed{}, err
	}

	s.logger.Info("Category deleted",
		zap.String("slug", slug),
		zap.Int("stocks", removed.Stocks),
		zap.Int("orders", removed.Orders),
	)
	return removed, nil
}

// Seed inserts slugs when no category exists yet. It returns how many were added.
func (s *Service) Seed(ctx context.Context, slugs []string) (int, error) {
	added := 0
	err := s.store.Update(ctx, func(tx store.Tx) error {
		existing, err := tx.ListCategories()
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return nil
		}

		seen := make(map[string]struct{}, len(slugs))
		now := s.now()
		for _, raw := range slugs {
			slug := strings.TrimSpace(raw)
			if slug == "" {
				continue
			}
			if _, dup := seen[slug]; dup {
				continue
			}
			seen[slug] = struct{}{}
			if err := tx.SaveCategory(&models.Category{Slug: slug, Name: Title(slug), CreatedAt: now}); err != nil {
				return err
			}
			added++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to seed categories: %w", err)
	}
	if added > 0 {
		s.logger.Info("Seeded categories", zap.Int("count", added))
	}
	return added, nil
}

// Title turns a slug like "t-shirts" into "T Shirts".
func Title(slug string) string {
	words := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
