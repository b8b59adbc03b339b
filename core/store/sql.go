package store

import (
	"context"
	"errors"
	"fmt"

	"order-manager/core/database"
	"order-manager/core/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLStore keeps the collections as tables through gorm.
type SQLStore struct {
	db *gorm.DB
}

// NewSQL wraps an open connection.
func NewSQL(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Migrate creates or updates the categories, stocks and orders tables.
func (s *SQLStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// DB exposes the connection for schema checks.
func (s *SQLStore) DB() *gorm.DB {
	return s.db
}

func (s *SQLStore) View(ctx context.Context, fn func(tx Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		return fn(&sqlTx{db: db})
	})
}

// Update runs fn in a database transaction. Stocks read through GetStock are
// locked until commit, except on sqlite where writers are already serialized.
func (s *SQLStore) Update(ctx context.Context, fn func(tx Tx) error) error {
	lock := s.db.Dialector.Name() != database.DriverSQLite
	return s.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		return fn(&sqlTx{db: db, writable: true, lock: lock})
	})
}

func (s *SQLStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type sqlTx struct {
	db       *gorm.DB
	writable bool
	lock     bool
}

func (t *sqlTx) forUpdate() *gorm.DB {
	if t.lock {
		return t.db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return t.db
}

func (t *sqlTx) ListStocks() ([]models.Stock, error) {
	var stocks []models.Stock
	if err := t.db.Order("category, name, id").Find(&stocks).Error; err != nil {
		return nil, fmt.Errorf("failed to list stocks: %w", err)
	}
	return stocks, nil
}

func (t *sqlTx) GetStock(id string) (*models.Stock, error) {
	var stock models.Stock
	if err := t.forUpdate().Where("id = ?", id).First(&stock).Error; err != nil {
		return nil, notFound(err, "stock", id)
	}
	return &stock, nil
}

func (t *sqlTx) SaveStock(stock *models.Stock) error {
	if !t.writable {
		return ErrReadOnly
	}
	if err := t.db.Save(stock).Error; err != nil {
		return fmt.Errorf("failed to save stock %s: %w", stock.ID, err)
	}
	return nil
}

func (t *sqlTx) DeleteStock(id string) error {
	return t.delete(&models.Stock{}, "id = ?", "stock", id)
}

func (t *sqlTx) ListOrders() ([]models.Order, error) {
	var orders []models.Order
	if err := t.db.Order("created_at DESC, id DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (t *sqlTx) GetOrder(id string) (*models.Order, error) {
	var order models.Order
	if err := t.forUpdate().Where("id = ?", id).First(&order).Error; err != nil {
		return nil, notFound(err, "order", id)
	}
	return &order, nil
}

func (t *sqlTx) SaveOrder(order *models.Order) error {
	if !t.writable {
		return ErrReadOnly
	}
	if err := t.db.Save(order).Error; err != nil {
		return fmt.Errorf("failed to save order %s: %w", order.ID, err)
	}
	return nil
}

func (t *sqlTx) DeleteOrder(id string) error {
	return t.delete(&models.Order{}, "id = ?", "order", id)
}

func (t *sqlTx) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := t.db.Order("slug").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (t *sqlTx) GetCategory(slug string) (*models.Category, error) {
	var category models.Category
	if err := t.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, notFound(err, "category", slug)
	}
	return &category, nil
}

func (t *sqlTx) SaveCategory(category *models.Category) error {
	if !t.writable {
		return ErrReadOnly
	}
	if err := t.db.Save(category).Error; err != nil {
		return fmt.Errorf("failed to save category %s: %w", category.Slug, err)
	}
	return nil
}

func (t *sqlTx) DeleteCategory(slug string) error {
	return t.delete(&models.Category{}, "slug = ?", "category", slug)
}

func (t *sqlTx) delete(model any, where, kind, key string) error {
	if !t.writable {
		return ErrReadOnly
	}
	res := t.db.Where(where, key).Delete(model)
	if res.Error != nil {
		return fmt.Errorf("failed to delete %s %s: %w", kind, key, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s %s: %w", kind, key, ErrNotFound)
	}
	return nil
}

func notFound(err error, kind, key string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %s: %w", kind, key, ErrNotFound)
	}
	return fmt.Errorf("failed to get %s %s: %w", kind, key, err)
}
