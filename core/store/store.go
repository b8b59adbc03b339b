package store

import (
	"context"
	"errors"
	"sort"

	"order-manager/core/models"
)

// Backends selectable through Config.Backend.
const (
	BackendSQL    = "sql"
	BackendFile   = "file"
	BackendBucket = "bucket"
)

var (
	// ErrNotFound is returned when an id or slug does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrReadOnly is returned when a View transaction tries to write.
	ErrReadOnly = errors.New("read-only transaction")
)

// Config selects and configures the persistence backend.
type Config struct {
	// Backend is one of sql, file or bucket.
	Backend string `mapstructure:"backend" default:"sql"`
	// Dir is where the file backend keeps its documents.
	Dir string `mapstructure:"dir" default:"data"`
	// Prefix is prepended to document keys in the bucket backend.
	Prefix string `mapstructure:"prefix" default:""`
	// AutoMigrate creates or updates the sql schema on startup.
	AutoMigrate bool `mapstructure:"auto_migrate" default:"true"`
}

// Tx reads and writes the stock, order and category collections inside one
// transaction. Get and Delete return ErrNotFound for unknown keys.
type Tx interface {
	ListStocks() ([]models.Stock, error)
	GetStock(id string) (*models.Stock, error)
	SaveStock(stock *models.Stock) error
	DeleteStock(id string) error

	ListOrders() ([]models.Order, error)
	GetOrder(id string) (*models.Order, error)
	SaveOrder(order *models.Order) error
	DeleteOrder(id string) error

	ListCategories() ([]models.Category, error)
	GetCategory(slug string) (*models.Category, error)
	SaveCategory(category *models.Category) error
	DeleteCategory(slug string) error
}

// Store runs transactions against a backend. Every Update commits all of its
// writes or none of them.
type Store interface {
	View(ctx context.Context, fn func(tx Tx) error) error
	Update(ctx context.Context, fn func(tx Tx) error) error
	Ping(ctx context.Context) error
	Close() error
}

// SortStocks orders stocks by category, name and id.
func SortStocks(stocks []models.Stock) {
	sort.SliceStable(stocks, func(i, j int) bool {
		a, b := stocks[i], stocks[j]
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
}

// SortOrders orders newest first. Ids are time ordered and break ties.
func SortOrders(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		a, b := orders[i], orders[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
}

// SortCategories orders categories by slug.
func SortCategories(categories []models.Category) {
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Slug < categories[j].Slug
	})
}
