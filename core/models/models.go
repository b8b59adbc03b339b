package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultStatus is assigned to orders created without a status.
const DefaultStatus = "pending"

// Stock is an inventory line item holding per-size available quantities.
type Stock struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Category  string    `gorm:"size:64;index" json:"category"`
	Name      string    `gorm:"size:255" json:"name"`
	Sizes     Sizes     `gorm:"type:text" json:"sizes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Order is a customer purchase that holds Qty units of one Stock size.
type Order struct {
	ID           string              `gorm:"primaryKey;size:36" json:"id"`
	CustomerName string              `gorm:"size:255" json:"customerName"`
	Phone        string              `gorm:"size:64" json:"phone"`
	Address      string              `gorm:"size:512" json:"address"`
	Payment      string              `gorm:"size:64" json:"payment"`
	Category     string              `gorm:"size:64;index" json:"category"`
	ItemID       string              `gorm:"size:36;index" json:"itemId"`
	ItemName     string              `gorm:"size:255" json:"itemName"`
	Size         string              `gorm:"size:32" json:"size"`
	Qty          int                 `json:"qty"`
	Notes        string              `gorm:"type:text" json:"notes"`
	Price        decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"price"`
	Status       string              `gorm:"size:32" json:"status"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

// Category groups stocks. Slug is its identity.
type Category struct {
	Slug      string    `gorm:"primaryKey;size:64" json:"slug"`
	Name      string    `gorm:"size:255" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewStockID returns a random stock identifier.
func NewStockID() string {
	return uuid.NewString()
}

// NewOrderID returns a time-ordered identifier, so sorting ids sorts by creation.
func NewOrderID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// All returns the models managed by the sql store, for migrations.
func All() []any {
	return []any{&Category{}, &Stock{}, &Order{}}
}
