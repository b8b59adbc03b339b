package orders

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CreateInput is the body of POST /api/orders.
type CreateInput struct {
	CustomerName string              `json:"customerName"`
	Phone        string              `json:"phone"`
	Address      string              `json:"address"`
	Payment      string              `json:"payment"`
	Category     string              `json:"category"`
	ItemID       string              `json:"itemId"`
	ItemName     string              `json:"itemName"`
	Size         string              `json:"size"`
	Qty          *int                `json:"qty"`
	Notes        string              `json:"notes"`
	Price        decimal.NullDecimal `json:"price" swaggertype:"number"`
	Status       string              `json:"status"`
}

// Validate checks required fields and quantities.
func (in *CreateInput) Validate() error {
	required := []struct{ field, value string }{
		{"customerName", in.CustomerName},
		{"phone", in.Phone},
		{"itemId", in.ItemID},
		{"size", in.Size},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return invalid(r.field, "is required")
		}
	}
	if in.Qty != nil && *in.Qty <= 0 {
		return invalid("qty", "must be greater than 0")
	}
	if in.Price.Valid && in.Price.Decimal.IsNegative() {
		return invalid("price", "must not be negative")
	}
	return nil
}

// Patch is the body of PUT /api/orders/:id. Nil fields are left unchanged.
type Patch struct {
	CustomerName *string          `json:"customerName"`
	Phone        *string          `json:"phone"`
	Address      *string          `json:"address"`
	Payment      *string          `json:"payment"`
	Category     *string          `json:"category"`
	ItemID       *string          `json:"itemId"`
	ItemName     *string          `json:"itemName"`
	Size         *string          `json:"size"`
	Qty          *int             `json:"qty"`
	Notes        *string          `json:"notes"`
	Price        *decimal.Decimal `json:"price" swaggertype:"number"`
	Status       *string          `json:"status"`
}

// Validate rejects blank required fields and non-positive quantities.
func (p *Patch) Validate() error {
	required := []struct {
		field string
		value *string
	}{
		{"customerName", p.CustomerName},
		{"phone", p.Phone},
		{"itemId", p.ItemID},
		{"size", p.Size},
	}
	for _, r := range required {
		if r.value != nil && strings.TrimSpace(*r.value) == "" {
			return invalid(r.field, "must not be blank")
		}
	}
	if p.Qty != nil && *p.Qty <= 0 {
		return invalid("qty", "must be greater than 0")
	}
	if p.Price != nil && p.Price.IsNegative() {
		return invalid("price", "must not be negative")
	}
	return nil
}
