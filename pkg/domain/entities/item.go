package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ItemID uniquely identifies a catalog item
type ItemID string

// Item represents a catalog/model-level equipment definition, not a physical unit
type Item struct {
	ID                ItemID
	Name              string
	Category          string
	InternalRef       string
	DefaultSupplierID SupplierID
	DefaultUnitPrice  decimal.Decimal
	Site              string
	LowStockThreshold int
	Notes             string
}

// NewItem creates a validated Item
func NewItem(id ItemID, name, category, internalRef string) (*Item, error) {
	if id == "" {
		return nil, fmt.Errorf("item id cannot be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("item name cannot be empty")
	}
	if category == "" {
		return nil, fmt.Errorf("item category cannot be empty")
	}
	if internalRef == "" {
		return nil, fmt.Errorf("item internal ref cannot be empty")
	}

	return &Item{
		ID:          id,
		Name:        name,
		Category:    category,
		InternalRef: internalRef,
	}, nil
}

// Validate checks the invariants that must hold for an item inside a snapshot
func (i Item) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("item id cannot be empty")
	}
	if i.Name == "" {
		return fmt.Errorf("item %s: name cannot be empty", i.ID)
	}
	if i.Category == "" {
		return fmt.Errorf("item %s: category cannot be empty", i.ID)
	}
	if i.LowStockThreshold < 0 {
		return fmt.Errorf("item %s: low stock threshold cannot be negative, got %d", i.ID, i.LowStockThreshold)
	}
	if i.DefaultUnitPrice.IsNegative() {
		return fmt.Errorf("item %s: default unit price cannot be negative, got %s", i.ID, i.DefaultUnitPrice)
	}
	return nil
}
