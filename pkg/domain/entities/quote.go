package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteID uniquely identifies a supplier quote
type QuoteID string

// Quote represents a price quote requested from a supplier before ordering
type Quote struct {
	ID                QuoteID
	SupplierID        SupplierID
	Ref               string
	Amount            decimal.Decimal
	Currency          string
	Status            OrderStatus
	RequestedByUserID UserID
	CreatedAt         time.Time
	Files             []string
}
