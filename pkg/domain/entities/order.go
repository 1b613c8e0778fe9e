package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderID uniquely identifies a purchase order
type OrderID string

// OrderStatus represents the lifecycle state of a purchase order.
// The states form an ordered sequence; an order only ever moves forward.
type OrderStatus int

const (
	OrderRequested OrderStatus = iota
	OrderInternalApproval
	OrderSentToSupplier
	OrderDelivered
)

// String method for OrderStatus enum
func (s OrderStatus) String() string {
	switch s {
	case OrderRequested:
		return "Requested"
	case OrderInternalApproval:
		return "InternalApproval"
	case OrderSentToSupplier:
		return "SentToSupplier"
	case OrderDelivered:
		return "Delivered"
	default:
		return "Unknown"
	}
}

// ParseOrderStatus converts a string into an OrderStatus
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch s {
	case "Requested":
		return OrderRequested, nil
	case "InternalApproval":
		return OrderInternalApproval, nil
	case "SentToSupplier":
		return OrderSentToSupplier, nil
	case "Delivered":
		return OrderDelivered, nil
	default:
		return OrderRequested, fmt.Errorf("unknown order status: %q", s)
	}
}

// CanTransitionTo reports whether next is the legal successor of s.
// Each state has exactly one successor; Delivered is terminal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderRequested:
		return next == OrderInternalApproval
	case OrderInternalApproval:
		return next == OrderSentToSupplier
	case OrderSentToSupplier:
		return next == OrderDelivered
	default:
		return false
	}
}

// OrderLine represents one item position on a purchase order
type OrderLine struct {
	ID        string
	ItemID    ItemID
	Quantity  int64
	UnitPrice decimal.Decimal
	TaxRate   decimal.Decimal
}

// Total returns the line amount including tax
func (l OrderLine) Total() decimal.Decimal {
	gross := l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
	return gross.Mul(decimal.NewFromInt(1).Add(l.TaxRate))
}

// Delivery represents a partial delivery recorded against an order
type Delivery struct {
	ID               string
	DeliveryNoteRef  string
	DeliveredAt      time.Time
	QuantityReceived int64
	Files            []string
}

// OrderComment is a free-form note attached to an order
type OrderComment struct {
	ID        string
	Message   string
	CreatedAt time.Time
}

// Order represents a purchase order placed with a supplier
type Order struct {
	ID                 OrderID
	QuoteID            QuoteID
	SupplierID         SupplierID
	InternalRef        string
	Status             OrderStatus
	OrderedAt          *time.Time
	ExpectedDeliveryAt *time.Time
	Files              []string
	Lines              []OrderLine
	Deliveries         []Delivery
	Comments           []OrderComment
}

// Total returns the order amount including tax across all lines
func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.Total())
	}
	return total
}

// QuantityOrdered returns the sum of line quantities
func (o Order) QuantityOrdered() int64 {
	var qty int64
	for _, line := range o.Lines {
		qty += line.Quantity
	}
	return qty
}

// QuantityReceived returns the sum of delivered quantities. Partial delivery
// is legal, so this is independent of QuantityOrdered.
func (o Order) QuantityReceived() int64 {
	var qty int64
	for _, delivery := range o.Deliveries {
		qty += delivery.QuantityReceived
	}
	return qty
}

// Validate checks the invariants that must hold for an order record
func (o Order) Validate() error {
	if o.ID == "" {
		return fmt.Errorf("order id cannot be empty")
	}
	if o.SupplierID == "" {
		return fmt.Errorf("order %s: supplier id cannot be empty", o.ID)
	}
	if o.InternalRef == "" {
		return fmt.Errorf("order %s: internal ref cannot be empty", o.ID)
	}
	for _, line := range o.Lines {
		if line.ItemID == "" {
			return fmt.Errorf("order %s: line %s has no item id", o.ID, line.ID)
		}
		if line.Quantity <= 0 {
			return fmt.Errorf("order %s: line %s quantity must be positive, got %d", o.ID, line.ID, line.Quantity)
		}
		if line.UnitPrice.IsNegative() {
			return fmt.Errorf("order %s: line %s unit price cannot be negative, got %s", o.ID, line.ID, line.UnitPrice)
		}
		if line.TaxRate.IsNegative() {
			return fmt.Errorf("order %s: line %s tax rate cannot be negative, got %s", o.ID, line.ID, line.TaxRate)
		}
	}
	for _, delivery := range o.Deliveries {
		if delivery.QuantityReceived < 0 {
			return fmt.Errorf("order %s: delivery %s received quantity cannot be negative, got %d",
				o.ID, delivery.ID, delivery.QuantityReceived)
		}
	}
	return nil
}
