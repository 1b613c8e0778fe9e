package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	testCases := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{"requested to internal approval", OrderRequested, OrderInternalApproval, true},
		{"internal approval to sent", OrderInternalApproval, OrderSentToSupplier, true},
		{"sent to delivered", OrderSentToSupplier, OrderDelivered, true},
		{"requested cannot skip to sent", OrderRequested, OrderSentToSupplier, false},
		{"requested cannot skip to delivered", OrderRequested, OrderDelivered, false},
		{"no backwards transition", OrderSentToSupplier, OrderInternalApproval, false},
		{"delivered is terminal", OrderDelivered, OrderRequested, false},
		{"no self transition", OrderRequested, OrderRequested, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tc.from, tc.to, got, tc.allowed)
			}
		})
	}
}

func TestOrderStatus_ParseRoundTrip(t *testing.T) {
	for _, status := range []OrderStatus{OrderRequested, OrderInternalApproval, OrderSentToSupplier, OrderDelivered} {
		parsed, err := ParseOrderStatus(status.String())
		if err != nil {
			t.Fatalf("Failed to parse %q: %v", status.String(), err)
		}
		if parsed != status {
			t.Errorf("Round trip for %s gave %s", status, parsed)
		}
	}

	if _, err := ParseOrderStatus("Shipped"); err == nil {
		t.Error("Expected error for unknown status, got none")
	}
}

func TestOrder_Totals(t *testing.T) {
	order := Order{
		ID:          "order-1",
		SupplierID:  "s1",
		InternalRef: "CMD-001",
		Lines: []OrderLine{
			{ID: "l1", ItemID: "item-1", Quantity: 5, UnitPrice: decimal.NewFromInt(650), TaxRate: decimal.NewFromFloat(0.2)},
			{ID: "l2", ItemID: "item-2", Quantity: 3, UnitPrice: decimal.NewFromInt(220), TaxRate: decimal.NewFromFloat(0.2)},
		},
		Deliveries: []Delivery{
			{ID: "d1", DeliveryNoteRef: "BL-4587", QuantityReceived: 4},
		},
	}

	// 5*650*1.2 + 3*220*1.2 = 3900 + 792
	want := decimal.NewFromInt(4692)
	if !order.Total().Equal(want) {
		t.Errorf("Expected total %s, got %s", want, order.Total())
	}
	if order.QuantityOrdered() != 8 {
		t.Errorf("Expected 8 units ordered, got %d", order.QuantityOrdered())
	}
	// Partial delivery: received may lag ordered
	if order.QuantityReceived() != 4 {
		t.Errorf("Expected 4 units received, got %d", order.QuantityReceived())
	}
}

func TestOrder_Validate(t *testing.T) {
	valid := Order{
		ID:          "order-1",
		SupplierID:  "s1",
		InternalRef: "CMD-001",
		Lines: []OrderLine{
			{ID: "l1", ItemID: "item-1", Quantity: 1, UnitPrice: decimal.NewFromInt(100), TaxRate: decimal.NewFromFloat(0.2)},
		},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Expected valid order, got %v", err)
	}

	testCases := []struct {
		name   string
		mutate func(*Order)
	}{
		{"empty id", func(o *Order) { o.ID = "" }},
		{"empty supplier", func(o *Order) { o.SupplierID = "" }},
		{"empty internal ref", func(o *Order) { o.InternalRef = "" }},
		{"zero line quantity", func(o *Order) { o.Lines[0].Quantity = 0 }},
		{"negative line quantity", func(o *Order) { o.Lines[0].Quantity = -2 }},
		{"line without item", func(o *Order) { o.Lines[0].ItemID = "" }},
		{"negative unit price", func(o *Order) { o.Lines[0].UnitPrice = decimal.NewFromInt(-1) }},
		{"negative delivery quantity", func(o *Order) {
			o.Deliveries = []Delivery{{ID: "d1", QuantityReceived: -1}}
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			order := valid
			order.Lines = append([]OrderLine(nil), valid.Lines...)
			tc.mutate(&order)
			if err := order.Validate(); err == nil {
				t.Errorf("Expected error for %s, got none", tc.name)
			}
		})
	}
}
