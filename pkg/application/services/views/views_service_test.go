package views

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/parcops/stocktrack/pkg/domain/entities"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func viewSnapshot() entities.Snapshot {
	end := testNow.Add(-24 * time.Hour)
	return entities.Snapshot{
		Users: []entities.User{
			{ID: "u1", DisplayName: "Claire Martin", Department: "Engineering", Site: "Paris"},
			{ID: "u2", DisplayName: "Bruno Petit", Department: "Sales", Site: "Lyon"},
		},
		Suppliers: []entities.Supplier{
			{ID: "s1", Name: "TechDirect"},
		},
		Items: []entities.Item{
			{ID: "item-1", Name: "ThinkPad T14", Category: "Laptop", InternalRef: "LT-001", DefaultSupplierID: "s1", Site: "Paris", LowStockThreshold: 5},
			{ID: "item-2", Name: "Dell U2722", Category: "Screen", InternalRef: "SC-001", DefaultSupplierID: "missing", Site: "Lyon", LowStockThreshold: 2},
		},
		Serials: []entities.Serial{
			{ID: "sn-1", ItemID: "item-1", SerialNumber: "TP-100", Status: entities.InStock},
			{ID: "sn-2", ItemID: "item-1", SerialNumber: "TP-101", Status: entities.Assigned, CurrentAssigneeUserID: "u1"},
			{ID: "sn-3", ItemID: "item-2", SerialNumber: "DL-200", Status: entities.InStock},
		},
		Assignments: []entities.Assignment{
			{ID: "assign-1", SerialID: "sn-2", AssigneeUserID: "u1", StartDate: testNow.Add(-48 * time.Hour)},
			{ID: "assign-2", SerialID: "sn-3", AssigneeUserID: "u2", StartDate: testNow.Add(-72 * time.Hour), EndDate: &end},
		},
		Orders: []entities.Order{
			{
				ID: "order-1", SupplierID: "s1", InternalRef: "CMD-001", Status: entities.OrderSentToSupplier,
				Lines: []entities.OrderLine{
					{ID: "line-1", ItemID: "item-1", Quantity: 4, UnitPrice: decimal.NewFromInt(800), TaxRate: decimal.NewFromFloat(0.2)},
				},
				Deliveries: []entities.Delivery{
					{ID: "del-1", DeliveredAt: testNow.Add(-24 * time.Hour), QuantityReceived: 2},
				},
			},
			{ID: "order-2", SupplierID: "s1", InternalRef: "CMD-002", Status: entities.OrderDelivered},
		},
		Activity: []entities.ActivityEntry{
			{ID: "act-1", EntityKind: entities.EntityAssignment, EntityID: "assign-1", Action: "assign", At: testNow},
			{ID: "act-2", EntityKind: entities.EntitySerial, EntityID: "sn-1", Action: "delivery", At: testNow.Add(-time.Hour)},
			{ID: "act-3", EntityKind: entities.EntityItem, EntityID: "item-1", Action: "create", At: testNow.Add(-2 * time.Hour)},
			{ID: "act-4", EntityKind: entities.EntityItem, EntityID: "item-2", Action: "create", At: testNow.Add(-3 * time.Hour)},
		},
	}
}

func TestItems_Unfiltered(t *testing.T) {
	rows := NewService().Items(viewSnapshot(), ItemFilter{})
	if len(rows) != 2 {
		t.Fatalf("Expected 2 item rows, got %d", len(rows))
	}
	first := rows[0]
	if first.SupplierName != "TechDirect" {
		t.Errorf("Expected supplier TechDirect, got %s", first.SupplierName)
	}
	if first.InStock != 1 || first.AssignedCount != 1 {
		t.Errorf("Expected 1 in stock and 1 assigned, got %d and %d", first.InStock, first.AssignedCount)
	}
	if rows[1].SupplierName != "—" {
		t.Errorf("Expected placeholder for missing supplier, got %s", rows[1].SupplierName)
	}
}

func TestItems_Filters(t *testing.T) {
	svc := NewService()
	snap := viewSnapshot()

	testCases := []struct {
		name   string
		filter ItemFilter
		want   []entities.ItemID
	}{
		{"by category", ItemFilter{Category: "Screen"}, []entities.ItemID{"item-2"}},
		{"by site", ItemFilter{Site: "Paris"}, []entities.ItemID{"item-1"}},
		{"search on name is case insensitive", ItemFilter{Search: "thinkpad"}, []entities.ItemID{"item-1"}},
		{"search on internal ref", ItemFilter{Search: "sc-001"}, []entities.ItemID{"item-2"}},
		{"no match", ItemFilter{Search: "printer"}, nil},
		{"combined filters", ItemFilter{Category: "Laptop", Site: "Lyon"}, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rows := svc.Items(snap, tc.filter)
			if len(rows) != len(tc.want) {
				t.Fatalf("Expected %d rows, got %d", len(tc.want), len(rows))
			}
			for i, id := range tc.want {
				if rows[i].Item.ID != id {
					t.Errorf("Row %d: expected %s, got %s", i, id, rows[i].Item.ID)
				}
			}
		})
	}
}

func TestOrders_FiltersAndDerivedFields(t *testing.T) {
	svc := NewService()
	snap := viewSnapshot()

	rows := svc.Orders(snap, OrderFilter{})
	if len(rows) != 2 {
		t.Fatalf("Expected 2 order rows, got %d", len(rows))
	}
	first := rows[0]
	if !first.Total.Equal(decimal.NewFromInt(3840)) {
		t.Errorf("Expected total 3840, got %s", first.Total)
	}
	if first.Ordered != 4 || first.Received != 2 {
		t.Errorf("Expected 4 ordered and 2 received, got %d and %d", first.Ordered, first.Received)
	}

	status := entities.OrderDelivered
	rows = svc.Orders(snap, OrderFilter{Status: &status})
	if len(rows) != 1 || rows[0].Order.ID != "order-2" {
		t.Fatalf("Expected only order-2 delivered, got %d rows", len(rows))
	}

	rows = svc.Orders(snap, OrderFilter{Search: "senttosupplier"})
	if len(rows) != 1 || rows[0].Order.ID != "order-1" {
		t.Fatalf("Expected status label search to find order-1, got %d rows", len(rows))
	}

	rows = svc.Orders(snap, OrderFilter{SupplierID: "nobody"})
	if len(rows) != 0 {
		t.Errorf("Expected no rows for unknown supplier, got %d", len(rows))
	}
}

func TestAssignments_SortedNewestFirstWithJoins(t *testing.T) {
	rows := NewService().Assignments(viewSnapshot(), AssignmentFilter{})
	if len(rows) != 2 {
		t.Fatalf("Expected 2 assignment rows, got %d", len(rows))
	}
	if rows[0].Assignment.ID != "assign-1" {
		t.Errorf("Expected newest assignment first, got %s", rows[0].Assignment.ID)
	}
	if rows[0].AssigneeName != "Claire Martin" || rows[0].Department != "Engineering" {
		t.Errorf("Expected joined user fields, got %q / %q", rows[0].AssigneeName, rows[0].Department)
	}
	if rows[0].SerialNumber != "TP-101" || rows[0].ItemName != "ThinkPad T14" {
		t.Errorf("Expected joined serial fields, got %q / %q", rows[0].SerialNumber, rows[0].ItemName)
	}
}

func TestAssignments_Filters(t *testing.T) {
	svc := NewService()
	snap := viewSnapshot()

	testCases := []struct {
		name   string
		filter AssignmentFilter
		want   []entities.AssignmentID
	}{
		{"active only", AssignmentFilter{ActiveOnly: true}, []entities.AssignmentID{"assign-1"}},
		{"by department", AssignmentFilter{Department: "Sales"}, []entities.AssignmentID{"assign-2"}},
		{"by user", AssignmentFilter{UserID: "u2"}, []entities.AssignmentID{"assign-2"}},
		{"search on assignee name", AssignmentFilter{Search: "bruno"}, []entities.AssignmentID{"assign-2"}},
		{"search on serial number", AssignmentFilter{Search: "tp-101"}, []entities.AssignmentID{"assign-1"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rows := svc.Assignments(snap, tc.filter)
			if len(rows) != len(tc.want) {
				t.Fatalf("Expected %d rows, got %d", len(tc.want), len(rows))
			}
			for i, id := range tc.want {
				if rows[i].Assignment.ID != id {
					t.Errorf("Row %d: expected %s, got %s", i, id, rows[i].Assignment.ID)
				}
			}
		})
	}
}

func TestItemHistory_CollectsItemSerialAndAssignmentEvents(t *testing.T) {
	events := NewService().ItemHistory(viewSnapshot(), "item-1")
	if len(events) != 3 {
		t.Fatalf("Expected 3 events for item-1, got %d", len(events))
	}
	wantIDs := []entities.ActivityID{"act-1", "act-2", "act-3"}
	for i, want := range wantIDs {
		if events[i].ID != want {
			t.Errorf("Event %d: expected %s, got %s", i, want, events[i].ID)
		}
	}

	events = NewService().ItemHistory(viewSnapshot(), "item-2")
	if len(events) != 1 || events[0].ID != "act-4" {
		t.Fatalf("Expected only act-4 for item-2, got %d events", len(events))
	}
}

func TestStockBySite(t *testing.T) {
	report := NewService().StockBySite(viewSnapshot())
	want := []ReportRow{{Key: "Lyon", Value: 1}, {Key: "Paris", Value: 1}}
	if len(report.Rows) != len(want) {
		t.Fatalf("Expected %d rows, got %d", len(want), len(report.Rows))
	}
	for i, row := range want {
		if report.Rows[i] != row {
			t.Errorf("Row %d: expected %+v, got %+v", i, row, report.Rows[i])
		}
	}
}

func TestOrdersByStatus(t *testing.T) {
	report := NewService().OrdersByStatus(viewSnapshot())
	want := []ReportRow{{Key: "Delivered", Value: 1}, {Key: "SentToSupplier", Value: 1}}
	if len(report.Rows) != len(want) {
		t.Fatalf("Expected %d rows, got %d", len(want), len(report.Rows))
	}
	for i, row := range want {
		if report.Rows[i] != row {
			t.Errorf("Row %d: expected %+v, got %+v", i, row, report.Rows[i])
		}
	}
}

func TestActiveAssignmentsByDepartment(t *testing.T) {
	report := NewService().ActiveAssignmentsByDepartment(viewSnapshot())
	if len(report.Rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(report.Rows))
	}
	if report.Rows[0] != (ReportRow{Key: "Engineering", Value: 1}) {
		t.Errorf("Expected Engineering:1, got %+v", report.Rows[0])
	}
}
