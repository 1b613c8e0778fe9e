// Package seed builds a deterministic demo snapshot. Identifiers and dates
// are fixed relative to the given clock so two runs with the same clock
// produce the same data.
package seed

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/parcops/stocktrack/pkg/domain/entities"
)

var itemDefs = []struct {
	name     string
	category string
	price    int64
	site     string
}{
	{"ThinkPad T14 Gen 5", "Laptop", 1290, "Paris"},
	{"MacBook Pro 14", "Laptop", 2190, "Paris"},
	{"Dell Latitude 5450", "Laptop", 1090, "Lyon"},
	{"Dell UltraSharp U2723QE", "Monitor", 540, "Paris"},
	{"LG 27UP850", "Monitor", 420, "Lyon"},
	{"Samsung ViewFinity S9", "Monitor", 980, "Paris"},
	{"Lenovo Thunderbolt Dock", "Dock", 230, "Paris"},
	{"CalDigit TS4", "Dock", 390, "Lyon"},
	{"iPhone 15", "Smartphone", 870, "Paris"},
	{"Galaxy S24", "Smartphone", 790, "Lyon"},
}

// Snapshot returns the demo snapshot anchored at now.
func Snapshot(now time.Time) entities.Snapshot {
	snap := entities.Snapshot{
		Users: []entities.User{
			{ID: "user-claire", DisplayName: "Claire Martin", Email: "claire.martin@parcops.example", Department: "Engineering", Site: "Paris"},
			{ID: "user-bruno", DisplayName: "Bruno Petit", Email: "bruno.petit@parcops.example", Department: "Sales", Site: "Lyon"},
			{ID: "user-aline", DisplayName: "Aline Dubois", Email: "aline.dubois@parcops.example", Department: "Finance", Site: "Paris"},
			{ID: "user-karim", DisplayName: "Karim Haddad", Email: "karim.haddad@parcops.example", Department: "Engineering", Site: "Lyon"},
		},
		Suppliers: []entities.Supplier{
			{ID: "supplier-techdirect", Name: "TechDirect", Contact: "Sophie Renault", Email: "sales@techdirect.example", Phone: "+33 1 44 55 66 77"},
			{ID: "supplier-bureautic", Name: "Bureautic SARL", Contact: "Marc Lefevre", Email: "contact@bureautic.example", Phone: "+33 4 72 00 11 22"},
		},
	}

	suppliers := []entities.SupplierID{"supplier-techdirect", "supplier-bureautic"}
	users := []entities.UserID{"user-claire", "user-bruno", "user-aline", "user-karim"}

	for i, def := range itemDefs {
		item := entities.Item{
			ID:                entities.ItemID(fmt.Sprintf("item-%02d", i+1)),
			Name:              def.name,
			Category:          def.category,
			InternalRef:       fmt.Sprintf("REF-%03d", i+1),
			DefaultSupplierID: suppliers[i%len(suppliers)],
			DefaultUnitPrice:  decimal.NewFromInt(def.price),
			Site:              def.site,
			LowStockThreshold: 5,
		}
		snap.Items = append(snap.Items, item)

		serialCount := 5 + i%3
		for j := 0; j < serialCount; j++ {
			delivered := now.AddDate(0, -(i + j + 2), 0)
			warrantyEnd := delivered.AddDate(2, 0, 0)
			serial := entities.Serial{
				ID:            entities.SerialID(fmt.Sprintf("serial-%02d-%02d", i+1, j+1)),
				ItemID:        item.ID,
				SerialNumber:  fmt.Sprintf("SN-%03d-%02d", i+1, j+1),
				DeliveryDate:  &delivered,
				WarrantyStart: &delivered,
				WarrantyEnd:   &warrantyEnd,
				SupplierID:    item.DefaultSupplierID,
				PurchasePrice: item.DefaultUnitPrice,
				Status:        entities.InStock,
			}
			if j%3 == 2 {
				assignee := users[(i+j)%len(users)]
				serial.Status = entities.Assigned
				serial.CurrentAssigneeUserID = assignee
				snap.Assignments = append(snap.Assignments, entities.Assignment{
					ID:             entities.AssignmentID(fmt.Sprintf("assignment-%02d-%02d", i+1, j+1)),
					SerialID:       serial.ID,
					AssigneeUserID: assignee,
					StartDate:      now.AddDate(0, 0, -(i*7 + j)),
				})
			}
			snap.Serials = append(snap.Serials, serial)
		}
	}

	for i := 0; i < 5; i++ {
		created := now.AddDate(0, 0, -(10 + i*3))
		snap.Quotes = append(snap.Quotes, entities.Quote{
			ID:                entities.QuoteID(fmt.Sprintf("quote-%02d", i+1)),
			SupplierID:        suppliers[i%len(suppliers)],
			Ref:               fmt.Sprintf("DEV-2025-%03d", i+1),
			Amount:            decimal.NewFromInt(int64(2500 + i*800)),
			Currency:          "EUR",
			Status:            entities.OrderStatus(i % 4),
			RequestedByUserID: users[i%len(users)],
			CreatedAt:         created,
		})
	}

	statuses := []entities.OrderStatus{
		entities.OrderRequested,
		entities.OrderInternalApproval,
		entities.OrderSentToSupplier,
		entities.OrderDelivered,
	}
	for i, status := range statuses {
		orderedAt := now.AddDate(0, 0, -(14 - i*2))
		order := entities.Order{
			ID:          entities.OrderID(fmt.Sprintf("order-%02d", i+1)),
			QuoteID:     entities.QuoteID(fmt.Sprintf("quote-%02d", i+1)),
			SupplierID:  suppliers[i%len(suppliers)],
			InternalRef: fmt.Sprintf("CMD-2025-%03d", i+1),
			Status:      status,
			Lines: []entities.OrderLine{
				{
					ID:        fmt.Sprintf("line-%02d-1", i+1),
					ItemID:    snap.Items[i%len(snap.Items)].ID,
					Quantity:  int64(4 + i*2),
					UnitPrice: snap.Items[i%len(snap.Items)].DefaultUnitPrice,
					TaxRate:   decimal.NewFromFloat(0.2),
				},
			},
		}
		if status >= entities.OrderSentToSupplier {
			order.OrderedAt = &orderedAt
		}
		if status == entities.OrderSentToSupplier {
			// Partial delivery: half the ordered quantity received
			order.Deliveries = []entities.Delivery{{
				ID:               fmt.Sprintf("delivery-%02d-1", i+1),
				DeliveryNoteRef:  fmt.Sprintf("BL-2025-%03d", i+1),
				DeliveredAt:      now.AddDate(0, 0, -3),
				QuantityReceived: order.QuantityOrdered() / 2,
			}}
		}
		snap.Orders = append(snap.Orders, order)
	}

	snap.Activity = []entities.ActivityEntry{
		{
			ID:          "activity-01",
			EntityKind:  entities.EntityOrder,
			EntityID:    "order-03",
			Action:      "delivery",
			ActorUserID: "user-aline",
			At:          now.AddDate(0, 0, -3),
		},
		{
			ID:          "activity-02",
			EntityKind:  entities.EntityOrder,
			EntityID:    "order-04",
			Action:      "status",
			ActorUserID: "user-aline",
			At:          now.AddDate(0, 0, -5),
			Payload:     map[string]any{"from": "SentToSupplier", "to": "Delivered"},
		},
	}

	snap.Alerts = []entities.Alert{
		{ID: "alert-01", Type: "low_stock", Message: "Dock stock is running low at the Lyon site", Severity: entities.SeverityWarning},
		{ID: "alert-02", Type: "warranty", Message: "3 laptops reach end of warranty this quarter", Severity: entities.SeverityInfo},
	}

	return snap
}
