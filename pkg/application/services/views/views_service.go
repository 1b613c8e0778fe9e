// Package views builds joined, filtered projections of a snapshot for
// list screens and reports. All builders are pure functions of their
// snapshot argument.
package views

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/parcops/stocktrack/pkg/domain/entities"
)

// Service builds read-only views over immutable snapshots.
type Service struct{}

// NewService creates a new view builder service.
func NewService() *Service {
	return &Service{}
}

// ItemFilter narrows the item list. Zero values match everything.
type ItemFilter struct {
	Search   string
	Category string
	Site     string
}

// ItemRow is an item joined with its supplier and stock counts.
type ItemRow struct {
	Item          entities.Item
	SupplierName  string
	InStock       int
	AssignedCount int
	Serials       []entities.Serial
}

// Items returns the filtered item list in snapshot order. Search matches
// the item name and internal reference, case-insensitively.
func (s *Service) Items(snap entities.Snapshot, filter ItemFilter) []ItemRow {
	lookup := entities.NewLookup(snap)
	search := strings.ToLower(filter.Search)

	var rows []ItemRow
	for _, item := range snap.Items {
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		if filter.Site != "" && item.Site != filter.Site {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(item.Name), search) &&
			!strings.Contains(strings.ToLower(item.InternalRef), search) {
			continue
		}

		row := ItemRow{Item: item, SupplierName: supplierName(lookup, item.DefaultSupplierID)}
		row.Serials = lookup.SerialsForItem(item.ID)
		for _, serial := range row.Serials {
			switch serial.Status {
			case entities.InStock:
				row.InStock++
			case entities.Assigned:
				row.AssignedCount++
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// OrderFilter narrows the order list. A nil Status matches every status.
type OrderFilter struct {
	Search     string
	Status     *entities.OrderStatus
	SupplierID entities.SupplierID
}

// OrderRow is an order joined with its supplier and derived quantities.
type OrderRow struct {
	Order        entities.Order
	SupplierName string
	Total        decimal.Decimal
	Ordered      int64
	Received     int64
}

// Orders returns the filtered order list in snapshot order. Search matches
// the internal reference and the status label, case-insensitively.
func (s *Service) Orders(snap entities.Snapshot, filter OrderFilter) []OrderRow {
	lookup := entities.NewLookup(snap)
	search := strings.ToLower(filter.Search)

	var rows []OrderRow
	for _, order := range snap.Orders {
		if filter.Status != nil && order.Status != *filter.Status {
			continue
		}
		if filter.SupplierID != "" && order.SupplierID != filter.SupplierID {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(order.InternalRef), search) &&
			!strings.Contains(strings.ToLower(order.Status.String()), search) {
			continue
		}

		rows = append(rows, OrderRow{
			Order:        order,
			SupplierName: supplierName(lookup, order.SupplierID),
			Total:        order.Total(),
			Ordered:      order.QuantityOrdered(),
			Received:     order.QuantityReceived(),
		})
	}
	return rows
}

// AssignmentFilter narrows the assignment list. Zero values match everything.
type AssignmentFilter struct {
	Search     string
	Department string
	ActiveOnly bool
	UserID     entities.UserID
}

// AssignmentRow is an assignment joined with its user, serial and item.
type AssignmentRow struct {
	Assignment   entities.Assignment
	AssigneeName string
	Department   string
	SerialNumber string
	ItemName     string
}

// Assignments returns the filtered assignment list sorted by start date,
// newest first. Search matches the assignee display name and the serial
// number, case-insensitively.
func (s *Service) Assignments(snap entities.Snapshot, filter AssignmentFilter) []AssignmentRow {
	lookup := entities.NewLookup(snap)
	search := strings.ToLower(filter.Search)

	var rows []AssignmentRow
	for _, assignment := range snap.Assignments {
		if filter.ActiveOnly && !assignment.Active() {
			continue
		}
		if filter.UserID != "" && assignment.AssigneeUserID != filter.UserID {
			continue
		}

		row := AssignmentRow{Assignment: assignment}
		if user, ok := lookup.User(assignment.AssigneeUserID); ok {
			row.AssigneeName = user.DisplayName
			row.Department = user.Department
		}
		if serial, ok := lookup.Serial(assignment.SerialID); ok {
			row.SerialNumber = serial.SerialNumber
			if item, ok := lookup.Item(serial.ItemID); ok {
				row.ItemName = item.Name
			}
		}

		if filter.Department != "" && row.Department != filter.Department {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(row.AssigneeName), search) &&
			!strings.Contains(strings.ToLower(row.SerialNumber), search) {
			continue
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Assignment.StartDate.After(rows[j].Assignment.StartDate)
	})
	return rows
}

// ItemHistory returns the activity entries touching an item, any of its
// serials or any assignment of those serials, newest first. Activity is
// stored newest first already, so the snapshot order is preserved.
func (s *Service) ItemHistory(snap entities.Snapshot, itemID entities.ItemID) []entities.ActivityEntry {
	lookup := entities.NewLookup(snap)

	serialIDs := make(map[string]bool)
	for _, serial := range lookup.SerialsForItem(itemID) {
		serialIDs[string(serial.ID)] = true
	}
	assignmentIDs := make(map[string]bool)
	for _, assignment := range snap.Assignments {
		if serialIDs[string(assignment.SerialID)] {
			assignmentIDs[string(assignment.ID)] = true
		}
	}

	var events []entities.ActivityEntry
	for _, entry := range snap.Activity {
		switch entry.EntityKind {
		case entities.EntityItem:
			if entry.EntityID == string(itemID) {
				events = append(events, entry)
			}
		case entities.EntitySerial:
			if serialIDs[entry.EntityID] {
				events = append(events, entry)
			}
		case entities.EntityAssignment:
			if assignmentIDs[entry.EntityID] {
				events = append(events, entry)
			}
		}
	}
	return events
}

// Report is a small keyed aggregate for the reporting screens.
type Report struct {
	Title string
	Rows  []ReportRow
}

// ReportRow is one key/count pair of a report.
type ReportRow struct {
	Key   string
	Value int
}

// StockBySite counts in-stock serials grouped by their item's site.
func (s *Service) StockBySite(snap entities.Snapshot) Report {
	lookup := entities.NewLookup(snap)
	counts := make(map[string]int)
	for _, serial := range snap.Serials {
		if serial.Status != entities.InStock {
			continue
		}
		item, ok := lookup.Item(serial.ItemID)
		if !ok {
			continue
		}
		counts[item.Site]++
	}
	return Report{Title: "Stock by site", Rows: sortedRows(counts)}
}

// OrdersByStatus counts orders grouped by status label.
func (s *Service) OrdersByStatus(snap entities.Snapshot) Report {
	counts := make(map[string]int)
	for _, order := range snap.Orders {
		counts[order.Status.String()]++
	}
	return Report{Title: "Orders by status", Rows: sortedRows(counts)}
}

// ActiveAssignmentsByDepartment counts open assignments grouped by the
// assignee's department.
func (s *Service) ActiveAssignmentsByDepartment(snap entities.Snapshot) Report {
	lookup := entities.NewLookup(snap)
	counts := make(map[string]int)
	for _, assignment := range snap.Assignments {
		if !assignment.Active() {
			continue
		}
		user, ok := lookup.User(assignment.AssigneeUserID)
		if !ok {
			continue
		}
		counts[user.Department]++
	}
	return Report{Title: "Active assignments by department", Rows: sortedRows(counts)}
}

func sortedRows(counts map[string]int) []ReportRow {
	rows := make([]ReportRow, 0, len(counts))
	for key, value := range counts {
		rows = append(rows, ReportRow{Key: key, Value: value})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	return rows
}

func supplierName(lookup *entities.Lookup, id entities.SupplierID) string {
	if supplier, ok := lookup.Supplier(id); ok {
		return supplier.Name
	}
	return "—"
}
