package metrics

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/parcops/stocktrack/pkg/application/dto"
	"github.com/parcops/stocktrack/pkg/domain/entities"
)

// WarrantyWindowDays is the horizon for warranty alerts: a serial whose
// warranty ends within this many days of the evaluation instant is alerted.
// Already-expired warranties fall inside the window by construction.
const WarrantyWindowDays = 90

// RecentAssignmentLimit caps the recent-assignments ranking
const RecentAssignmentLimit = 10

// Service computes the dashboard metrics report. It holds no state; Compute
// is a pure function of the snapshot and the evaluation instant.
type Service struct{}

// NewService creates a new metrics service
func NewService() *Service {
	return &Service{}
}

// DaysLeft returns the number of whole days (rounded up) between now and the
// serial's warranty end. The second return is false when no warranty end is set.
func DaysLeft(serial entities.Serial, now time.Time) (int, bool) {
	if serial.WarrantyEnd == nil {
		return 0, false
	}
	days := math.Ceil(serial.WarrantyEnd.Sub(now).Hours() / 24)
	return int(days), true
}

// Compute derives every dashboard aggregate from one snapshot at one instant.
// It never fails: dangling foreign keys resolve to nothing and missing
// numeric fields count as zero.
func (s *Service) Compute(snap entities.Snapshot, now time.Time) dto.MetricsReport {
	lookup := entities.NewLookup(snap)

	report := dto.MetricsReport{
		StockByCategory:   make(map[string]int),
		LowStock:          make([]dto.LowStockEntry, 0),
		StockValue:        decimal.Zero,
		WarrantyAlerts:    make([]entities.Serial, 0),
		RecentAssignments: make([]entities.Assignment, 0, RecentAssignmentLimit),
		PendingDeliveries: make([]entities.Order, 0),
	}

	// Stock by category and low stock share the per-item in-stock count.
	// Serials are pre-grouped by item, so this pass is O(items + serials).
	for _, item := range snap.Items {
		count := 0
		for _, serial := range lookup.SerialsForItem(item.ID) {
			if serial.Status == entities.InStock {
				count++
			}
		}
		report.StockByCategory[item.Category] += count
		if count <= item.LowStockThreshold {
			report.LowStock = append(report.LowStock, dto.LowStockEntry{Item: item, Count: count})
		}
	}

	for _, serial := range snap.Serials {
		report.StockValue = report.StockValue.Add(serial.PurchasePrice)

		if days, ok := DaysLeft(serial, now); ok && days <= WarrantyWindowDays {
			report.WarrantyAlerts = append(report.WarrantyAlerts, serial)
		}
	}

	// Most recent first; equal start dates keep their snapshot order.
	recent := append([]entities.Assignment(nil), snap.Assignments...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].StartDate.After(recent[j].StartDate)
	})
	if len(recent) > RecentAssignmentLimit {
		recent = recent[:RecentAssignmentLimit]
	}
	report.RecentAssignments = append(report.RecentAssignments, recent...)

	for _, order := range snap.Orders {
		if order.Status == entities.OrderSentToSupplier {
			report.PendingDeliveries = append(report.PendingDeliveries, order)
		}
	}

	return report
}
