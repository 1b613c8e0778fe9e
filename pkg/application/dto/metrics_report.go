package dto

import (
	"github.com/shopspring/decimal"

	"github.com/parcops/stocktrack/pkg/domain/entities"
)

// LowStockEntry pairs a catalog item with its current in-stock count
type LowStockEntry struct {
	Item  entities.Item
	Count int
}

// MetricsReport is the aggregate output of the metrics engine for one
// snapshot and one evaluation instant. Every field is computed independently.
type MetricsReport struct {
	// StockByCategory maps category name to the count of in-stock serials
	// whose parent item has that category.
	StockByCategory map[string]int
	// LowStock lists items whose in-stock count is at or below their
	// threshold, in snapshot item order.
	LowStock []LowStockEntry
	// StockValue is the sum of purchase prices over all serials; missing
	// prices count as zero.
	StockValue decimal.Decimal
	// WarrantyAlerts lists serials whose warranty ends within 90 days of the
	// evaluation instant, already-expired warranties included.
	WarrantyAlerts []entities.Serial
	// RecentAssignments holds the 10 most recent assignments by start date.
	RecentAssignments []entities.Assignment
	// PendingDeliveries lists orders sent to the supplier and not yet delivered.
	PendingDeliveries []entities.Order
}
