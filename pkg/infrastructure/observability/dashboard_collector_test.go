package observability

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"

	"github.com/parcops/stocktrack/pkg/application/dto"
	"github.com/parcops/stocktrack/pkg/domain/entities"
)

func TestDashboardCollector_ExportsReportFigures(t *testing.T) {
	collector := NewDashboardCollector(func() dto.MetricsReport {
		return dto.MetricsReport{
			StockByCategory: map[string]int{"Laptop": 7, "Monitor": 3},
			LowStock: []dto.LowStockEntry{
				{Item: entities.Item{ID: "item-1"}, Count: 2},
			},
			StockValue:        decimal.NewFromInt(12500),
			WarrantyAlerts:    []entities.Serial{{ID: "sn-1"}, {ID: "sn-2"}},
			PendingDeliveries: []entities.Order{{ID: "order-1"}},
		}
	})

	expected := `
# HELP stocktrack_low_stock_items Number of items at or below their low stock threshold.
# TYPE stocktrack_low_stock_items gauge
stocktrack_low_stock_items 1
# HELP stocktrack_pending_deliveries Number of orders sent to a supplier and awaiting delivery.
# TYPE stocktrack_pending_deliveries gauge
stocktrack_pending_deliveries 1
# HELP stocktrack_stock_by_category Number of in-stock serials per item category.
# TYPE stocktrack_stock_by_category gauge
stocktrack_stock_by_category{category="Laptop"} 7
stocktrack_stock_by_category{category="Monitor"} 3
# HELP stocktrack_stock_value Total purchase value of all tracked serials.
# TYPE stocktrack_stock_value gauge
stocktrack_stock_value 12500
# HELP stocktrack_warranty_alerts Number of serials within the warranty alert window.
# TYPE stocktrack_warranty_alerts gauge
stocktrack_warranty_alerts 2
`
	if err := testutil.CollectAndCompare(collector, strings.NewReader(expected)); err != nil {
		t.Errorf("Unexpected metrics output: %v", err)
	}
}

func TestDashboardCollector_RecomputesPerScrape(t *testing.T) {
	calls := 0
	collector := NewDashboardCollector(func() dto.MetricsReport {
		calls++
		return dto.MetricsReport{StockByCategory: map[string]int{}}
	})

	for i := 0; i < 3; i++ {
		if got := testutil.CollectAndCount(collector); got == 0 {
			t.Fatalf("Scrape %d: expected metrics, got none", i)
		}
	}
	if calls != 3 {
		t.Errorf("Expected the source called once per scrape, got %d calls", calls)
	}
}
