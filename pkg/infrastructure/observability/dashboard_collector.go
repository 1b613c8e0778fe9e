// Package observability exposes dashboard metrics as Prometheus gauges. The
// collector recomputes the report on every scrape so the exported values
// always reflect the current snapshot.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/parcops/stocktrack/pkg/application/dto"
)

// ReportSource produces the current metrics report for a scrape.
type ReportSource func() dto.MetricsReport

var _ prometheus.Collector = (*DashboardCollector)(nil)

// DashboardCollector exports the derived dashboard figures.
type DashboardCollector struct {
	source ReportSource

	stockByCategory   *prometheus.Desc
	lowStockItems     *prometheus.Desc
	stockValue        *prometheus.Desc
	warrantyAlerts    *prometheus.Desc
	pendingDeliveries *prometheus.Desc
}

// NewDashboardCollector creates a collector fed by source.
func NewDashboardCollector(source ReportSource) *DashboardCollector {
	return &DashboardCollector{
		source: source,
		stockByCategory: prometheus.NewDesc(
			"stocktrack_stock_by_category",
			"Number of in-stock serials per item category.",
			[]string{"category"}, nil,
		),
		lowStockItems: prometheus.NewDesc(
			"stocktrack_low_stock_items",
			"Number of items at or below their low stock threshold.",
			nil, nil,
		),
		stockValue: prometheus.NewDesc(
			"stocktrack_stock_value",
			"Total purchase value of all tracked serials.",
			nil, nil,
		),
		warrantyAlerts: prometheus.NewDesc(
			"stocktrack_warranty_alerts",
			"Number of serials within the warranty alert window.",
			nil, nil,
		),
		pendingDeliveries: prometheus.NewDesc(
			"stocktrack_pending_deliveries",
			"Number of orders sent to a supplier and awaiting delivery.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *DashboardCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.stockByCategory
	ch <- c.lowStockItems
	ch <- c.stockValue
	ch <- c.warrantyAlerts
	ch <- c.pendingDeliveries
}

// Collect implements prometheus.Collector.
func (c *DashboardCollector) Collect(ch chan<- prometheus.Metric) {
	report := c.source()

	for category, count := range report.StockByCategory {
		ch <- prometheus.MustNewConstMetric(
			c.stockByCategory, prometheus.GaugeValue, float64(count), category)
	}
	ch <- prometheus.MustNewConstMetric(
		c.lowStockItems, prometheus.GaugeValue, float64(len(report.LowStock)))
	ch <- prometheus.MustNewConstMetric(
		c.stockValue, prometheus.GaugeValue, report.StockValue.InexactFloat64())
	ch <- prometheus.MustNewConstMetric(
		c.warrantyAlerts, prometheus.GaugeValue, float64(len(report.WarrantyAlerts)))
	ch <- prometheus.MustNewConstMetric(
		c.pendingDeliveries, prometheus.GaugeValue, float64(len(report.PendingDeliveries)))
}
