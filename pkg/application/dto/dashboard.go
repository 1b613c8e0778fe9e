package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Widget keys selectable on the dashboard
const (
	WidgetStockByCategory   = "stock_by_category"
	WidgetPendingDeliveries = "pending_deliveries"
	WidgetWarranties        = "warranties"
	WidgetAssignments       = "assignments"
	WidgetStockValue        = "stock_value"
	WidgetAlerts            = "alerts"
)

// Widget is one dashboard card. Data holds the widget-specific payload type
// defined below.
type Widget struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Data  any    `json:"data"`
}

// Dashboard is the rendered widget set for one evaluation instant
type Dashboard struct {
	GeneratedAt time.Time `json:"generated_at"`
	Widgets     []Widget  `json:"widgets"`
}

// PendingDeliveriesData summarizes orders awaiting delivery
type PendingDeliveriesData struct {
	Count  int      `json:"count"`
	Orders []string `json:"orders"`
}

// WarrantyAlertData is one serial approaching (or past) warranty expiry
type WarrantyAlertData struct {
	SerialNumber string    `json:"serial_number"`
	ItemName     string    `json:"item_name"`
	WarrantyEnd  time.Time `json:"warranty_end"`
	DaysLeft     int       `json:"days_left"`
}

// AssignmentTimelineData is one row of the recent-assignments timeline
type AssignmentTimelineData struct {
	SerialNumber string    `json:"serial_number"`
	Assignee     string    `json:"assignee"`
	StartDate    time.Time `json:"start_date"`
}

// StockValueData carries the total stock valuation
type StockValueData struct {
	Amount decimal.Decimal `json:"amount"`
}

// AlertData is one alert row of the alerts widget
type AlertData struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}
