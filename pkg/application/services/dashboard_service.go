// Package services contains the application-level orchestration between the
// entity store, the derivation engines and the preference repository.
package services

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/parcops/stocktrack/pkg/application/dto"
	"github.com/parcops/stocktrack/pkg/application/services/metrics"
	"github.com/parcops/stocktrack/pkg/domain/entities"
	"github.com/parcops/stocktrack/pkg/domain/repositories"
)

// widgetPrefKey is the preference key holding the selected widget list.
const widgetPrefKey = "dashboard-widgets"

// defaultWidgets is the widget set shown before any preference is saved.
var defaultWidgets = []string{
	dto.WidgetStockByCategory,
	dto.WidgetPendingDeliveries,
	dto.WidgetWarranties,
	dto.WidgetAssignments,
	dto.WidgetStockValue,
	dto.WidgetAlerts,
}

// Clock supplies the evaluation instant for time-dependent derivations.
type Clock func() time.Time

// DashboardService builds the widget dashboard from the current snapshot and
// the persisted widget selection.
type DashboardService struct {
	store   repositories.EntityStore
	prefs   repositories.PreferenceRepository
	metrics *metrics.Service
	clock   Clock
	logger  *zap.Logger
}

// NewDashboardService wires the dashboard service. A nil clock defaults to
// the wall clock in UTC; a nil logger defaults to a no-op logger.
func NewDashboardService(
	store repositories.EntityStore,
	prefs repositories.PreferenceRepository,
	clock Clock,
	logger *zap.Logger,
) *DashboardService {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		store:   store,
		prefs:   prefs,
		metrics: metrics.NewService(),
		clock:   clock,
		logger:  logger,
	}
}

// Report computes the metrics report for the current snapshot.
func (s *DashboardService) Report() dto.MetricsReport {
	return s.metrics.Compute(s.store.Snapshot(), s.clock())
}

// SelectedWidgets returns the persisted widget selection, falling back to the
// default set when no preference exists or the stored payload is unreadable.
func (s *DashboardService) SelectedWidgets() []string {
	var keys []string
	err := s.prefs.Load(widgetPrefKey, &keys)
	switch {
	case err == nil:
		return keys
	case errors.Is(err, repositories.ErrPreferenceNotFound):
		return append([]string(nil), defaultWidgets...)
	default:
		s.logger.Warn("falling back to default widgets", zap.Error(err))
		return append([]string(nil), defaultWidgets...)
	}
}

// AddWidget appends a widget key to the selection and persists it. Adding a
// key already present is a no-op.
func (s *DashboardService) AddWidget(key string) error {
	if !knownWidget(key) {
		return fmt.Errorf("add widget: unknown key %q", key)
	}
	keys := s.SelectedWidgets()
	for _, existing := range keys {
		if existing == key {
			return nil
		}
	}
	keys = append(keys, key)
	if err := s.prefs.Save(widgetPrefKey, keys); err != nil {
		return fmt.Errorf("add widget %s: %w", key, err)
	}
	return nil
}

// SetWidgets replaces the whole widget selection in one save. Every key is
// validated before anything is persisted, so an invalid key leaves the
// stored selection untouched.
func (s *DashboardService) SetWidgets(keys []string) error {
	for _, key := range keys {
		if !knownWidget(key) {
			return fmt.Errorf("set widgets: unknown key %q", key)
		}
	}
	if err := s.prefs.Save(widgetPrefKey, keys); err != nil {
		return fmt.Errorf("set widgets: %w", err)
	}
	return nil
}

// RemoveWidget removes a widget key from the selection and persists it.
func (s *DashboardService) RemoveWidget(key string) error {
	keys := s.SelectedWidgets()
	kept := keys[:0]
	for _, existing := range keys {
		if existing != key {
			kept = append(kept, existing)
		}
	}
	if err := s.prefs.Save(widgetPrefKey, kept); err != nil {
		return fmt.Errorf("remove widget %s: %w", key, err)
	}
	return nil
}

// BuildDashboard computes the report once and renders the selected widgets
// in their persisted order. Unknown keys in a stored selection are skipped.
func (s *DashboardService) BuildDashboard() dto.Dashboard {
	now := s.clock()
	snap := s.store.Snapshot()
	report := s.metrics.Compute(snap, now)
	lookup := entities.NewLookup(snap)

	dashboard := dto.Dashboard{GeneratedAt: now}
	for _, key := range s.SelectedWidgets() {
		widget, ok := s.buildWidget(key, snap, report, lookup, now)
		if !ok {
			s.logger.Warn("skipping unknown widget key", zap.String("key", key))
			continue
		}
		dashboard.Widgets = append(dashboard.Widgets, widget)
	}
	return dashboard
}

func (s *DashboardService) buildWidget(
	key string,
	snap entities.Snapshot,
	report dto.MetricsReport,
	lookup *entities.Lookup,
	now time.Time,
) (dto.Widget, bool) {
	switch key {
	case dto.WidgetStockByCategory:
		return dto.Widget{Key: key, Title: "Stock by category", Data: report.StockByCategory}, true

	case dto.WidgetPendingDeliveries:
		data := dto.PendingDeliveriesData{Count: len(report.PendingDeliveries)}
		for _, order := range report.PendingDeliveries {
			data.Orders = append(data.Orders, order.InternalRef)
		}
		return dto.Widget{Key: key, Title: "Pending deliveries", Data: data}, true

	case dto.WidgetWarranties:
		var rows []dto.WarrantyAlertData
		for _, serial := range report.WarrantyAlerts {
			days, _ := metrics.DaysLeft(serial, now)
			row := dto.WarrantyAlertData{
				SerialNumber: serial.SerialNumber,
				WarrantyEnd:  *serial.WarrantyEnd,
				DaysLeft:     days,
			}
			if item, ok := lookup.Item(serial.ItemID); ok {
				row.ItemName = item.Name
			}
			rows = append(rows, row)
		}
		return dto.Widget{Key: key, Title: "Warranty alerts", Data: rows}, true

	case dto.WidgetAssignments:
		var rows []dto.AssignmentTimelineData
		for _, assignment := range report.RecentAssignments {
			row := dto.AssignmentTimelineData{StartDate: assignment.StartDate}
			if user, ok := lookup.User(assignment.AssigneeUserID); ok {
				row.Assignee = user.DisplayName
			}
			if serial, ok := lookup.Serial(assignment.SerialID); ok {
				row.SerialNumber = serial.SerialNumber
			}
			rows = append(rows, row)
		}
		return dto.Widget{Key: key, Title: "Recent assignments", Data: rows}, true

	case dto.WidgetStockValue:
		return dto.Widget{Key: key, Title: "Stock value", Data: dto.StockValueData{Amount: report.StockValue}}, true

	case dto.WidgetAlerts:
		return dto.Widget{Key: key, Title: "Alerts", Data: s.alertRows(snap, report, now)}, true
	}
	return dto.Widget{}, false
}

// alertRows merges derived alerts (low stock, expired warranties) with the
// snapshot's stored alerts.
func (s *DashboardService) alertRows(snap entities.Snapshot, report dto.MetricsReport, now time.Time) []dto.AlertData {
	var rows []dto.AlertData
	for _, entry := range report.LowStock {
		rows = append(rows, dto.AlertData{
			Type:     "low_stock",
			Message:  fmt.Sprintf("%s: %d left (threshold %d)", entry.Item.Name, entry.Count, entry.Item.LowStockThreshold),
			Severity: entities.SeverityWarning.String(),
		})
	}
	for _, serial := range report.WarrantyAlerts {
		if serial.WarrantyEnd.After(now) {
			continue
		}
		rows = append(rows, dto.AlertData{
			Type:     "warranty_expired",
			Message:  fmt.Sprintf("Warranty expired on serial %s", serial.SerialNumber),
			Severity: entities.SeverityDanger.String(),
		})
	}
	for _, alert := range snap.Alerts {
		rows = append(rows, dto.AlertData{
			Type:     alert.Type,
			Message:  alert.Message,
			Severity: alert.Severity.String(),
		})
	}
	return rows
}

func knownWidget(key string) bool {
	for _, known := range defaultWidgets {
		if known == key {
			return true
		}
	}
	return false
}
