package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/parcops/stocktrack/pkg/application/dto"
	"github.com/parcops/stocktrack/pkg/application/services/views"
)

// Config holds configuration for output generation
type Config struct {
	Format  string
	Verbose bool
}

// GenerateDashboard renders the dashboard in the configured format
func GenerateDashboard(w io.Writer, dashboard dto.Dashboard, config Config) error {
	switch config.Format {
	case "text":
		return renderDashboardText(w, dashboard)
	case "json":
		return renderJSON(w, dashboard)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

func renderDashboardText(w io.Writer, dashboard dto.Dashboard) error {
	fmt.Fprintf(w, "📊 Dashboard\n")
	fmt.Fprintf(w, "============\n")
	fmt.Fprintf(w, "Generated at: %s\n\n", dashboard.GeneratedAt.Format("2006-01-02 15:04"))

	for _, widget := range dashboard.Widgets {
		if err := renderWidgetText(w, widget); err != nil {
			return err
		}
	}
	return nil
}

func renderWidgetText(w io.Writer, widget dto.Widget) error {
	switch data := widget.Data.(type) {
	case map[string]int:
		fmt.Fprintf(w, "📦 %s:\n", widget.Title)
		for _, key := range sortedKeys(data) {
			fmt.Fprintf(w, "  %-20s %d\n", key, data[key])
		}

	case dto.PendingDeliveriesData:
		fmt.Fprintf(w, "🚚 %s: %d\n", widget.Title, data.Count)
		for _, ref := range data.Orders {
			fmt.Fprintf(w, "  %s\n", ref)
		}

	case []dto.WarrantyAlertData:
		fmt.Fprintf(w, "⏳ %s:\n", widget.Title)
		if len(data) > 0 {
			fmt.Fprintf(w, "  %-15s %-25s %-12s %-10s\n",
				"Serial", "Item", "Expires", "Days Left")
			for _, row := range data {
				fmt.Fprintf(w, "  %-15s %-25s %-12s %-10d\n",
					row.SerialNumber, row.ItemName,
					row.WarrantyEnd.Format("2006-01-02"), row.DaysLeft)
			}
		}

	case []dto.AssignmentTimelineData:
		fmt.Fprintf(w, "👥 %s:\n", widget.Title)
		if len(data) > 0 {
			fmt.Fprintf(w, "  %-15s %-25s %-12s\n", "Serial", "Assignee", "Start Date")
			for _, row := range data {
				fmt.Fprintf(w, "  %-15s %-25s %-12s\n",
					row.SerialNumber, row.Assignee, row.StartDate.Format("2006-01-02"))
			}
		}

	case dto.StockValueData:
		fmt.Fprintf(w, "💰 %s: %s\n", widget.Title, data.Amount.StringFixed(2))

	case []dto.AlertData:
		fmt.Fprintf(w, "⚠️  %s:\n", widget.Title)
		for _, row := range data {
			fmt.Fprintf(w, "  [%-7s] %s\n", row.Severity, row.Message)
		}

	default:
		return fmt.Errorf("unsupported widget payload for %s", widget.Key)
	}
	fmt.Fprintln(w)
	return nil
}

// GenerateItems renders the item list in the configured format
func GenerateItems(w io.Writer, rows []views.ItemRow, config Config) error {
	switch config.Format {
	case "text":
		fmt.Fprintf(w, "📦 Items: %d\n", len(rows))
		if len(rows) > 0 {
			fmt.Fprintf(w, "%-10s %-30s %-12s %-20s %-8s %-8s\n",
				"Ref", "Name", "Category", "Supplier", "Stock", "Assigned")
			for _, row := range rows {
				fmt.Fprintf(w, "%-10s %-30s %-12s %-20s %-8d %-8d\n",
					row.Item.InternalRef, row.Item.Name, row.Item.Category,
					row.SupplierName, row.InStock, row.AssignedCount)
			}
		}
		return nil
	case "json":
		return renderJSON(w, rows)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// GenerateOrders renders the order list in the configured format
func GenerateOrders(w io.Writer, rows []views.OrderRow, config Config) error {
	switch config.Format {
	case "text":
		fmt.Fprintf(w, "🧾 Orders: %d\n", len(rows))
		if len(rows) > 0 {
			fmt.Fprintf(w, "%-15s %-20s %-18s %-12s %-10s %-10s\n",
				"Ref", "Supplier", "Status", "Total", "Ordered", "Received")
			for _, row := range rows {
				fmt.Fprintf(w, "%-15s %-20s %-18s %-12s %-10d %-10d\n",
					row.Order.InternalRef, row.SupplierName, row.Order.Status.String(),
					row.Total.StringFixed(2), row.Ordered, row.Received)
			}
		}
		return nil
	case "json":
		return renderJSON(w, rows)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// GenerateAssignments renders the assignment list in the configured format
func GenerateAssignments(w io.Writer, rows []views.AssignmentRow, config Config) error {
	switch config.Format {
	case "text":
		fmt.Fprintf(w, "👥 Assignments: %d\n", len(rows))
		if len(rows) > 0 {
			fmt.Fprintf(w, "%-15s %-25s %-25s %-15s %-12s %-8s\n",
				"Serial", "Item", "Assignee", "Department", "Start Date", "Active")
			for _, row := range rows {
				fmt.Fprintf(w, "%-15s %-25s %-25s %-15s %-12s %-8t\n",
					row.SerialNumber, row.ItemName, row.AssigneeName, row.Department,
					row.Assignment.StartDate.Format("2006-01-02"), row.Assignment.Active())
			}
		}
		return nil
	case "json":
		return renderJSON(w, rows)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// GenerateReport renders a keyed aggregate report in the configured format
func GenerateReport(w io.Writer, report views.Report, config Config) error {
	switch config.Format {
	case "text":
		fmt.Fprintf(w, "📈 %s:\n", report.Title)
		for _, row := range report.Rows {
			fmt.Fprintf(w, "  %-30s %d\n", row.Key, row.Value)
		}
		fmt.Fprintln(w)
		return nil
	case "json":
		return renderJSON(w, report)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

func renderJSON(w io.Writer, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
