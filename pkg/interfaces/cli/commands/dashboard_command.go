package commands

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/parcops/stocktrack/pkg/application/services"
	"github.com/parcops/stocktrack/pkg/application/services/views"
	"github.com/parcops/stocktrack/pkg/domain/entities"
	"github.com/parcops/stocktrack/pkg/domain/repositories"
	"github.com/parcops/stocktrack/pkg/infrastructure/observability"
	"github.com/parcops/stocktrack/pkg/infrastructure/repositories/memory"
	"github.com/parcops/stocktrack/pkg/infrastructure/repositories/sqlite"
	"github.com/parcops/stocktrack/pkg/infrastructure/seed"
	"github.com/parcops/stocktrack/pkg/interfaces/cli/output"
)

// Config holds configuration for the dashboard command
type Config struct {
	View          string
	Format        string
	Widgets       string
	PrefsPath     string
	Now           string
	Search        string
	Category      string
	Site          string
	Status        string
	Department    string
	ActiveOnly    bool
	Verbose       bool
	MetricsListen string
	Help          bool
}

// DashboardCommand wires the store, services and renderers for one run
type DashboardCommand struct {
	config Config
	logger *zap.Logger
}

// NewDashboardCommand creates a new dashboard command with the given configuration
func NewDashboardCommand(config Config) *DashboardCommand {
	return &DashboardCommand{config: config}
}

// Execute runs the dashboard command
func (c *DashboardCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	logger, err := c.buildLogger()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	c.logger = logger

	now, err := c.resolveClock()
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	store := memory.NewEntityStore(seed.Snapshot(now))

	prefs, err := c.openPreferences()
	if err != nil {
		return fmt.Errorf("failed to open preferences: %w", err)
	}
	defer prefs.Close()

	dashboardSvc := services.NewDashboardService(store, prefs, func() time.Time { return now }, logger)

	if err := c.applyWidgetSelection(dashboardSvc); err != nil {
		return err
	}

	if err := c.render(store, dashboardSvc); err != nil {
		return err
	}

	// With a metrics listener configured the process stays up serving
	// scrapes until the context is cancelled.
	if c.config.MetricsListen != "" {
		return c.serveMetrics(ctx, dashboardSvc)
	}
	return nil
}

func (c *DashboardCommand) buildLogger() (*zap.Logger, error) {
	if c.config.Verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// resolveClock parses the -now override, defaulting to the wall clock in UTC.
func (c *DashboardCommand) resolveClock() (time.Time, error) {
	if c.config.Now == "" {
		return time.Now().UTC(), nil
	}
	now, err := time.Parse(time.RFC3339, c.config.Now)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid -now value %q (want RFC 3339): %w", c.config.Now, err)
	}
	return now.UTC(), nil
}

func (c *DashboardCommand) openPreferences() (repositories.PreferenceRepository, error) {
	if c.config.PrefsPath == "" {
		return memory.NewPreferenceRepository(), nil
	}
	return sqlite.NewPreferenceRepository(c.config.PrefsPath)
}

// applyWidgetSelection overrides the persisted widget set when -widgets is
// given. The whole selection replaces in one save, so an invalid key leaves
// the stored selection untouched.
func (c *DashboardCommand) applyWidgetSelection(svc *services.DashboardService) error {
	if c.config.Widgets == "" {
		return nil
	}
	var keys []string
	for _, key := range strings.Split(c.config.Widgets, ",") {
		keys = append(keys, strings.TrimSpace(key))
	}
	return svc.SetWidgets(keys)
}

// metricsHandler builds the HTTP handler exposing the dashboard gauges.
func metricsHandler(svc *services.DashboardService) http.Handler {
	registry := prometheus.NewRegistry()
	registry.MustRegister(observability.NewDashboardCollector(svc.Report))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	return mux
}

// serveMetrics blocks serving /metrics until ctx is cancelled or the server
// fails, then shuts the listener down gracefully.
func (c *DashboardCommand) serveMetrics(ctx context.Context, svc *services.DashboardService) error {
	listener, err := net.Listen("tcp", c.config.MetricsListen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", c.config.MetricsListen, err)
	}

	server := &http.Server{Handler: metricsHandler(svc)}
	c.logger.Info("serving metrics", zap.String("addr", listener.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("metrics listener stopped: %w", err)
	}
}

func (c *DashboardCommand) render(store repositories.EntityStore, svc *services.DashboardService) error {
	outputConfig := output.Config{Format: c.config.Format, Verbose: c.config.Verbose}
	viewSvc := views.NewService()
	snap := store.Snapshot()

	switch c.config.View {
	case "", "dashboard":
		return output.GenerateDashboard(os.Stdout, svc.BuildDashboard(), outputConfig)

	case "items":
		rows := viewSvc.Items(snap, views.ItemFilter{
			Search:   c.config.Search,
			Category: c.config.Category,
			Site:     c.config.Site,
		})
		return output.GenerateItems(os.Stdout, rows, outputConfig)

	case "orders":
		filter := views.OrderFilter{Search: c.config.Search}
		if c.config.Status != "" {
			status, err := entities.ParseOrderStatus(c.config.Status)
			if err != nil {
				return fmt.Errorf("validation error: %w", err)
			}
			filter.Status = &status
		}
		return output.GenerateOrders(os.Stdout, viewSvc.Orders(snap, filter), outputConfig)

	case "assignments":
		rows := viewSvc.Assignments(snap, views.AssignmentFilter{
			Search:     c.config.Search,
			Department: c.config.Department,
			ActiveOnly: c.config.ActiveOnly,
		})
		return output.GenerateAssignments(os.Stdout, rows, outputConfig)

	case "reports":
		for _, report := range []views.Report{
			viewSvc.StockBySite(snap),
			viewSvc.OrdersByStatus(snap),
			viewSvc.ActiveAssignmentsByDepartment(snap),
		} {
			if err := output.GenerateReport(os.Stdout, report, outputConfig); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown view: %s", c.config.View)
}

func (c *DashboardCommand) showHelp() {
	fmt.Println("stocktrack - inventory and procurement dashboard")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  stocktrack [flags]")
	fmt.Println()
	fmt.Println("Views:")
	fmt.Println("  -view dashboard    Widget dashboard (default)")
	fmt.Println("  -view items        Item catalog with stock counts")
	fmt.Println("  -view orders       Purchase orders with totals")
	fmt.Println("  -view assignments  Serial assignments, newest first")
	fmt.Println("  -view reports      Aggregate reports")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -format string     Output format: text, json (default \"text\")")
	fmt.Println("  -widgets string    Comma-separated widget keys to select")
	fmt.Println("  -prefs string      Path to the preference database")
	fmt.Println("  -now string        Evaluation instant as RFC 3339 (default: wall clock)")
	fmt.Println("  -search string     Substring filter for the active view")
	fmt.Println("  -category string   Item category filter")
	fmt.Println("  -site string       Item site filter")
	fmt.Println("  -status string     Order status filter")
	fmt.Println("  -department string Assignment department filter")
	fmt.Println("  -active-only       Only open assignments")
	fmt.Println("  -metrics-listen    Address for the Prometheus endpoint; keeps the")
	fmt.Println("                     process serving scrapes until interrupted")
	fmt.Println("  -verbose           Enable verbose logging")
}
