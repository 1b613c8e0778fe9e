package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/parcops/stocktrack/pkg/interfaces/cli/commands"
)

// envOr returns the STOCKTRACK_* environment value or the fallback.
func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	// Optional .env file; flags still win over environment values
	_ = godotenv.Load()

	var (
		view          = flag.String("view", envOr("STOCKTRACK_VIEW", "dashboard"), "View to render: dashboard, items, orders, assignments, reports")
		format        = flag.String("format", envOr("STOCKTRACK_FORMAT", "text"), "Output format: text, json")
		widgets       = flag.String("widgets", "", "Comma-separated widget keys to select")
		prefsPath     = flag.String("prefs", envOr("STOCKTRACK_PREFS", ""), "Path to the preference database (in-memory when empty)")
		now           = flag.String("now", "", "Evaluation instant as RFC 3339 (default: wall clock)")
		search        = flag.String("search", "", "Substring filter for the active view")
		category      = flag.String("category", "", "Item category filter")
		site          = flag.String("site", "", "Item site filter")
		status        = flag.String("status", "", "Order status filter")
		department    = flag.String("department", "", "Assignment department filter")
		activeOnly    = flag.Bool("active-only", false, "Only open assignments")
		verbose       = flag.Bool("verbose", false, "Enable verbose logging")
		metricsListen = flag.String("metrics-listen", envOr("STOCKTRACK_METRICS_LISTEN", ""), "Address for the Prometheus endpoint; keeps the process serving until interrupted (disabled when empty)")
		help          = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	config := commands.Config{
		View:          *view,
		Format:        *format,
		Widgets:       *widgets,
		PrefsPath:     *prefsPath,
		Now:           *now,
		Search:        *search,
		Category:      *category,
		Site:          *site,
		Status:        *status,
		Department:    *department,
		ActiveOnly:    *activeOnly,
		Verbose:       *verbose,
		MetricsListen: *metricsListen,
		Help:          *help,
	}

	cmd := commands.NewDashboardCommand(config)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
