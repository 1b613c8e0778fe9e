package commands

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/parcops/stocktrack/pkg/application/services"
	"github.com/parcops/stocktrack/pkg/infrastructure/repositories/memory"
	"github.com/parcops/stocktrack/pkg/infrastructure/seed"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestDashboardService() *services.DashboardService {
	store := memory.NewEntityStore(seed.Snapshot(testNow))
	return services.NewDashboardService(
		store, memory.NewPreferenceRepository(), func() time.Time { return testNow }, nil)
}

func TestMetricsHandler_ServesDashboardGauges(t *testing.T) {
	server := httptest.NewServer(metricsHandler(newTestDashboardService()))
	defer server.Close()

	resp, err := http.Get(server.URL + "/metrics")
	if err != nil {
		t.Fatalf("Scrape failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Reading scrape body failed: %v", err)
	}

	out := string(body)
	for _, want := range []string{
		"stocktrack_stock_value",
		"stocktrack_stock_by_category",
		"stocktrack_pending_deliveries",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected scrape output to contain %q", want)
		}
	}
}

func TestServeMetrics_BlocksUntilContextCancelled(t *testing.T) {
	cmd := NewDashboardCommand(Config{MetricsListen: "127.0.0.1:0"})
	cmd.logger = zap.NewNop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- cmd.serveMetrics(ctx, newTestDashboardService())
	}()

	// The server must keep running while the context is live
	select {
	case err := <-done:
		t.Fatalf("Expected the listener to stay up, returned early: %v", err)
	case <-time.After(100 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Expected a clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Expected the listener to stop after cancellation")
	}
}

func TestServeMetrics_BadAddress(t *testing.T) {
	cmd := NewDashboardCommand(Config{MetricsListen: "definitely-not-an-address"})
	cmd.logger = zap.NewNop()

	if err := cmd.serveMetrics(context.Background(), newTestDashboardService()); err == nil {
		t.Fatal("Expected an error for an unusable listen address")
	}
}

func TestApplyWidgetSelection_AtomicOnInvalidKey(t *testing.T) {
	prefs := memory.NewPreferenceRepository()
	if err := prefs.Save("dashboard-widgets", []string{"alerts", "stock_value"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	store := memory.NewEntityStore(seed.Snapshot(testNow))
	svc := services.NewDashboardService(store, prefs, func() time.Time { return testNow }, nil)

	cmd := NewDashboardCommand(Config{Widgets: "warranties,weather"})
	if err := cmd.applyWidgetSelection(svc); err == nil {
		t.Fatal("Expected an error for an unknown widget key")
	}

	keys := svc.SelectedWidgets()
	if len(keys) != 2 || keys[0] != "alerts" || keys[1] != "stock_value" {
		t.Errorf("Expected the persisted selection untouched after a rejected override, got %v", keys)
	}
}

func TestApplyWidgetSelection_ReplacesSelection(t *testing.T) {
	prefs := memory.NewPreferenceRepository()
	store := memory.NewEntityStore(seed.Snapshot(testNow))
	svc := services.NewDashboardService(store, prefs, func() time.Time { return testNow }, nil)

	cmd := NewDashboardCommand(Config{Widgets: "warranties, stock_value"})
	if err := cmd.applyWidgetSelection(svc); err != nil {
		t.Fatalf("applyWidgetSelection failed: %v", err)
	}

	keys := svc.SelectedWidgets()
	if len(keys) != 2 || keys[0] != "warranties" || keys[1] != "stock_value" {
		t.Errorf("Expected the override selection, got %v", keys)
	}
}
