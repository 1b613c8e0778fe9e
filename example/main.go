package main

import (
	"fmt"
	"time"

	"github.com/parcops/stocktrack/pkg/application/services/metrics"
	"github.com/parcops/stocktrack/pkg/domain/repositories"
	"github.com/parcops/stocktrack/pkg/infrastructure/repositories/memory"
	"github.com/parcops/stocktrack/pkg/infrastructure/seed"
)

func main() {
	now := time.Now().UTC()

	// Seed the store with the demo fleet
	store := memory.NewEntityStore(seed.Snapshot(now))
	snap := store.Snapshot()

	fmt.Println("🗃️  StockTrack demo")
	fmt.Printf("Seeded %d items, %d serials, %d orders\n\n",
		len(snap.Items), len(snap.Serials), len(snap.Orders))

	// Hand a laptop to an engineer
	fmt.Println("👤 Assigning a serial...")
	assignment, err := store.AssignSerial(repositories.AssignSerialCommand{
		SerialID:       snap.Serials[0].ID,
		AssigneeUserID: snap.Users[0].ID,
		StartDate:      now,
		Notes:          "replacement workstation",
		Actor:          snap.Users[0].ID,
	})
	if err != nil {
		fmt.Printf("❌ Assignment failed: %v\n", err)
		return
	}
	fmt.Printf("  Assignment %s created for %s\n\n", assignment.ID, assignment.AssigneeUserID)

	// Derive the dashboard figures
	report := metrics.NewService().Compute(store.Snapshot(), now)

	fmt.Println("📊 Metrics:")
	fmt.Printf("  Stock value: %s\n", report.StockValue.StringFixed(2))
	fmt.Printf("  Low stock items: %d\n", len(report.LowStock))
	fmt.Printf("  Warranty alerts: %d\n", len(report.WarrantyAlerts))
	fmt.Printf("  Pending deliveries: %d\n", len(report.PendingDeliveries))
	fmt.Println()

	fmt.Println("📦 Stock by category:")
	for category, count := range report.StockByCategory {
		fmt.Printf("  %-12s %d\n", category, count)
	}

	// Return the serial; a second return is a no-op
	if _, err := store.ReturnSerial(assignment.ID, now.Add(time.Hour), snap.Users[0].ID); err != nil {
		fmt.Printf("❌ Return failed: %v\n", err)
		return
	}
	fmt.Println("\n↩️  Serial returned to stock")
}
