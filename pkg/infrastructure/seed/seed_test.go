package seed

import (
	"reflect"
	"testing"
	"time"

	"github.com/parcops/stocktrack/pkg/domain/entities"
	"github.com/parcops/stocktrack/pkg/domain/services"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestSnapshot_PassesValidation(t *testing.T) {
	snap := Snapshot(testNow)

	result := services.NewSnapshotValidator().Validate(snap)
	if !result.Valid() {
		t.Errorf("Expected a valid seed snapshot, got dangling=%v invalid=%v multiple=%v errors=%v",
			result.DanglingRefs, result.InvalidEntities, result.MultipleActive, result.Errors)
	}
}

func TestSnapshot_IsDeterministic(t *testing.T) {
	first := Snapshot(testNow)
	second := Snapshot(testNow)

	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical snapshots for the same clock")
	}
}

func TestSnapshot_CoversEveryOrderStatus(t *testing.T) {
	snap := Snapshot(testNow)

	seen := make(map[entities.OrderStatus]bool)
	for _, order := range snap.Orders {
		seen[order.Status] = true
	}
	for _, status := range []entities.OrderStatus{
		entities.OrderRequested,
		entities.OrderInternalApproval,
		entities.OrderSentToSupplier,
		entities.OrderDelivered,
	} {
		if !seen[status] {
			t.Errorf("Expected an order in status %s", status)
		}
	}
}

func TestSnapshot_AssignedSerialsHaveOpenAssignments(t *testing.T) {
	snap := Snapshot(testNow)

	open := make(map[entities.SerialID]bool)
	for _, assignment := range snap.Assignments {
		if assignment.Active() {
			open[assignment.SerialID] = true
		}
	}

	assigned := 0
	for _, serial := range snap.Serials {
		if serial.Status != entities.Assigned {
			continue
		}
		assigned++
		if !open[serial.ID] {
			t.Errorf("Serial %s is Assigned without an open assignment", serial.ID)
		}
	}
	if assigned == 0 {
		t.Error("Expected some assigned serials in the demo data")
	}
}

func TestSnapshot_PartialDeliveryPresent(t *testing.T) {
	snap := Snapshot(testNow)

	found := false
	for _, order := range snap.Orders {
		if order.Status != entities.OrderSentToSupplier {
			continue
		}
		if order.QuantityReceived() > 0 && order.QuantityReceived() < order.QuantityOrdered() {
			found = true
		}
	}
	if !found {
		t.Error("Expected a partially delivered order awaiting the rest")
	}
}
