package services

import (
	"fmt"

	"github.com/parcops/stocktrack/pkg/domain/entities"
)

// SnapshotValidator provides referential-integrity validation for snapshots
type SnapshotValidator struct{}

// NewSnapshotValidator creates a new snapshot validator
func NewSnapshotValidator() *SnapshotValidator {
	return &SnapshotValidator{}
}

// ValidationResult contains the results of snapshot validation
type ValidationResult struct {
	DanglingRefs    []string
	InvalidEntities []string
	MultipleActive  []entities.SerialID
	Errors          []string
}

// Valid reports whether the snapshot passed every check
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Validate checks entity invariants, foreign-key resolution and the
// at-most-one-active-assignment-per-serial invariant across one snapshot.
func (v *SnapshotValidator) Validate(snap entities.Snapshot) *ValidationResult {
	result := &ValidationResult{
		DanglingRefs:    make([]string, 0),
		InvalidEntities: make([]string, 0),
		MultipleActive:  make([]entities.SerialID, 0),
		Errors:          make([]string, 0),
	}

	lookup := entities.NewLookup(snap)

	for _, item := range snap.Items {
		if err := item.Validate(); err != nil {
			result.InvalidEntities = append(result.InvalidEntities, err.Error())
		}
		if item.DefaultSupplierID != "" {
			if _, ok := lookup.Supplier(item.DefaultSupplierID); !ok {
				result.DanglingRefs = append(result.DanglingRefs,
					fmt.Sprintf("item %s: default supplier %s not found", item.ID, item.DefaultSupplierID))
			}
		}
	}

	users := make(map[entities.UserID]bool, len(snap.Users))
	for _, u := range snap.Users {
		users[u.ID] = true
	}

	for _, serial := range snap.Serials {
		if err := serial.Validate(); err != nil {
			result.InvalidEntities = append(result.InvalidEntities, err.Error())
		}
		if _, ok := lookup.Item(serial.ItemID); !ok {
			result.DanglingRefs = append(result.DanglingRefs,
				fmt.Sprintf("serial %s: item %s not found", serial.ID, serial.ItemID))
		}
		if serial.SupplierID != "" {
			if _, ok := lookup.Supplier(serial.SupplierID); !ok {
				result.DanglingRefs = append(result.DanglingRefs,
					fmt.Sprintf("serial %s: supplier %s not found", serial.ID, serial.SupplierID))
			}
		}
		if serial.CurrentAssigneeUserID != "" && !users[serial.CurrentAssigneeUserID] {
			result.DanglingRefs = append(result.DanglingRefs,
				fmt.Sprintf("serial %s: assignee %s not found", serial.ID, serial.CurrentAssigneeUserID))
		}
	}

	activePerSerial := make(map[entities.SerialID]int)
	for _, a := range snap.Assignments {
		if err := a.Validate(); err != nil {
			result.InvalidEntities = append(result.InvalidEntities, err.Error())
		}
		if _, ok := lookup.Serial(a.SerialID); !ok {
			result.DanglingRefs = append(result.DanglingRefs,
				fmt.Sprintf("assignment %s: serial %s not found", a.ID, a.SerialID))
		}
		if !users[a.AssigneeUserID] {
			result.DanglingRefs = append(result.DanglingRefs,
				fmt.Sprintf("assignment %s: assignee %s not found", a.ID, a.AssigneeUserID))
		}
		if a.Active() {
			activePerSerial[a.SerialID]++
		}
	}
	for serialID, count := range activePerSerial {
		if count > 1 {
			result.MultipleActive = append(result.MultipleActive, serialID)
			result.Errors = append(result.Errors,
				fmt.Sprintf("serial %s has %d active assignments", serialID, count))
		}
	}

	for _, order := range snap.Orders {
		if err := order.Validate(); err != nil {
			result.InvalidEntities = append(result.InvalidEntities, err.Error())
		}
		if _, ok := lookup.Supplier(order.SupplierID); !ok {
			result.DanglingRefs = append(result.DanglingRefs,
				fmt.Sprintf("order %s: supplier %s not found", order.ID, order.SupplierID))
		}
		if order.QuoteID != "" {
			if _, ok := lookup.Quote(order.QuoteID); !ok {
				result.DanglingRefs = append(result.DanglingRefs,
					fmt.Sprintf("order %s: quote %s not found", order.ID, order.QuoteID))
			}
		}
		for _, line := range order.Lines {
			if _, ok := lookup.Item(line.ItemID); !ok {
				result.DanglingRefs = append(result.DanglingRefs,
					fmt.Sprintf("order %s: line item %s not found", order.ID, line.ItemID))
			}
		}
	}

	for _, quote := range snap.Quotes {
		if _, ok := lookup.Supplier(quote.SupplierID); !ok {
			result.DanglingRefs = append(result.DanglingRefs,
				fmt.Sprintf("quote %s: supplier %s not found", quote.ID, quote.SupplierID))
		}
		if quote.RequestedByUserID != "" && !users[quote.RequestedByUserID] {
			result.DanglingRefs = append(result.DanglingRefs,
				fmt.Sprintf("quote %s: requester %s not found", quote.ID, quote.RequestedByUserID))
		}
	}

	for _, entry := range snap.Activity {
		if entry.ActorUserID != "" && !users[entry.ActorUserID] {
			result.DanglingRefs = append(result.DanglingRefs,
				fmt.Sprintf("activity %s: actor %s not found", entry.ID, entry.ActorUserID))
		}
	}

	result.Errors = append(result.Errors, result.InvalidEntities...)
	result.Errors = append(result.Errors, result.DanglingRefs...)

	return result
}
