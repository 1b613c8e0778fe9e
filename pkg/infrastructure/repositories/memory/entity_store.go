// Package memory provides in-memory repository implementations. The entity
// store keeps one snapshot value behind a mutex and replaces it wholesale on
// every commit, so readers never observe a half-applied command.
package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/parcops/stocktrack/pkg/domain/entities"
	"github.com/parcops/stocktrack/pkg/domain/repositories"
)

// Compile-time check that EntityStore implements the repository interface
var _ repositories.EntityStore = (*EntityStore)(nil)

// EntityStore is the in-memory repositories.EntityStore implementation.
type EntityStore struct {
	mu    sync.RWMutex
	snap  entities.Snapshot
	nowFn func() time.Time
	newID func() string
}

// NewEntityStore creates a store seeded with the given snapshot.
func NewEntityStore(snap entities.Snapshot) *EntityStore {
	return &EntityStore{
		snap:  snap,
		nowFn: func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// SetClock overrides the clock used for activity timestamps. Intended for
// deterministic runs and tests.
func (s *EntityStore) SetClock(nowFn func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nowFn = nowFn
}

// Snapshot returns the current committed snapshot.
func (s *EntityStore) Snapshot() entities.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// UpdateOrderStatus moves an order to the given status after validating the
// transition against the ordered state sequence.
func (s *EntityStore) UpdateOrderStatus(orderID entities.OrderID, status entities.OrderStatus, actor entities.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, order := range s.snap.Orders {
		if order.ID == orderID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("update order %s: %w", orderID, repositories.ErrNotFound)
	}

	order := cloneOrder(s.snap.Orders[idx])
	if !order.Status.CanTransitionTo(status) {
		return fmt.Errorf("update order %s: %s to %s: %w",
			orderID, order.Status, status, repositories.ErrInvalidTransition)
	}

	now := s.nowFn()
	previous := order.Status
	order.Status = status
	if status == entities.OrderSentToSupplier && order.OrderedAt == nil {
		order.OrderedAt = &now
	}

	next := s.snap
	next.Orders = cloneOrders(s.snap.Orders)
	next.Orders[idx] = order
	next.Activity = prependActivity(s.snap.Activity, entities.ActivityEntry{
		ID:          entities.ActivityID(s.newID()),
		EntityKind:  entities.EntityOrder,
		EntityID:    string(orderID),
		Action:      "status",
		ActorUserID: actor,
		At:          now,
		Payload:     map[string]any{"from": previous.String(), "to": status.String()},
	})
	s.snap = next
	return nil
}

// AppendAssignment prepends an assignment record without touching the serial.
func (s *EntityStore) AppendAssignment(assignment entities.Assignment) error {
	if err := assignment.Validate(); err != nil {
		return fmt.Errorf("append assignment: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snap
	next.Assignments = prependAssignment(s.snap.Assignments, assignment)
	s.snap = next
	return nil
}

// AppendActivity prepends an activity log entry.
func (s *EntityStore) AppendActivity(entry entities.ActivityEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snap
	next.Activity = prependActivity(s.snap.Activity, entry)
	s.snap = next
	return nil
}

// CreateOrder appends a new order in the Requested state.
func (s *EntityStore) CreateOrder(order entities.Order, actor entities.UserID) error {
	if err := order.Validate(); err != nil {
		return fmt.Errorf("create order: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lookup := entities.NewLookup(s.snap)
	if _, ok := lookup.Supplier(order.SupplierID); !ok {
		return fmt.Errorf("create order: supplier %s: %w", order.SupplierID, repositories.ErrNotFound)
	}
	for _, line := range order.Lines {
		if _, ok := lookup.Item(line.ItemID); !ok {
			return fmt.Errorf("create order: line item %s: %w", line.ItemID, repositories.ErrNotFound)
		}
	}

	order = cloneOrder(order)
	order.Status = entities.OrderRequested

	next := s.snap
	next.Orders = append(cloneOrders(s.snap.Orders), order)
	next.Activity = prependActivity(s.snap.Activity, entities.ActivityEntry{
		ID:          entities.ActivityID(s.newID()),
		EntityKind:  entities.EntityOrder,
		EntityID:    string(order.ID),
		Action:      "create",
		ActorUserID: actor,
		At:          s.nowFn(),
	})
	s.snap = next
	return nil
}

// AssignSerial records an assignment and flips the serial to Assigned as one
// commit. The serial must currently be in stock.
func (s *EntityStore) AssignSerial(cmd repositories.AssignSerialCommand) (entities.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	serialIdx := -1
	for i, serial := range s.snap.Serials {
		if serial.ID == cmd.SerialID {
			serialIdx = i
			break
		}
	}
	if serialIdx < 0 {
		return entities.Assignment{}, fmt.Errorf("assign serial %s: %w", cmd.SerialID, repositories.ErrNotFound)
	}
	serial := s.snap.Serials[serialIdx]
	if serial.Status != entities.InStock {
		return entities.Assignment{}, fmt.Errorf("assign serial %s: status %s: %w",
			cmd.SerialID, serial.Status, repositories.ErrSerialUnavailable)
	}
	if _, ok := entities.NewLookup(s.snap).User(cmd.AssigneeUserID); !ok {
		return entities.Assignment{}, fmt.Errorf("assign serial %s: user %s: %w",
			cmd.SerialID, cmd.AssigneeUserID, repositories.ErrNotFound)
	}

	assignment := entities.Assignment{
		ID:                 entities.AssignmentID(s.newID()),
		SerialID:           cmd.SerialID,
		AssigneeUserID:     cmd.AssigneeUserID,
		StartDate:          cmd.StartDate,
		ExpectedReturnDate: cmd.ExpectedReturnDate,
		Notes:              cmd.Notes,
	}

	serial.Status = entities.Assigned
	serial.CurrentAssigneeUserID = cmd.AssigneeUserID

	next := s.snap
	next.Serials = cloneSerials(s.snap.Serials)
	next.Serials[serialIdx] = serial
	next.Assignments = prependAssignment(s.snap.Assignments, assignment)
	next.Activity = prependActivity(s.snap.Activity, entities.ActivityEntry{
		ID:          entities.ActivityID(s.newID()),
		EntityKind:  entities.EntityAssignment,
		EntityID:    string(assignment.ID),
		Action:      "assign",
		ActorUserID: cmd.Actor,
		At:          s.nowFn(),
		Payload:     map[string]any{"serial": string(cmd.SerialID), "user": string(cmd.AssigneeUserID)},
	})
	s.snap = next
	return assignment, nil
}

// ReturnSerial closes an assignment and puts its serial back in stock.
// Closing an already-closed assignment returns the existing record unchanged.
func (s *EntityStore) ReturnSerial(assignmentID entities.AssignmentID, at time.Time, actor entities.UserID) (entities.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	assignIdx := -1
	for i, assignment := range s.snap.Assignments {
		if assignment.ID == assignmentID {
			assignIdx = i
			break
		}
	}
	if assignIdx < 0 {
		return entities.Assignment{}, fmt.Errorf("return assignment %s: %w", assignmentID, repositories.ErrNotFound)
	}

	assignment := s.snap.Assignments[assignIdx]
	if !assignment.Active() {
		return assignment, nil
	}
	assignment.EndDate = &at

	next := s.snap
	next.Assignments = cloneAssignments(s.snap.Assignments)
	next.Assignments[assignIdx] = assignment

	for i, serial := range s.snap.Serials {
		if serial.ID != assignment.SerialID {
			continue
		}
		serial.Status = entities.InStock
		serial.CurrentAssigneeUserID = ""
		next.Serials = cloneSerials(s.snap.Serials)
		next.Serials[i] = serial
		break
	}

	next.Activity = prependActivity(s.snap.Activity, entities.ActivityEntry{
		ID:          entities.ActivityID(s.newID()),
		EntityKind:  entities.EntityAssignment,
		EntityID:    string(assignmentID),
		Action:      "return",
		ActorUserID: actor,
		At:          s.nowFn(),
		Payload:     map[string]any{"serial": string(assignment.SerialID)},
	})
	s.snap = next
	return assignment, nil
}

const defaultWarrantyDays = 365

// RegisterDelivery records a partial delivery on an order and mints in-stock
// serials with warranty windows for the delivered units. When WarrantyDays is
// zero the default one-year window applies.
func (s *EntityStore) RegisterDelivery(cmd repositories.RegisterDeliveryCommand) error {
	if cmd.QuantityReceived <= 0 {
		return fmt.Errorf("register delivery on %s: quantity must be positive", cmd.OrderID)
	}
	if int64(len(cmd.SerialNumbers)) != cmd.QuantityReceived {
		return fmt.Errorf("register delivery on %s: %d serial numbers for quantity %d",
			cmd.OrderID, len(cmd.SerialNumbers), cmd.QuantityReceived)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	orderIdx := -1
	for i, order := range s.snap.Orders {
		if order.ID == cmd.OrderID {
			orderIdx = i
			break
		}
	}
	if orderIdx < 0 {
		return fmt.Errorf("register delivery: order %s: %w", cmd.OrderID, repositories.ErrNotFound)
	}
	if _, ok := entities.NewLookup(s.snap).Item(cmd.ItemID); !ok {
		return fmt.Errorf("register delivery: item %s: %w", cmd.ItemID, repositories.ErrNotFound)
	}

	warrantyDays := cmd.WarrantyDays
	if warrantyDays <= 0 {
		warrantyDays = defaultWarrantyDays
	}
	warrantyEnd := cmd.DeliveredAt.AddDate(0, 0, warrantyDays)

	order := cloneOrder(s.snap.Orders[orderIdx])
	order.Deliveries = append(order.Deliveries, entities.Delivery{
		ID:               s.newID(),
		DeliveryNoteRef:  cmd.DeliveryNoteRef,
		DeliveredAt:      cmd.DeliveredAt,
		QuantityReceived: cmd.QuantityReceived,
	})

	supplierID := order.SupplierID
	minted := make([]entities.Serial, 0, len(cmd.SerialNumbers))
	for _, number := range cmd.SerialNumbers {
		deliveredAt := cmd.DeliveredAt
		end := warrantyEnd
		minted = append(minted, entities.Serial{
			ID:            entities.SerialID(s.newID()),
			ItemID:        cmd.ItemID,
			SerialNumber:  number,
			DeliveryDate:  &deliveredAt,
			WarrantyStart: &deliveredAt,
			WarrantyEnd:   &end,
			SupplierID:    supplierID,
			PurchasePrice: cmd.PurchasePrice,
			Status:        entities.InStock,
		})
	}

	next := s.snap
	next.Orders = cloneOrders(s.snap.Orders)
	next.Orders[orderIdx] = order
	next.Serials = append(cloneSerials(s.snap.Serials), minted...)
	next.Activity = prependActivity(s.snap.Activity, entities.ActivityEntry{
		ID:          entities.ActivityID(s.newID()),
		EntityKind:  entities.EntityOrder,
		EntityID:    string(cmd.OrderID),
		Action:      "delivery",
		ActorUserID: cmd.Actor,
		At:          s.nowFn(),
		Payload:     map[string]any{"quantity": cmd.QuantityReceived, "item": string(cmd.ItemID)},
	})
	s.snap = next
	return nil
}

func cloneOrders(orders []entities.Order) []entities.Order {
	out := make([]entities.Order, len(orders))
	copy(out, orders)
	return out
}

// cloneOrder deep-copies the order's nested slices so a pending mutation
// never leaks into snapshots already handed to readers.
func cloneOrder(order entities.Order) entities.Order {
	order.Files = append([]string(nil), order.Files...)
	order.Lines = append([]entities.OrderLine(nil), order.Lines...)
	order.Deliveries = append([]entities.Delivery(nil), order.Deliveries...)
	order.Comments = append([]entities.OrderComment(nil), order.Comments...)
	return order
}

func cloneSerials(serials []entities.Serial) []entities.Serial {
	out := make([]entities.Serial, len(serials))
	copy(out, serials)
	return out
}

func cloneAssignments(assignments []entities.Assignment) []entities.Assignment {
	out := make([]entities.Assignment, len(assignments))
	copy(out, assignments)
	return out
}

func prependAssignment(existing []entities.Assignment, assignment entities.Assignment) []entities.Assignment {
	out := make([]entities.Assignment, 0, len(existing)+1)
	out = append(out, assignment)
	return append(out, existing...)
}

func prependActivity(existing []entities.ActivityEntry, entry entities.ActivityEntry) []entities.ActivityEntry {
	out := make([]entities.ActivityEntry, 0, len(existing)+1)
	out = append(out, entry)
	return append(out, existing...)
}
