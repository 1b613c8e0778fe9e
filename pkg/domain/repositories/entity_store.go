package repositories

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/parcops/stocktrack/pkg/domain/entities"
)

var (
	// ErrNotFound is returned when a command targets an id that does not exist
	ErrNotFound = errors.New("entity not found")
	// ErrInvalidTransition is returned when an order status update skips the
	// ordered state sequence
	ErrInvalidTransition = errors.New("invalid order status transition")
	// ErrSerialUnavailable is returned when assigning a serial that is not in stock
	ErrSerialUnavailable = errors.New("serial is not available")
)

// AssignSerialCommand assigns an in-stock serial to a user. The store applies
// the assignment record and the serial status flip as one atomic commit.
type AssignSerialCommand struct {
	SerialID           entities.SerialID
	AssigneeUserID     entities.UserID
	StartDate          time.Time
	ExpectedReturnDate *time.Time
	Notes              string
	Actor              entities.UserID
}

// RegisterDeliveryCommand records a partial delivery on an order and mints
// in-stock serials for the delivered units.
type RegisterDeliveryCommand struct {
	OrderID          entities.OrderID
	DeliveryNoteRef  string
	DeliveredAt      time.Time
	QuantityReceived int64
	ItemID           entities.ItemID
	SerialNumbers    []string
	PurchasePrice    decimal.Decimal
	WarrantyDays     int
	Actor            entities.UserID
}

// EntityStore owns the single mutable snapshot reference. Commands replace
// the snapshot atomically; readers always observe a fully-formed snapshot,
// never a torn intermediate state.
type EntityStore interface {
	// Snapshot returns the current committed snapshot.
	Snapshot() entities.Snapshot

	// UpdateOrderStatus moves one order to the given status. The new status
	// must be the legal successor in the ordered state sequence.
	UpdateOrderStatus(orderID entities.OrderID, status entities.OrderStatus, actor entities.UserID) error

	// AppendAssignment prepends an assignment record. It does not touch the
	// referenced serial; use AssignSerial when the serial must flip too.
	AppendAssignment(assignment entities.Assignment) error

	// AppendActivity prepends an activity log entry, newest first.
	AppendActivity(entry entities.ActivityEntry) error

	// CreateOrder appends a new order in the Requested state.
	CreateOrder(order entities.Order, actor entities.UserID) error

	// AssignSerial atomically records an assignment and flips the serial to
	// Assigned with the assignee set.
	AssignSerial(cmd AssignSerialCommand) (entities.Assignment, error)

	// ReturnSerial closes an assignment and puts the serial back in stock.
	// Returning an already-closed assignment is a no-op.
	ReturnSerial(assignmentID entities.AssignmentID, at time.Time, actor entities.UserID) (entities.Assignment, error)

	// RegisterDelivery records a partial delivery against an order and mints
	// serials with warranty windows for the delivered units.
	RegisterDelivery(cmd RegisterDeliveryCommand) error
}
