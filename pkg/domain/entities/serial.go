package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SerialID uniquely identifies a physical unit
type SerialID string

// SerialStatus represents the lifecycle state of a serialized unit
type SerialStatus int

const (
	InStock SerialStatus = iota
	Assigned
	InRepair
	Retired
)

// String method for SerialStatus enum
func (s SerialStatus) String() string {
	switch s {
	case InStock:
		return "InStock"
	case Assigned:
		return "Assigned"
	case InRepair:
		return "InRepair"
	case Retired:
		return "Retired"
	default:
		return "Unknown"
	}
}

// ParseSerialStatus converts a string into a SerialStatus
func ParseSerialStatus(s string) (SerialStatus, error) {
	switch s {
	case "InStock":
		return InStock, nil
	case "Assigned":
		return Assigned, nil
	case "InRepair":
		return InRepair, nil
	case "Retired":
		return Retired, nil
	default:
		return InStock, fmt.Errorf("unknown serial status: %q", s)
	}
}

// Serial represents one physically trackable unit of an Item
type Serial struct {
	ID                    SerialID
	ItemID                ItemID
	SerialNumber          string
	DeliveryDate          *time.Time
	WarrantyStart         *time.Time
	WarrantyEnd           *time.Time
	SupplierID            SupplierID
	PurchasePrice         decimal.Decimal
	Status                SerialStatus
	CurrentAssigneeUserID UserID
	Files                 []string
}

// NewSerial creates a validated in-stock Serial
func NewSerial(id SerialID, itemID ItemID, serialNumber string) (*Serial, error) {
	if id == "" {
		return nil, fmt.Errorf("serial id cannot be empty")
	}
	if itemID == "" {
		return nil, fmt.Errorf("serial item id cannot be empty")
	}
	if serialNumber == "" {
		return nil, fmt.Errorf("serial number cannot be empty")
	}

	return &Serial{
		ID:           id,
		ItemID:       itemID,
		SerialNumber: serialNumber,
		Status:       InStock,
	}, nil
}

// Validate checks the status/assignee consistency invariant:
// a serial is Assigned if and only if it carries an assignee.
func (s Serial) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("serial id cannot be empty")
	}
	if s.ItemID == "" {
		return fmt.Errorf("serial %s: item id cannot be empty", s.ID)
	}
	if s.SerialNumber == "" {
		return fmt.Errorf("serial %s: serial number cannot be empty", s.ID)
	}
	if s.Status == Assigned && s.CurrentAssigneeUserID == "" {
		return fmt.Errorf("serial %s: assigned without an assignee", s.ID)
	}
	if s.Status != Assigned && s.CurrentAssigneeUserID != "" {
		return fmt.Errorf("serial %s: assignee set but status is %s", s.ID, s.Status)
	}
	if s.PurchasePrice.IsNegative() {
		return fmt.Errorf("serial %s: purchase price cannot be negative, got %s", s.ID, s.PurchasePrice)
	}
	return nil
}
