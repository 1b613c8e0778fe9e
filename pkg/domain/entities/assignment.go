package entities

import (
	"fmt"
	"time"
)

// AssignmentID uniquely identifies an assignment
type AssignmentID string

// Assignment represents a time-bounded loan of a Serial to a User
type Assignment struct {
	ID                 AssignmentID
	SerialID           SerialID
	AssigneeUserID     UserID
	StartDate          time.Time
	ExpectedReturnDate *time.Time
	EndDate            *time.Time
	DocumentFile       string
	Notes              string
}

// Active reports whether the loan is still open (no end date recorded)
func (a Assignment) Active() bool {
	return a.EndDate == nil
}

// Validate checks the invariants that must hold for an assignment record
func (a Assignment) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("assignment id cannot be empty")
	}
	if a.SerialID == "" {
		return fmt.Errorf("assignment %s: serial id cannot be empty", a.ID)
	}
	if a.AssigneeUserID == "" {
		return fmt.Errorf("assignment %s: assignee user id cannot be empty", a.ID)
	}
	if a.StartDate.IsZero() {
		return fmt.Errorf("assignment %s: start date cannot be zero", a.ID)
	}
	if a.EndDate != nil && a.EndDate.Before(a.StartDate) {
		return fmt.Errorf("assignment %s: end date %s precedes start date %s",
			a.ID, a.EndDate.Format("2006-01-02"), a.StartDate.Format("2006-01-02"))
	}
	return nil
}
