package entities

import "time"

// ActivityID uniquely identifies an activity log entry
type ActivityID string

// EntityKind names the entity collection an activity entry refers to
type EntityKind string

const (
	EntityQuote      EntityKind = "quote"
	EntityOrder      EntityKind = "order"
	EntityItem       EntityKind = "item"
	EntitySerial     EntityKind = "serial"
	EntityAssignment EntityKind = "assignment"
)

// ActivityEntry is one row of the append-only activity log, newest first.
// An empty ActorUserID means the action was system-initiated.
type ActivityEntry struct {
	ID          ActivityID
	EntityKind  EntityKind
	EntityID    string
	Action      string
	ActorUserID UserID
	At          time.Time
	Payload     map[string]any
}
