package entities

// UserID uniquely identifies a user
type UserID string

// User represents a member of the organization who can receive equipment
type User struct {
	ID          UserID
	DisplayName string
	Email       string
	Department  string
	Site        string
}
