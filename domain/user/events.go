package user

import "time"

// EventType represents the type of session event.
type EventType string

const (
	// EventTypeSignedIn indicates a user has signed in.
	EventTypeSignedIn EventType = "session.signed_in"
	// EventTypeSignedOut indicates a user has signed out.
	EventTypeSignedOut EventType = "session.signed_out"
)

// SessionEvent is published when a user's authentication state changes.
type SessionEvent struct {
	Type      EventType `json:"type"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Timestamp time.Time `json:"timestamp"`
}

// NewSignedInEvent creates a new signed-in event.
func NewSignedInEvent(userID, email string) SessionEvent {
	return SessionEvent{
		Type:      EventTypeSignedIn,
		UserID:    userID,
		Email:     email,
		Timestamp: time.Now(),
	}
}

// NewSignedOutEvent creates a new signed-out event.
func NewSignedOutEvent(userID, email string) SessionEvent {
	return SessionEvent{
		Type:      EventTypeSignedOut,
		UserID:    userID,
		Email:     email,
		Timestamp: time.Now(),
	}
}
