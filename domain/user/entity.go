// Package user defines the user and profile entities plus the session
// event types published on sign-in and sign-out.
package user

import "time"

// User represents an account in the system.
type User struct {
	ID           string `gorm:"primaryKey;type:text"`
	Email        string `gorm:"uniqueIndex;not null;type:text"`
	PasswordHash string `gorm:"not null;type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// Profile is the per-user profile record. Its ID equals the user ID.
// FullName is nil until the user sets it.
type Profile struct {
	ID        string  `gorm:"primaryKey;type:text" json:"id"`
	FullName  *string `gorm:"type:text" json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the Profile entity.
func (Profile) TableName() string {
	return "profiles"
}

// TokenPair represents access and refresh tokens.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// Claims represents the authenticated identity attached to a request.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
