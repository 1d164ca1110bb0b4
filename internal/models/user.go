package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents a user record in the database
type UserDB struct {
	ID           uuid.UUID `json:"id" db:"id"`                     // Primary key
	Email        string    `json:"email" db:"email"`               // Unique email
	Username     string    `json:"username" db:"username"`         // Username used as token subject
	FullName     string    `json:"full_name" db:"full_name"`       // Display name
	PasswordHash string    `json:"-" db:"password_hash"`           // Bcrypt hash, never serialized
	Disabled     bool      `json:"disabled" db:"disabled"`         // Disabled accounts cannot access protected routes
	CreatedAt    time.Time `json:"created_at" db:"created_at"`     // Creation timestamp
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`     // Last update timestamp
}
