package models

import "github.com/google/uuid"

// AuthenticatedIdentity is the request-scoped projection of a user
// produced by the auth middleware after a bearer token has been
// verified and resolved. Handlers read it from the request context.
type AuthenticatedIdentity struct {
	UserID   uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Disabled bool      `json:"disabled"`
}
