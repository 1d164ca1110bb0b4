package middlewares

import (
	"context"

	"github.com/Tatsuya-hasegawa/fastapi-security-practice/internal/models"
)

// contextKey is an unexported type for keys in context
type contextKey struct{}

var identityKey = contextKey{}

// SetIdentityToContext stores the authenticated identity in the context
func SetIdentityToContext(ctx context.Context, identity *models.AuthenticatedIdentity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentityFromContext retrieves the authenticated identity from the
// context. Returns nil if not present.
func GetIdentityFromContext(ctx context.Context) *models.AuthenticatedIdentity {
	identity, _ := ctx.Value(identityKey).(*models.AuthenticatedIdentity)
	return identity
}
