package middlewares

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Tatsuya-hasegawa/fastapi-security-practice/internal/logger"
	"github.com/Tatsuya-hasegawa/fastapi-security-practice/internal/models"
	"github.com/Tatsuya-hasegawa/fastapi-security-practice/internal/services"
)

// Tokener extracts the bearer token from a request.
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
}

// IdentityResolver turns a bearer token into an authenticated identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, tokenString string) (*models.AuthenticatedIdentity, error)
}

// authErrorResponse is the JSON error body for rejected requests.
type authErrorResponse struct {
	Error string `json:"error"`
}

// AuthMiddleware returns a middleware that resolves the caller's
// identity from a bearer token and stores it in the request context.
// Missing and invalid tokens and unknown subjects all yield the same
// 401; a disabled user gets a distinct 400. The wrapped handler never
// runs on any failure.
func AuthMiddleware(tokener Tokener, resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Infow("authorization failed", "err", err)
				writeUnauthorized(w)
				return
			}

			identity, err := resolver.Resolve(ctx, tokenString)
			if err != nil {
				logger.Log.Infow("authorization failed", "err", err)
				switch {
				case errors.Is(err, services.ErrInactiveUser):
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusBadRequest)
					json.NewEncoder(w).Encode(authErrorResponse{Error: "Inactive user"})
				case errors.Is(err, services.ErrUnauthorized):
					writeUnauthorized(w)
				default:
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(authErrorResponse{Error: "Internal server error"})
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(SetIdentityToContext(ctx, identity)))
		})
	}
}

// writeUnauthorized writes the uniform 401 with the bearer challenge.
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(authErrorResponse{Error: "Could not validate credentials"})
}
