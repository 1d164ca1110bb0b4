package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Tatsuya-hasegawa/fastapi-security-practice/internal/logger"
	"github.com/Tatsuya-hasegawa/fastapi-security-practice/internal/services"
)

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// TokenResponse represents a successful credential exchange
// swagger:model TokenResponse
type TokenResponse struct {
	// Bearer token
	// default: JWT_TOKEN
	AccessToken string `json:"access_token"`

	// Token type marker
	// default: bearer
	TokenType string `json:"token_type"`
}

// TokenErrorResponse represents an error response for the token endpoint
// swagger:model TokenErrorResponse
type TokenErrorResponse struct {
	// Error message
	// default: Incorrect username or password
	Error string `json:"error"`
}

// NewTokenHandler returns an HTTP handler exchanging form credentials
// for a bearer token.
// @Summary Obtain bearer token
// @Description Exchanges username and password for a 30-minute bearer token
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Success 200 {object} handlers.TokenResponse "Bearer token returned"
// @Failure 400 {object} handlers.TokenErrorResponse "Invalid form data"
// @Failure 401 {object} handlers.TokenErrorResponse "Incorrect username or password"
// @Router /token [post]
func NewTokenHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(TokenErrorResponse{
				Error: "invalid form data",
			})
			return
		}

		username := r.PostFormValue("username")
		password := r.PostFormValue("password")

		token, err := svc.Login(r.Context(), username, password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidCredentials):
				// Same message whether the username or the password was wrong.
				w.Header().Set("WWW-Authenticate", "Bearer")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(TokenErrorResponse{
					Error: "Incorrect username or password",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(TokenErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(TokenResponse{
			AccessToken: token,
			TokenType:   "bearer",
		})
	}
}
