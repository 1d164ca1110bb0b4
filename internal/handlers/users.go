package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Tatsuya-hasegawa/fastapi-security-practice/internal/logger"
	"github.com/Tatsuya-hasegawa/fastapi-security-practice/internal/middlewares"
	"github.com/Tatsuya-hasegawa/fastapi-security-practice/internal/models"
	"github.com/Tatsuya-hasegawa/fastapi-security-practice/internal/services"
)

// UserRegisterer defines the interface that the registration service must implement.
type UserRegisterer interface {
	Register(ctx context.Context, email, username, fullName, password string) (*models.UserDB, error)
}

// UserProvider defines read access for the protected user endpoints.
type UserProvider interface {
	Get(ctx context.Context, id uuid.UUID) (*models.UserDB, error)
	List(ctx context.Context, offset, limit int) ([]models.UserDB, error)
}

// CreateUserRequest represents the JSON body for user registration
// swagger:model CreateUserRequest
type CreateUserRequest struct {
	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`

	// Username
	// required: true
	// default: john_doe
	Username string `json:"username"`

	// Full name
	// default: John Doe
	FullName string `json:"full_name"`
}

// UserResponse represents a user record without credentials
// swagger:model UserResponse
type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	FullName string    `json:"full_name"`
	Disabled bool      `json:"disabled"`
}

// UserErrorResponse represents an error response for user endpoints
// swagger:model UserErrorResponse
type UserErrorResponse struct {
	// Error message
	// default: Email already registered
	Error string `json:"error"`
}

func newUserResponse(user *models.UserDB) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		FullName: user.FullName,
		Disabled: user.Disabled,
	}
}

// NewCreateUserHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account with a unique email. The password is hashed before storing and never echoed back.
// @Tags users
// @Accept json
// @Produce json
// @Param createUserRequest body handlers.CreateUserRequest true "User registration request"
// @Success 201 {object} handlers.UserResponse "User successfully registered"
// @Failure 400 {object} handlers.UserErrorResponse "Email already registered / invalid request"
// @Router /users/ [post]
func NewCreateUserHandler(svc UserRegisterer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateUserRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(UserErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		user, err := svc.Register(r.Context(), req.Email, req.Username, req.FullName, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrEmailAlreadyRegistered):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(UserErrorResponse{
					Error: "Email already registered",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(UserErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(newUserResponse(user))
	}
}

// NewGetUserHandler returns an HTTP handler fetching one user by id.
// @Summary Get user by id
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} handlers.UserResponse "User found"
// @Failure 400 {object} handlers.UserErrorResponse "Invalid user id"
// @Failure 404 {object} handlers.UserErrorResponse "User not found"
// @Router /users/{id} [get]
// @Security BearerAuth
func NewGetUserHandler(svc UserProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(UserErrorResponse{
				Error: "invalid user id",
			})
			return
		}

		user, err := svc.Get(r.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(UserErrorResponse{
					Error: "User not found",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(UserErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(newUserResponse(user))
	}
}

// NewListUsersHandler returns an HTTP handler listing users.
// @Summary List users
// @Tags users
// @Produce json
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Limit" default(100)
// @Success 200 {array} handlers.UserResponse "Users"
// @Failure 500 {object} handlers.UserErrorResponse "Internal server error"
// @Router /users/ [get]
// @Security BearerAuth
func NewListUsersHandler(svc UserProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offset, limit := parseOffsetLimit(r)

		users, err := svc.List(r.Context(), offset, limit)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(UserErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		resp := make([]UserResponse, 0, len(users))
		for i := range users {
			resp = append(resp, newUserResponse(&users[i]))
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	}
}

// NewCurrentUserHandler returns an HTTP handler echoing the caller's identity.
// @Summary Get current user
// @Tags users
// @Produce json
// @Success 200 {object} handlers.UserResponse "Caller identity"
// @Failure 401 {object} handlers.UserErrorResponse "Unauthorized"
// @Router /users/me/ [get]
// @Security BearerAuth
func NewCurrentUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := middlewares.GetIdentityFromContext(r.Context())
		if identity == nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(UserErrorResponse{
				Error: "Could not validate credentials",
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(UserResponse{
			ID:       identity.UserID,
			Email:    identity.Email,
			Username: identity.Username,
			FullName: identity.FullName,
			Disabled: identity.Disabled,
		})
	}
}
