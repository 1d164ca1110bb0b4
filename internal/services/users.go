package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/Tatsuya-hasegawa/fastapi-security-practice/internal/logger"
	"github.com/Tatsuya-hasegawa/fastapi-security-practice/internal/models"
)

// UserService exposes read access to user records for the protected
// user endpoints.
type UserService struct {
	reader UserReader
}

// NewUserService creates a new UserService instance.
func NewUserService(reader UserReader) *UserService {
	return &UserService{reader: reader}
}

// Get returns the user with the given id, or ErrUserNotFound.
func (svc *UserService) Get(ctx context.Context, id uuid.UUID) (*models.UserDB, error) {
	user, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get user", "id", id, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// List returns users ordered by creation time.
func (svc *UserService) List(ctx context.Context, offset, limit int) ([]models.UserDB, error) {
	users, err := svc.reader.List(ctx, offset, limit)
	if err != nil {
		logger.Log.Errorw("failed to list users", "err", err)
		return nil, err
	}
	return users, nil
}
