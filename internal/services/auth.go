package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Tatsuya-hasegawa/fastapi-security-practice/internal/logger"
	"github.com/Tatsuya-hasegawa/fastapi-security-practice/internal/models"
	"github.com/Tatsuya-hasegawa/fastapi-security-practice/internal/password"
	"github.com/Tatsuya-hasegawa/fastapi-security-practice/internal/repositories"
)

// Error variables
var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("incorrect username or password")
	ErrUnauthorized           = errors.New("could not validate credentials")
	ErrInactiveUser           = errors.New("inactive user")
	ErrUserNotFound           = errors.New("user not found")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.UserDB, error)
	GetByUsername(ctx context.Context, username string) (*models.UserDB, error)
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	List(ctx context.Context, offset, limit int) ([]models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, email, username, fullName, passwordHash string) (*models.UserDB, error)
}

// UserCache caches resolved users by username. Implementations may be nil-backed.
type UserCache interface {
	Get(ctx context.Context, username string) (*models.UserDB, error)
	Set(ctx context.Context, user *models.UserDB) error
}

// TokenIssuer issues and verifies bearer tokens carrying a subject claim.
type TokenIssuer interface {
	Generate(ctx context.Context, subject string) (string, error)
	GetSubject(ctx context.Context, tokenString string) (string, error)
}

// AuthService handles registration, login and per-request identity resolution.
type AuthService struct {
	reader UserReader
	writer UserWriter
	cache  UserCache
	jwt    TokenIssuer
}

// NewAuthService creates a new AuthService instance. cache may be nil.
func NewAuthService(reader UserReader, writer UserWriter, cache UserCache, jwt TokenIssuer) *AuthService {
	return &AuthService{
		reader: reader,
		writer: writer,
		cache:  cache,
		jwt:    jwt,
	}
}

// Register creates a new user with a hashed password and returns the
// created record. The email pre-check is only a fast path: the unique
// constraint in storage decides races, surfacing here as
// ErrEmailAlreadyRegistered on the losing side.
func (svc *AuthService) Register(ctx context.Context, email, username, fullName, plain string) (*models.UserDB, error) {
	existing, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to check email", "err", err)
		return nil, err
	}
	if existing != nil {
		logger.Log.Infow("email already registered", "email", email)
		return nil, ErrEmailAlreadyRegistered
	}

	hash, err := password.Hash(plain)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	user, err := svc.writer.Save(ctx, email, username, fullName, hash)
	if err != nil {
		if errors.Is(err, repositories.ErrUniqueViolation) {
			return nil, ErrEmailAlreadyRegistered
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, err
	}

	return user, nil
}

// Login authenticates a user and returns a bearer token whose subject
// is the username. Unknown usernames and wrong passwords are
// indistinguishable to the caller.
func (svc *AuthService) Login(ctx context.Context, username, plain string) (string, error) {
	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", err
	}
	if user == nil {
		logger.Log.Infow("login for unknown username", "username", username)
		return "", ErrInvalidCredentials
	}

	if !password.Verify(plain, user.PasswordHash) {
		logger.Log.Infow("login with wrong password", "username", username)
		return "", ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, user.Username)
	if err != nil {
		logger.Log.Errorw("failed to generate token", "err", err)
		return "", err
	}

	return token, nil
}

// Resolve verifies a bearer token and loads the corresponding user.
// The chain is strictly linear: token verification, user lookup,
// disabled check. Any failure short-circuits. Cache errors are logged
// and fall through to the database.
func (svc *AuthService) Resolve(ctx context.Context, tokenString string) (*models.AuthenticatedIdentity, error) {
	subject, err := svc.jwt.GetSubject(ctx, tokenString)
	if err != nil {
		return nil, ErrUnauthorized
	}

	user := svc.cachedUser(ctx, subject)
	if user == nil {
		user, err = svc.reader.GetByUsername(ctx, subject)
		if err != nil {
			logger.Log.Errorw("failed to load token subject", "err", err)
			return nil, err
		}
		if user == nil {
			logger.Log.Infow("token subject not found", "subject", subject)
			return nil, ErrUnauthorized
		}
		if svc.cache != nil {
			if err := svc.cache.Set(ctx, user); err != nil {
				logger.Log.Errorw("failed to cache user", "err", err)
			}
		}
	}

	if user.Disabled {
		logger.Log.Infow("disabled user rejected", "username", user.Username)
		return nil, ErrInactiveUser
	}

	return &models.AuthenticatedIdentity{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
		Disabled: user.Disabled,
	}, nil
}

func (svc *AuthService) cachedUser(ctx context.Context, username string) *models.UserDB {
	if svc.cache == nil {
		return nil
	}
	user, err := svc.cache.Get(ctx, username)
	if err != nil {
		return nil
	}
	return user
}
