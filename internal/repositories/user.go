package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/Tatsuya-hasegawa/fastapi-security-practice/internal/logger"
	"github.com/Tatsuya-hasegawa/fastapi-security-practice/internal/models"
)

// ErrUniqueViolation is returned when an insert loses to an existing
// row on a unique constraint. The database constraint is the single
// authority for duplicate emails, including under concurrent
// registrations.
var ErrUniqueViolation = errors.New("unique constraint violation")

const userColumns = "id, email, username, full_name, password_hash, disabled, created_at, updated_at"

// UserReadRepository provides read access to the users table.
type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByID returns the user with the given id, or (nil, nil) when absent.
func (r *UserReadRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.UserDB, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByUsername returns the user with the given username, or (nil, nil) when absent.
func (r *UserReadRepository) GetByUsername(ctx context.Context, username string) (*models.UserDB, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE username = $1 LIMIT 1`
	return r.getOne(ctx, query, username)
}

// GetByEmail returns the user with the given email, or (nil, nil) when absent.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1 LIMIT 1`
	return r.getOne(ctx, query, email)
}

// List returns users ordered by creation time.
func (r *UserReadRepository) List(ctx context.Context, offset, limit int) ([]models.UserDB, error) {
	const query = `SELECT ` + userColumns + ` FROM users ORDER BY created_at OFFSET $1 LIMIT $2`

	var users []models.UserDB
	err := r.db.SelectContext(ctx, &users, query, offset, limit)

	logger.Log.Infow("user query",
		"query", squash(query),
		"args", []any{offset, limit},
		"rows", len(users),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserReadRepository) getOne(ctx context.Context, query string, arg any) (*models.UserDB, error) {
	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, arg)

	logger.Log.Infow("user query",
		"query", squash(query),
		"args", []any{arg},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UserWriteRepository provides write access to the users table.
type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Save inserts a new user and returns the created row. A duplicate
// email surfaces as ErrUniqueViolation.
func (r *UserWriteRepository) Save(ctx context.Context, email, username, fullName, passwordHash string) (*models.UserDB, error) {
	const query = `
		INSERT INTO users (email, username, full_name, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING ` + userColumns

	args := []any{email, username, fullName, passwordHash}

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, args...)

	logger.Log.Infow("user insert",
		"query", squash(query),
		"args", []any{email, username, fullName},
		"error", err,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrUniqueViolation
		}
		return nil, err
	}
	return &user, nil
}

// squash collapses a multi-line query into a single log-friendly line.
func squash(query string) string {
	return strings.Join(strings.Fields(query), " ")
}
