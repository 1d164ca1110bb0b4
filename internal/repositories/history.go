package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Tatsuya-hasegawa/fastapi-security-practice/internal/logger"
	"github.com/Tatsuya-hasegawa/fastapi-security-practice/internal/models"
)

const historyColumns = "id, owner_id, ip_address, ip_attr, created_at"

// HistoryWriteRepository appends lookup records to the history table.
type HistoryWriteRepository struct {
	db *sqlx.DB
}

func NewHistoryWriteRepository(db *sqlx.DB) *HistoryWriteRepository {
	return &HistoryWriteRepository{db: db}
}

// Save appends one history entry and returns the created row.
func (r *HistoryWriteRepository) Save(ctx context.Context, ownerID uuid.UUID, ipAddress, ipAttr string) (*models.HistoryEntryDB, error) {
	const query = `
		INSERT INTO history (owner_id, ip_address, ip_attr, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING ` + historyColumns

	args := []any{ownerID, ipAddress, ipAttr}

	var entry models.HistoryEntryDB
	err := r.db.GetContext(ctx, &entry, query, args...)

	logger.Log.Infow("history insert",
		"query", squash(query),
		"args", args,
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// HistoryReadRepository reads lookup records for one owner.
type HistoryReadRepository struct {
	db *sqlx.DB
}

func NewHistoryReadRepository(db *sqlx.DB) *HistoryReadRepository {
	return &HistoryReadRepository{db: db}
}

// ListByOwner returns the owner's entries in insertion order.
func (r *HistoryReadRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]models.HistoryEntryDB, error) {
	const query = `
		SELECT ` + historyColumns + `
		FROM history
		WHERE owner_id = $1
		ORDER BY created_at
		OFFSET $2 LIMIT $3`

	var entries []models.HistoryEntryDB
	err := r.db.SelectContext(ctx, &entries, query, ownerID, offset, limit)

	logger.Log.Infow("history query",
		"query", squash(query),
		"args", []any{ownerID, offset, limit},
		"rows", len(entries),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return entries, nil
}
