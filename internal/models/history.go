package models

import (
	"time"

	"github.com/google/uuid"
)

// HistoryEntryDB represents one recorded IP lookup in the database.
// Entries are append-only: they are written once per successful
// classification request and never mutated.
type HistoryEntryDB struct {
	ID        uuid.UUID `json:"id" db:"id"`                 // Primary key
	OwnerID   uuid.UUID `json:"owner_id" db:"owner_id"`     // References users.id
	IPAddress string    `json:"ipaddress" db:"ip_address"`  // Queried address string
	IPAttr    string    `json:"ip_attr" db:"ip_attr"`       // Classification label
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Insertion timestamp
}
