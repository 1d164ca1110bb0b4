package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/Tatsuya-hasegawa/fastapi-security-practice/internal/logger"
	"github.com/Tatsuya-hasegawa/fastapi-security-practice/internal/middlewares"
	"github.com/Tatsuya-hasegawa/fastapi-security-practice/internal/models"
)

// HistoryLister lists lookup records for one owner.
type HistoryLister interface {
	History(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]models.HistoryEntryDB, error)
}

// HistoryEntryResponse represents one recorded lookup
// swagger:model HistoryEntryResponse
type HistoryEntryResponse struct {
	ID      uuid.UUID `json:"id"`
	OwnerID uuid.UUID `json:"owner_id"`

	// Queried address string
	// default: 8.8.8.8
	IPAddr string `json:"ipaddress"`

	// Classification label
	// default: Global IPv4 Address
	Attr string `json:"ip_attr"`
}

// HistoryErrorResponse represents an error response for the history endpoint
// swagger:model HistoryErrorResponse
type HistoryErrorResponse struct {
	// Error message
	// default: Internal server error
	Error string `json:"error"`
}

// NewHistoryHandler returns an HTTP handler listing the caller's
// lookup history in insertion order.
// @Summary List lookup history
// @Tags history
// @Produce json
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Limit" default(100)
// @Success 200 {array} handlers.HistoryEntryResponse "History entries"
// @Failure 401 {object} handlers.HistoryErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.HistoryErrorResponse "Internal server error"
// @Router /history/ [get]
// @Security BearerAuth
func NewHistoryHandler(svc HistoryLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := middlewares.GetIdentityFromContext(r.Context())
		if identity == nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(HistoryErrorResponse{
				Error: "Could not validate credentials",
			})
			return
		}

		offset, limit := parseOffsetLimit(r)

		entries, err := svc.History(r.Context(), identity.UserID, offset, limit)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(HistoryErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		resp := make([]HistoryEntryResponse, 0, len(entries))
		for _, e := range entries {
			resp = append(resp, HistoryEntryResponse{
				ID:      e.ID,
				OwnerID: e.OwnerID,
				IPAddr:  e.IPAddress,
				Attr:    e.IPAttr,
			})
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	}
}
