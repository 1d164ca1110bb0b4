package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Tatsuya-hasegawa/fastapi-security-practice/internal/logger"
	"github.com/Tatsuya-hasegawa/fastapi-security-practice/internal/middlewares"
	"github.com/Tatsuya-hasegawa/fastapi-security-practice/internal/models"
)

// LookupRecorder classifies an IP string and records the lookup for its owner.
type LookupRecorder interface {
	Lookup(ctx context.Context, identity *models.AuthenticatedIdentity, ipstr string) (*models.HistoryEntryDB, error)
}

// IPAddrResponse represents a classification result
// swagger:model IPAddrResponse
type IPAddrResponse struct {
	// Queried address string
	// default: 8.8.8.8
	IPAddr string `json:"ipaddr"`

	// Classification label
	// default: Global IPv4 Address
	Attr string `json:"attr"`

	// Username of the caller
	// default: john_doe
	Owner string `json:"owner"`
}

// IPAddrErrorResponse represents an error response for the lookup endpoint
// swagger:model IPAddrErrorResponse
type IPAddrErrorResponse struct {
	// Error message
	// default: Internal server error
	Error string `json:"error"`
}

// NewIPAddrHandler returns an HTTP handler classifying an IP string
// for the authenticated caller. Malformed addresses classify to an
// error label and still produce a history entry.
// @Summary Classify an IP address
// @Description Classifies the address by its network-role attribute and records the lookup in the caller's history
// @Tags ipaddr
// @Produce json
// @Param ipstr path string true "IP address string"
// @Success 200 {object} handlers.IPAddrResponse "Classification result"
// @Failure 401 {object} handlers.IPAddrErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.IPAddrErrorResponse "Internal server error"
// @Router /ipaddr/{ipstr} [get]
// @Security BearerAuth
func NewIPAddrHandler(svc LookupRecorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := middlewares.GetIdentityFromContext(r.Context())
		if identity == nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(IPAddrErrorResponse{
				Error: "Could not validate credentials",
			})
			return
		}

		ipstr := chi.URLParam(r, "ipstr")

		entry, err := svc.Lookup(r.Context(), identity, ipstr)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(IPAddrErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(IPAddrResponse{
			IPAddr: entry.IPAddress,
			Attr:   entry.IPAttr,
			Owner:  identity.Username,
		})
	}
}
