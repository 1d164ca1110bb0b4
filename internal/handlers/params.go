package handlers

import (
	"net/http"
	"strconv"
)

const (
	defaultOffset = 0
	defaultLimit  = 100
)

// parseOffsetLimit reads optional offset/limit query parameters,
// falling back to the defaults on absence or garbage.
func parseOffsetLimit(r *http.Request) (int, int) {
	offset := defaultOffset
	limit := defaultLimit

	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			limit = n
		}
	}

	return offset, limit
}
