package api

import (
	"github.com/BenjaminIrwin/scatexparser/internal/history"
	"github.com/BenjaminIrwin/scatexparser/internal/parseservice"
)

// ParseRequest is the request body for POST /api/parse. Anchor is an
// optional RFC 3339 instant; when empty the server's current time is used.
type ParseRequest struct {
	Text   string `json:"text" example:"3 days ago" validate:"required"`
	Anchor string `json:"anchor,omitempty" example:"2023-10-15T12:00:00Z"`
}

// ParseResponse is the full parse outcome (aliased from the domain layer).
type ParseResponse = parseservice.ParseResult

// HistoryEntry is one recorded parse (aliased from the domain layer).
type HistoryEntry = history.Entry

// HistoryListResponse wraps history listings.
type HistoryListResponse struct {
	Entries []HistoryEntry `json:"entries" validate:"required"`
	Count   int            `json:"count" example:"42" validate:"required"`
}

// LocalesResponse reports the active and supported locale codes.
type LocalesResponse struct {
	Active    []string `json:"active" example:"en,es" validate:"required"`
	Supported []string `json:"supported" example:"en,es,fr" validate:"required"`
}
