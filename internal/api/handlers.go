package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/BenjaminIrwin/scatexparser/internal/apperr"
	"github.com/BenjaminIrwin/scatexparser/internal/parseservice"
	"github.com/BenjaminIrwin/scatexparser/internal/recognize"
)

// Handler holds API route handlers.
type Handler struct {
	svc *parseservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *parseservice.Service) *Handler {
	return &Handler{svc: svc}
}

// Parse handles POST /api/parse. The anchor defaults to the current time;
// an input that matches nothing still returns 200 with matched false.
func (h *Handler) Parse(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Text == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("text is required"))
		return
	}

	anchor := time.Now()
	if req.Anchor != "" {
		t, err := time.Parse(time.RFC3339, req.Anchor)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("anchor must be RFC 3339"))
			return
		}
		anchor = t
	}

	res, err := h.svc.Parse(r.Context(), req.Text, anchor)
	if err != nil {
		slog.Error("parse failed", slog.String("text", req.Text), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ListHistory handles GET /api/history.
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	locale := q.Get("locale")

	entries, err := h.svc.History(r.Context(), locale, limit, offset)
	if err != nil {
		slog.Error("list history failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if entries == nil {
		entries = []HistoryEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"entries": entries,
		"count":   len(entries),
	})
}

// GetHistory handles GET /api/history/{id}.
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("id must be an integer"))
		return
	}
	entry, err := h.svc.HistoryEntry(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get history failed", slog.Int64("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// PurgeHistory handles DELETE /api/history.
func (h *Handler) PurgeHistory(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.PurgeHistory(r.Context())
	if err != nil {
		slog.Error("purge history failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"purged": n})
}

// Locales handles GET /api/locales.
func (h *Handler) Locales(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"active":    h.svc.Languages(),
		"supported": recognize.Supported(),
	})
}

// ReloadLocales handles POST /api/locales/reload.
func (h *Handler) ReloadLocales(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Reload(); err != nil {
		slog.Error("reload locales failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("reload failed"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reloaded": true, "active": h.svc.Languages()})
}
