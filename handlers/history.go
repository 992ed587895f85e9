// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/lift-view/db"
	"github.com/danielhkuo/lift-view/middleware"
	"github.com/danielhkuo/lift-view/models"
)

type HistoryHandler struct {
	journal *db.Journal
}

// NewHistoryHandler accepts a nil journal when persistence is disabled.
func NewHistoryHandler(journal *db.Journal) *HistoryHandler {
	return &HistoryHandler{journal: journal}
}

// GetHistory handles GET /history
func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	if h.journal == nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "snapshot journal is not configured")
		return
	}

	limit := db.DefaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > db.MaxHistoryLimit {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be between 1 and "+strconv.Itoa(db.MaxHistoryLimit))
			return
		}
		limit = n
	}

	entries, err := h.journal.Recent(r.Context(), limit)
	if err != nil {
		slog.Error("failed to read snapshot history", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to read history")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.HistoryResponse{Entries: entries})
}
