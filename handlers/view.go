// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/lift-view/cliparse"
	"github.com/danielhkuo/lift-view/hallcalls"
	"github.com/danielhkuo/lift-view/middleware"
	"github.com/danielhkuo/lift-view/models"
	"github.com/danielhkuo/lift-view/projector"
)

type ViewHandler struct {
	fleet Fleet
	calls *hallcalls.Store
	cfg   cliparse.Config
}

func NewViewHandler(fleet Fleet, calls *hallcalls.Store, cfg cliparse.Config) *ViewHandler {
	return &ViewHandler{fleet: fleet, calls: calls, cfg: cfg}
}

// GetView handles GET /view
func (h *ViewHandler) GetView(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.fleet.Latest()
	if !ok {
		snap = models.PlaceholderFleet(h.cfg.Elevators)
	}

	cars, err := projector.Project(snap, h.cfg.Floors)
	if err != nil {
		slog.Error("failed to project fleet", "error", err, "seq", snap.Seq)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to render fleet")
		return
	}

	rows, err := projector.Floors(h.cfg.Floors, h.calls.IsPending)
	if err != nil {
		slog.Error("failed to lay out floors", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to render floors")
		return
	}

	resp := models.ViewResponse{
		Connected:   h.fleet.Connected(),
		Floors:      h.cfg.Floors,
		Seq:         snap.Seq,
		Placeholder: !ok,
		Elevators:   cars,
		HallCalls:   rows,
	}
	if ok {
		at := snap.ReceivedAt
		resp.UpdatedAt = &at
		resp.Updated = humanize.Time(at)
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetCalls handles GET /calls
func (h *ViewHandler) GetCalls(w http.ResponseWriter, r *http.Request) {
	keys := h.calls.Pending()

	pending := make([]models.PendingCall, 0, len(keys))
	for _, k := range keys {
		pending = append(pending, models.PendingCall{Floor: k.Floor, Direction: k.Direction})
	}

	middleware.JSONResponse(w, http.StatusOK, models.CallsResponse{Pending: pending})
}
