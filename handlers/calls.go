// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/lift-view/cliparse"
	"github.com/danielhkuo/lift-view/hallcalls"
	"github.com/danielhkuo/lift-view/middleware"
	"github.com/danielhkuo/lift-view/models"
	"github.com/danielhkuo/lift-view/projector"
)

type CallHandler struct {
	fleet Fleet
	calls *hallcalls.Store
	cfg   cliparse.Config
}

func NewCallHandler(fleet Fleet, calls *hallcalls.Store, cfg cliparse.Config) *CallHandler {
	return &CallHandler{fleet: fleet, calls: calls, cfg: cfg}
}

// CreateCall handles POST /calls
func (h *CallHandler) CreateCall(w http.ResponseWriter, r *http.Request) {
	var req models.CallRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		if errors.Is(err, models.ErrInvalidDirection) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "direction must be UP or DOWN")
			return
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Floor < 0 || req.Floor >= h.cfg.Floors {
		middleware.ErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("floor must be between 0 and %d", h.cfg.Floors-1))
		return
	}
	if !req.Direction.HallCall() {
		middleware.ErrorResponse(w, http.StatusBadRequest, "direction must be UP or DOWN")
		return
	}
	if !projector.HasButton(req.Floor, h.cfg.Floors, req.Direction) {
		middleware.ErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("floor %d has no %s button", req.Floor, req.Direction))
		return
	}

	// Only snapshots delivered after the press may answer it; Latest can be
	// stale by an arbitrary amount while the feed is down.
	wasPending := h.calls.IsPending(req.Floor, req.Direction)
	if err := h.calls.MarkPending(req.Floor, req.Direction); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.fleet.RequestPickup(r.Context(), req.Floor, req.Direction); err != nil {
		if !wasPending {
			h.calls.Cancel(req.Floor, req.Direction)
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	pending := h.calls.IsPending(req.Floor, req.Direction)
	slog.Info("hall call placed", "floor", req.Floor, "direction", req.Direction, "pending", pending)

	middleware.JSONResponse(w, http.StatusAccepted, models.CallResponse{
		Floor:     req.Floor,
		Direction: req.Direction,
		Pending:   pending,
	})
}

// SelectFloor handles POST /elevators/{id}/select
func (h *CallHandler) SelectFloor(w http.ResponseWriter, r *http.Request) {
	elevatorID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "elevator id must be an integer")
		return
	}

	var req models.SelectFloorRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Floor < 0 || req.Floor >= h.cfg.Floors {
		middleware.ErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("floor must be between 0 and %d", h.cfg.Floors-1))
		return
	}

	snap, ok := h.fleet.Latest()
	if !ok {
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "no fleet snapshot received yet")
		return
	}

	car, found := snap.Car(elevatorID)
	if !found {
		middleware.ErrorResponse(w, http.StatusNotFound, "elevator not found")
		return
	}
	if car.CurrentFloor == req.Floor {
		middleware.ErrorResponse(w, http.StatusConflict, fmt.Sprintf("elevator is already at floor %d", req.Floor))
		return
	}

	if err := h.fleet.RequestDestination(r.Context(), elevatorID, req.Floor); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	slog.Info("destination selected", "elevator_id", elevatorID, "floor", req.Floor)

	middleware.JSONResponse(w, http.StatusAccepted, models.SelectResponse{
		ElevatorID: elevatorID,
		Floor:      req.Floor,
	})
}
