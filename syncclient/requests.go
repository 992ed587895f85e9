// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package syncclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/lift-view/models"
)

var ErrInvalidRequest = errors.New("invalid request")

const (
	callPath   = "/api/elevators/call"
	selectPath = "/api/elevators/select"
)

// RequestPickup asks the service to send a car to floor. Only input
// validation errors are returned; delivery failures are logged and
// swallowed, since the next snapshot is the only confirmation that counts.
func (c *Client) RequestPickup(ctx context.Context, floor int, dir models.Direction) error {
	if floor < 0 || (c.floors > 0 && floor >= c.floors) {
		return fmt.Errorf("%w: floor %d", ErrInvalidRequest, floor)
	}
	if !dir.HallCall() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidRequest, models.ErrInvalidDirection, dir)
	}

	body := models.CallRequest{Floor: floor, Direction: dir}
	if err := c.post(ctx, callPath, body); err != nil {
		slog.Error("failed to call elevator", "error", err, "floor", floor, "direction", dir)
		return nil
	}

	slog.Info("elevator called", "floor", floor, "direction", dir)
	return nil
}

// RequestDestination asks the service to add floor to a car's stops.
// Whether the car is already at that floor is the caller's concern.
func (c *Client) RequestDestination(ctx context.Context, elevatorID, floor int) error {
	if floor < 0 || (c.floors > 0 && floor >= c.floors) {
		return fmt.Errorf("%w: floor %d", ErrInvalidRequest, floor)
	}

	body := models.SelectRequest{ElevatorID: elevatorID, Floor: floor}
	if err := c.post(ctx, selectPath, body); err != nil {
		slog.Error("failed to select floor", "error", err, "elevator_id", elevatorID, "floor", floor)
		return nil
	}

	slog.Info("floor selected", "elevator_id", elevatorID, "floor", floor)
	return nil
}

func (c *Client) post(ctx context.Context, path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serviceURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Client-ID", c.id)
	if c.origin != "" {
		req.Header.Set("Origin", c.origin)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("POST %s: unexpected status %s", path, resp.Status)
	}
	return nil
}
