// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"

	"github.com/danielhkuo/lift-view/models"
)

// Fleet is the view of the elevator service the gateway needs.
// *syncclient.Client satisfies it.
type Fleet interface {
	Latest() (models.FleetSnapshot, bool)
	Connected() bool
	RequestPickup(ctx context.Context, floor int, dir models.Direction) error
	RequestDestination(ctx context.Context, elevatorID, floor int) error
}
