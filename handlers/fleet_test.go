// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"sync"

	"github.com/danielhkuo/lift-view/models"
)

type pickup struct {
	floor int
	dir   models.Direction
}

type destination struct {
	elevatorID int
	floor      int
}

// fakeFleet is a Fleet with a settable snapshot that records outbound requests
type fakeFleet struct {
	mu           sync.Mutex
	snap         models.FleetSnapshot
	hasSnap      bool
	connected    bool
	pickups      []pickup
	destinations []destination
	pickupErr    error
}

func (f *fakeFleet) set(snap models.FleetSnapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snap, f.hasSnap, f.connected = snap, true, true
}

func (f *fakeFleet) setConnected(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connected = v
}

func (f *fakeFleet) Latest() (models.FleetSnapshot, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap, f.hasSnap
}

func (f *fakeFleet) Connected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

func (f *fakeFleet) RequestPickup(ctx context.Context, floor int, dir models.Direction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pickupErr != nil {
		return f.pickupErr
	}
	f.pickups = append(f.pickups, pickup{floor, dir})
	return nil
}

func (f *fakeFleet) RequestDestination(ctx context.Context, elevatorID, floor int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destinations = append(f.destinations, destination{elevatorID, floor})
	return nil
}

func (f *fakeFleet) pickupCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pickups)
}
