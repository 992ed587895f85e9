// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hallcalls

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/danielhkuo/lift-view/models"
)

var ErrInvalidCall = errors.New("invalid hall call")

// Key identifies one hall-call button.
type Key struct {
	Floor     int
	Direction models.Direction
}

// Store tracks hall calls the user has pressed but no car has answered yet.
type Store struct {
	mu      sync.Mutex
	pending map[Key]time.Time
	timeout time.Duration
	now     func() time.Time
}

type Option func(*Store)

// WithTimeout enables Sweep: calls pending longer than d are dropped
// even without confirmation. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(s *Store) { s.timeout = d }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(opts ...Option) *Store {
	s := &Store{
		pending: make(map[Key]time.Time),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MarkPending records a pressed hall call. Marking an already pending
// call is a no-op and keeps its original mark time.
func (s *Store) MarkPending(floor int, dir models.Direction) error {
	if floor < 0 {
		return fmt.Errorf("%w: floor %d", ErrInvalidCall, floor)
	}
	if !dir.HallCall() {
		return fmt.Errorf("%w: direction %q", ErrInvalidCall, dir)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	k := Key{Floor: floor, Direction: dir}
	if _, ok := s.pending[k]; !ok {
		s.pending[k] = s.now()
	}
	return nil
}

// Cancel withdraws a pending call that was never delivered to the service.
// It reports whether the call was pending.
func (s *Store) Cancel(floor int, dir models.Direction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := Key{Floor: floor, Direction: dir}
	if _, ok := s.pending[k]; !ok {
		return false
	}
	delete(s.pending, k)
	return true
}

// Reconcile clears every pending call whose floor has a car standing at
// it with its doors open, and returns the cleared keys in order.
func (s *Store) Reconcile(snap models.FleetSnapshot) []Key {
	arrived := make(map[int]bool)
	for _, e := range snap.Elevators {
		if e.Status == models.StatusDoorsOpen {
			arrived[e.CurrentFloor] = true
		}
	}
	if len(arrived) == 0 {
		return nil
	}

	s.mu.Lock()
	var cleared []Key
	for k := range s.pending {
		if arrived[k.Floor] {
			delete(s.pending, k)
			cleared = append(cleared, k)
		}
	}
	s.mu.Unlock()

	sortKeys(cleared)
	for _, k := range cleared {
		slog.Info("hall call answered", "floor", k.Floor, "direction", k.Direction, "seq", snap.Seq)
	}
	return cleared
}

// Sweep drops calls that have been pending longer than the configured
// timeout. It is a safety net only; Reconcile is what normally clears calls.
func (s *Store) Sweep() []Key {
	if s.timeout <= 0 {
		return nil
	}

	s.mu.Lock()
	cutoff := s.now().Add(-s.timeout)
	var expired []Key
	for k, markedAt := range s.pending {
		if !markedAt.After(cutoff) {
			delete(s.pending, k)
			expired = append(expired, k)
		}
	}
	s.mu.Unlock()

	sortKeys(expired)
	for _, k := range expired {
		slog.Warn("hall call expired without confirmation", "floor", k.Floor, "direction", k.Direction, "timeout", s.timeout)
	}
	return expired
}

func (s *Store) IsPending(floor int, dir models.Direction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[Key{Floor: floor, Direction: dir}]
	return ok
}

// Pending returns every pending call ordered by floor, UP before DOWN.
func (s *Store) Pending() []Key {
	s.mu.Lock()
	keys := make([]Key, 0, len(s.pending))
	for k := range s.pending {
		keys = append(keys, k)
	}
	s.mu.Unlock()

	sortKeys(keys)
	return keys
}

func sortKeys(keys []Key) {
	slices.SortFunc(keys, func(a, b Key) int {
		if c := cmp.Compare(a.Floor, b.Floor); c != 0 {
			return c
		}
		return cmp.Compare(directionRank(a.Direction), directionRank(b.Direction))
	})
}

func directionRank(d models.Direction) int {
	if d == models.DirectionUp {
		return 0
	}
	return 1
}
