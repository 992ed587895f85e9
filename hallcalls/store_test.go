// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hallcalls

import (
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/lift-view/models"
	"github.com/danielhkuo/lift-view/testutil"
)

func TestMarkPendingIsIdempotent(t *testing.T) {
	s := New()

	if err := s.MarkPending(1, models.DirectionUp); err != nil {
		t.Fatalf("MarkPending failed: %v", err)
	}
	if err := s.MarkPending(1, models.DirectionUp); err != nil {
		t.Fatalf("Re-marking must not fail: %v", err)
	}

	want := []Key{{Floor: 1, Direction: models.DirectionUp}}
	if got := s.Pending(); !slices.Equal(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestMarkPendingValidation(t *testing.T) {
	s := New()

	tests := []struct {
		name  string
		floor int
		dir   models.Direction
	}{
		{"idle direction", 1, models.DirectionIdle},
		{"unknown direction", 1, models.Direction("LEFT")},
		{"negative floor", -1, models.DirectionUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.MarkPending(tt.floor, tt.dir); !errors.Is(err, ErrInvalidCall) {
				t.Errorf("Expected ErrInvalidCall, got %v", err)
			}
		})
	}

	if len(s.Pending()) != 0 {
		t.Error("Rejected calls must not be recorded")
	}
}

func TestCancel(t *testing.T) {
	s := New()
	s.MarkPending(1, models.DirectionUp)
	s.MarkPending(1, models.DirectionDown)

	if !s.Cancel(1, models.DirectionUp) {
		t.Error("Expected Cancel to report the pending call")
	}
	if s.Cancel(1, models.DirectionUp) {
		t.Error("Expected second Cancel to report nothing pending")
	}
	if s.Cancel(0, models.DirectionUp) {
		t.Error("Expected Cancel of an unmarked call to report false")
	}

	want := []Key{{Floor: 1, Direction: models.DirectionDown}}
	if got := s.Pending(); !slices.Equal(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestReconcileClearsOnDoorsOpen(t *testing.T) {
	s := New()
	s.MarkPending(0, models.DirectionUp)

	cleared := s.Reconcile(testutil.Fleet(1, testutil.Car(0, 0, models.DirectionIdle, models.StatusDoorsOpen)))

	if s.IsPending(0, models.DirectionUp) {
		t.Error("Expected (0, UP) cleared once a car opened its doors there")
	}
	if want := []Key{{Floor: 0, Direction: models.DirectionUp}}; !slices.Equal(cleared, want) {
		t.Errorf("Expected cleared %v, got %v", want, cleared)
	}
}

func TestReconcileKeepsCallWhileCarIsMoving(t *testing.T) {
	s := New()
	s.MarkPending(2, models.DirectionDown)

	s.Reconcile(testutil.Fleet(1, testutil.Car(0, 2, models.DirectionUp, models.StatusMoving, 2)))

	if !s.IsPending(2, models.DirectionDown) {
		t.Error("A car passing the floor without opening doors must not clear the call")
	}
}

func TestReconcileConvergence(t *testing.T) {
	s := New()
	s.MarkPending(2, models.DirectionUp)

	// Car 0 travels 0 -> 2 and opens its doors; car 1 idles at floor 1 throughout.
	sequence := []struct {
		snap        models.FleetSnapshot
		wantPending bool
	}{
		{testutil.Fleet(1, testutil.Car(0, 0, models.DirectionUp, models.StatusMoving, 2), testutil.Car(1, 1, models.DirectionIdle, models.StatusDoorsOpen)), true},
		{testutil.Fleet(2, testutil.Car(0, 1, models.DirectionUp, models.StatusMoving, 2), testutil.Car(1, 1, models.DirectionIdle, models.StatusIdle)), true},
		{testutil.Fleet(3, testutil.Car(0, 2, models.DirectionUp, models.StatusMoving, 2), testutil.Car(1, 1, models.DirectionIdle, models.StatusIdle)), true},
		{testutil.Fleet(4, testutil.Car(0, 2, models.DirectionUp, models.StatusDoorsOpen), testutil.Car(1, 1, models.DirectionIdle, models.StatusIdle)), false},
		{testutil.Fleet(5, testutil.Car(0, 2, models.DirectionIdle, models.StatusIdle), testutil.Car(1, 1, models.DirectionIdle, models.StatusIdle)), false},
		{testutil.Fleet(6, testutil.Car(0, 1, models.DirectionDown, models.StatusMoving), testutil.Car(1, 1, models.DirectionIdle, models.StatusIdle)), false},
	}

	for i, step := range sequence {
		s.Reconcile(step.snap)
		if got := s.IsPending(2, models.DirectionUp); got != step.wantPending {
			t.Errorf("Step %d: expected pending=%v, got %v", i, step.wantPending, got)
		}
	}

	// Stays cleared until re-marked
	s.MarkPending(2, models.DirectionUp)
	if !s.IsPending(2, models.DirectionUp) {
		t.Error("Expected call pending again after re-marking")
	}
}

func TestReconcileIsDeterministic(t *testing.T) {
	snap := testutil.Fleet(1,
		testutil.Car(0, 1, models.DirectionIdle, models.StatusDoorsOpen),
		testutil.Car(1, 2, models.DirectionDown, models.StatusMoving),
	)

	run := func() []Key {
		s := New()
		s.MarkPending(1, models.DirectionUp)
		s.MarkPending(1, models.DirectionDown)
		s.MarkPending(2, models.DirectionDown)
		s.Reconcile(snap)
		s.Reconcile(snap)
		return s.Pending()
	}

	first, second := run(), run()
	if !slices.Equal(first, second) {
		t.Errorf("Same inputs produced %v and %v", first, second)
	}
	if want := []Key{{Floor: 2, Direction: models.DirectionDown}}; !slices.Equal(first, want) {
		t.Errorf("Expected %v, got %v", want, first)
	}
}

func TestReconcileEmptyFleet(t *testing.T) {
	s := New()
	s.MarkPending(0, models.DirectionUp)

	if cleared := s.Reconcile(testutil.Fleet(1)); cleared != nil {
		t.Errorf("Expected nothing cleared, got %v", cleared)
	}
	if !s.IsPending(0, models.DirectionUp) {
		t.Error("Expected call still pending")
	}
}

func TestPendingOrder(t *testing.T) {
	s := New()
	s.MarkPending(2, models.DirectionDown)
	s.MarkPending(0, models.DirectionUp)
	s.MarkPending(1, models.DirectionDown)
	s.MarkPending(1, models.DirectionUp)

	want := []Key{
		{Floor: 0, Direction: models.DirectionUp},
		{Floor: 1, Direction: models.DirectionUp},
		{Floor: 1, Direction: models.DirectionDown},
		{Floor: 2, Direction: models.DirectionDown},
	}
	if got := s.Pending(); !slices.Equal(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestSweepDisabledByDefault(t *testing.T) {
	now := time.Now()
	s := New(WithClock(func() time.Time { return now }))
	s.MarkPending(1, models.DirectionUp)

	now = now.Add(time.Hour)
	if expired := s.Sweep(); expired != nil {
		t.Errorf("Expected no expiry without a timeout, got %v", expired)
	}
	if !s.IsPending(1, models.DirectionUp) {
		t.Error("Expected call still pending")
	}
}

func TestSweepExpiresStaleCalls(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	s := New(WithTimeout(30*time.Second), WithClock(clock))

	s.MarkPending(0, models.DirectionUp)
	now = now.Add(20 * time.Second)
	s.MarkPending(1, models.DirectionDown)

	// Re-marking must not refresh the original mark time
	s.MarkPending(0, models.DirectionUp)

	now = now.Add(10 * time.Second)
	expired := s.Sweep()

	if want := []Key{{Floor: 0, Direction: models.DirectionUp}}; !slices.Equal(expired, want) {
		t.Errorf("Expected %v expired, got %v", want, expired)
	}
	if !s.IsPending(1, models.DirectionDown) {
		t.Error("Expected the younger call to survive the sweep")
	}
}

func TestConcurrentMarkAndReconcile(t *testing.T) {
	s := New()
	snap := testutil.Fleet(1, testutil.Car(0, 3, models.DirectionIdle, models.StatusDoorsOpen))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(floor int) {
			defer wg.Done()
			s.MarkPending(floor%5, models.DirectionUp)
		}(i)
		go func() {
			defer wg.Done()
			s.Reconcile(snap)
		}()
	}
	wg.Wait()

	s.Reconcile(snap)
	if s.IsPending(3, models.DirectionUp) {
		t.Error("Expected (3, UP) cleared after the final reconcile")
	}
	if got := len(s.Pending()); got != 4 {
		t.Errorf("Expected 4 pending calls, got %d", got)
	}
}
