// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package projector

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/danielhkuo/lift-view/models"
	"github.com/danielhkuo/lift-view/testutil"
)

const epsilon = 1e-9

func TestPositionStaysInShaft(t *testing.T) {
	for total := 1; total <= 50; total++ {
		height, err := Extent(total)
		if err != nil {
			t.Fatalf("Extent(%d) failed: %v", total, err)
		}
		for floor := 0; floor < total; floor++ {
			top, err := Position(floor, total)
			if err != nil {
				t.Fatalf("Position(%d, %d) failed: %v", floor, total, err)
			}
			if top < 0 || top >= 1 {
				t.Errorf("Position(%d, %d) = %v, outside [0,1)", floor, total, top)
			}
			if top+height > 1+epsilon {
				t.Errorf("Car at floor %d of %d overflows the shaft: %v + %v", floor, total, top, height)
			}
		}

		top, _ := Position(total-1, total)
		if top != 0 {
			t.Errorf("Top floor of %d should project to 0, got %v", total, top)
		}
	}
}

func TestPositionExamples(t *testing.T) {
	tests := []struct {
		floor, total int
		want         float64
	}{
		{1, 3, 1.0 / 3},
		{0, 3, 2.0 / 3},
		{2, 3, 0},
		{0, 10, 0.9},
		{0, 1, 0},
	}

	for _, tt := range tests {
		got, err := Position(tt.floor, tt.total)
		if err != nil {
			t.Fatalf("Position(%d, %d) failed: %v", tt.floor, tt.total, err)
		}
		if math.Abs(got-tt.want) > epsilon {
			t.Errorf("Position(%d, %d) = %v, want %v", tt.floor, tt.total, got, tt.want)
		}
	}
}

func TestPositionRejectsBadInput(t *testing.T) {
	tests := []struct {
		name         string
		floor, total int
		want         error
	}{
		{"zero floors", 0, 0, ErrInvalidFloorCount},
		{"negative floors", 0, -3, ErrInvalidFloorCount},
		{"floor above top", 3, 3, ErrFloorOutOfRange},
		{"negative floor", -1, 3, ErrFloorOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Position(tt.floor, tt.total); !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}

	if _, err := Extent(0); !errors.Is(err, ErrInvalidFloorCount) {
		t.Errorf("Extent(0): expected ErrInvalidFloorCount, got %v", err)
	}
}

func TestClassifyMotion(t *testing.T) {
	tests := map[models.Status]string{
		models.StatusIdle:       "Idle",
		models.StatusMoving:     "Moving",
		models.StatusDoorsOpen:  "Doors Open",
		models.Status("BROKEN"): "",
	}
	for status, want := range tests {
		if got := ClassifyMotion(status); got != want {
			t.Errorf("ClassifyMotion(%s) = %q, want %q", status, got, want)
		}
	}
}

func TestDirectionGlyph(t *testing.T) {
	tests := map[models.Direction]string{
		models.DirectionUp:   GlyphUp,
		models.DirectionDown: GlyphDown,
		models.DirectionIdle: "",
	}
	for dir, want := range tests {
		if got := DirectionGlyph(dir); got != want {
			t.Errorf("DirectionGlyph(%s) = %q, want %q", dir, got, want)
		}
	}
}

func TestProjectMovingCar(t *testing.T) {
	snap := testutil.Fleet(1, testutil.Car(0, 1, models.DirectionUp, models.StatusMoving, 2))

	views, err := Project(snap, 3)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("Expected 1 view, got %d", len(views))
	}

	v := views[0]
	if v.Motion != "Moving" {
		t.Errorf("Expected motion 'Moving', got %q", v.Motion)
	}
	if v.Glyph != GlyphUp {
		t.Errorf("Expected up arrow, got %q", v.Glyph)
	}
	if math.Abs(v.Top-1.0/3) > epsilon || math.Abs(v.Height-1.0/3) > epsilon {
		t.Errorf("Expected top=height=1/3, got top=%v height=%v", v.Top, v.Height)
	}
	if v.Label != "Elevator 1" {
		t.Errorf("Expected label 'Elevator 1', got %q", v.Label)
	}
	if !slices.Equal(v.Targets, []int{2}) {
		t.Errorf("Expected targets [2], got %v", v.Targets)
	}
}

func TestProjectGlyphOnlyWhileMoving(t *testing.T) {
	snap := testutil.Fleet(1,
		testutil.Car(0, 2, models.DirectionUp, models.StatusDoorsOpen),
		testutil.Car(1, 0, models.DirectionDown, models.StatusIdle),
	)

	views, err := Project(snap, 3)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	for _, v := range views {
		if v.Glyph != "" {
			t.Errorf("Car %d is not moving but shows glyph %q", v.ID, v.Glyph)
		}
	}
	if !views[0].DoorsOpen || views[0].Motion != "Doors Open" {
		t.Errorf("Expected car 0 doors open, got %+v", views[0])
	}
}

func TestProjectPanel(t *testing.T) {
	snap := testutil.Fleet(1, testutil.Car(1, 1, models.DirectionUp, models.StatusMoving, 3, 0))

	views, err := Project(snap, 4)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}

	want := []models.PanelButton{
		{Floor: 0, Selected: true},
		{Floor: 1, Disabled: true},
		{Floor: 2},
		{Floor: 3, Selected: true},
	}
	if !slices.Equal(views[0].Panel, want) {
		t.Errorf("Expected panel %+v, got %+v", want, views[0].Panel)
	}
	if views[0].Hue != 60 {
		t.Errorf("Expected hue 60 for car 1, got %d", views[0].Hue)
	}
}

func TestProjectReplacesFleet(t *testing.T) {
	first := testutil.Fleet(1,
		testutil.Car(0, 0, models.DirectionIdle, models.StatusIdle),
		testutil.Car(1, 1, models.DirectionIdle, models.StatusIdle),
		testutil.Car(2, 2, models.DirectionIdle, models.StatusIdle),
	)
	second := testutil.Fleet(2,
		testutil.Car(0, 1, models.DirectionUp, models.StatusMoving),
		testutil.Car(2, 2, models.DirectionIdle, models.StatusIdle),
	)

	if _, err := Project(first, 3); err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	views, err := Project(second, 3)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}

	if len(views) != 2 {
		t.Fatalf("Expected 2 views, got %d", len(views))
	}
	for _, v := range views {
		if v.ID == 1 {
			t.Error("Car 1 was removed and must not be projected")
		}
	}
}

func TestProjectRejectsOutOfRangeCar(t *testing.T) {
	snap := testutil.Fleet(1, testutil.Car(0, 5, models.DirectionIdle, models.StatusIdle))

	if _, err := Project(snap, 3); !errors.Is(err, ErrFloorOutOfRange) {
		t.Errorf("Expected ErrFloorOutOfRange, got %v", err)
	}
	if _, err := Project(snap, 0); !errors.Is(err, ErrInvalidFloorCount) {
		t.Errorf("Expected ErrInvalidFloorCount, got %v", err)
	}
}

func TestFloorsLayout(t *testing.T) {
	pending := func(floor int, dir models.Direction) bool {
		return floor == 1 && dir == models.DirectionDown
	}

	rows, err := Floors(3, pending)
	if err != nil {
		t.Fatalf("Floors failed: %v", err)
	}

	want := []models.FloorRow{
		{Floor: 2, Label: "Floor 2", Buttons: []models.HallButton{{Direction: models.DirectionDown}}},
		{Floor: 1, Label: "Floor 1", Buttons: []models.HallButton{{Direction: models.DirectionUp}, {Direction: models.DirectionDown, Active: true}}},
		{Floor: 0, Label: "Floor 0", Buttons: []models.HallButton{{Direction: models.DirectionUp}}},
	}

	if len(rows) != len(want) {
		t.Fatalf("Expected %d rows, got %d", len(want), len(rows))
	}
	for i := range want {
		if rows[i].Floor != want[i].Floor || rows[i].Label != want[i].Label {
			t.Errorf("Row %d: expected %s, got %s", i, want[i].Label, rows[i].Label)
		}
		if !slices.Equal(rows[i].Buttons, want[i].Buttons) {
			t.Errorf("Row %d: expected buttons %+v, got %+v", i, want[i].Buttons, rows[i].Buttons)
		}
	}
}

func TestHasButton(t *testing.T) {
	tests := []struct {
		floor int
		dir   models.Direction
		want  bool
	}{
		{0, models.DirectionUp, true},
		{0, models.DirectionDown, false},
		{4, models.DirectionUp, false},
		{4, models.DirectionDown, true},
		{2, models.DirectionIdle, false},
		{5, models.DirectionDown, false},
	}
	for _, tt := range tests {
		if got := HasButton(tt.floor, 5, tt.dir); got != tt.want {
			t.Errorf("HasButton(%d, 5, %s) = %v, want %v", tt.floor, tt.dir, got, tt.want)
		}
	}

	if rows, _ := Floors(1, nil); len(rows) != 1 || len(rows[0].Buttons) != 0 {
		t.Errorf("A single-floor building has no hall buttons, got %+v", rows)
	}
}
