// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package projector

import (
	"errors"
	"fmt"
	"slices"

	"github.com/danielhkuo/lift-view/models"
)

var (
	ErrInvalidFloorCount = errors.New("floor count must be positive")
	ErrFloorOutOfRange   = errors.New("floor out of range")
)

const (
	GlyphUp   = "▲"
	GlyphDown = "▼"
)

// Position returns the car's top offset as a fraction of the shaft height.
// The top floor maps to 0 and the ground floor to (totalFloors-1)/totalFloors.
func Position(currentFloor, totalFloors int) (float64, error) {
	if totalFloors <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidFloorCount, totalFloors)
	}
	if currentFloor < 0 || currentFloor >= totalFloors {
		return 0, fmt.Errorf("%w: %d of %d", ErrFloorOutOfRange, currentFloor, totalFloors)
	}
	return float64(totalFloors-1-currentFloor) / float64(totalFloors), nil
}

// Extent returns the fraction of the shaft one car occupies.
func Extent(totalFloors int) (float64, error) {
	if totalFloors <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidFloorCount, totalFloors)
	}
	return 1 / float64(totalFloors), nil
}

func ClassifyMotion(status models.Status) string {
	switch status {
	case models.StatusDoorsOpen:
		return "Doors Open"
	case models.StatusMoving:
		return "Moving"
	case models.StatusIdle:
		return "Idle"
	default:
		return ""
	}
}

func DirectionGlyph(dir models.Direction) string {
	switch dir {
	case models.DirectionUp:
		return GlyphUp
	case models.DirectionDown:
		return GlyphDown
	default:
		return ""
	}
}

// Project renders every car in snap. The result is built from scratch, so
// cars missing from snap never appear in it.
func Project(snap models.FleetSnapshot, totalFloors int) ([]models.CarView, error) {
	height, err := Extent(totalFloors)
	if err != nil {
		return nil, err
	}

	views := make([]models.CarView, 0, len(snap.Elevators))
	for _, e := range snap.Elevators {
		top, err := Position(e.CurrentFloor, totalFloors)
		if err != nil {
			return nil, fmt.Errorf("elevator %d: %w", e.ID, err)
		}

		targets := slices.Clone(e.TargetFloors)
		if targets == nil {
			targets = []int{}
		}
		slices.Sort(targets)

		v := models.CarView{
			ID:        e.ID,
			Label:     fmt.Sprintf("Elevator %d", e.ID+1),
			Floor:     e.CurrentFloor,
			Status:    e.Status,
			Motion:    ClassifyMotion(e.Status),
			Top:       top,
			Height:    height,
			Hue:       e.ID * 60,
			Targets:   targets,
			Panel:     panel(e, totalFloors),
			DoorsOpen: e.Status == models.StatusDoorsOpen,
		}
		// The direction arrow is only shown while travelling
		if e.Status == models.StatusMoving {
			v.Glyph = DirectionGlyph(e.Direction)
		}
		views = append(views, v)
	}
	return views, nil
}

func panel(e models.Elevator, totalFloors int) []models.PanelButton {
	buttons := make([]models.PanelButton, totalFloors)
	for f := range buttons {
		buttons[f] = models.PanelButton{
			Floor:    f,
			Selected: e.HasTarget(f),
			Disabled: e.CurrentFloor == f,
		}
	}
	return buttons
}
