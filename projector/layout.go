// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package projector

import (
	"fmt"

	"github.com/danielhkuo/lift-view/models"
)

// HasButton reports whether floor carries a hall button for dir. The top
// floor has no UP button and the ground floor no DOWN button.
func HasButton(floor, totalFloors int, dir models.Direction) bool {
	if floor < 0 || floor >= totalFloors {
		return false
	}
	switch dir {
	case models.DirectionUp:
		return floor < totalFloors-1
	case models.DirectionDown:
		return floor > 0
	}
	return false
}

// Floors lays out the hall-call column from the top floor down. isPending
// marks buttons whose call has not been answered yet.
func Floors(totalFloors int, isPending func(floor int, dir models.Direction) bool) ([]models.FloorRow, error) {
	if totalFloors <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFloorCount, totalFloors)
	}

	rows := make([]models.FloorRow, 0, totalFloors)
	for floor := totalFloors - 1; floor >= 0; floor-- {
		row := models.FloorRow{
			Floor:   floor,
			Label:   fmt.Sprintf("Floor %d", floor),
			Buttons: []models.HallButton{},
		}
		for _, dir := range []models.Direction{models.DirectionUp, models.DirectionDown} {
			if !HasButton(floor, totalFloors, dir) {
				continue
			}
			row.Buttons = append(row.Buttons, models.HallButton{
				Direction: dir,
				Active:    isPending != nil && isPending(floor, dir),
			})
		}
		rows = append(rows, row)
	}
	return rows, nil
}
