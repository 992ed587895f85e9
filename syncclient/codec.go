// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package syncclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/danielhkuo/lift-view/models"
)

var ErrMalformedSnapshot = errors.New("malformed fleet snapshot")

// DecodeFleet parses one broadcast payload: a JSON array with one entry per car.
// floors > 0 also bounds-checks every floor index. Target floors are
// returned sorted and de-duplicated.
func DecodeFleet(payload []byte, floors int) ([]models.Elevator, error) {
	var cars []models.Elevator
	if err := json.Unmarshal(payload, &cars); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	if cars == nil {
		return nil, fmt.Errorf("%w: payload is not an array", ErrMalformedSnapshot)
	}

	seen := make(map[int]bool, len(cars))
	for i := range cars {
		if err := cars[i].Validate(floors); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedSnapshot, err)
		}
		if seen[cars[i].ID] {
			return nil, fmt.Errorf("%w: %w: %d", ErrMalformedSnapshot, models.ErrDuplicateCar, cars[i].ID)
		}
		seen[cars[i].ID] = true

		targets := slices.Clone(cars[i].TargetFloors)
		if targets == nil {
			targets = []int{}
		}
		slices.Sort(targets)
		cars[i].TargetFloors = slices.Compact(targets)
	}

	return cars, nil
}
