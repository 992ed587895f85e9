package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"
)

var (
	ErrInvalidDirection = errors.New("invalid direction")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrInvalidFloor     = errors.New("invalid floor")
	ErrDuplicateCar     = errors.New("duplicate elevator id")
)

// Direction is the car's current or most recent travel direction.
type Direction string

const (
	DirectionUp   Direction = "UP"
	DirectionDown Direction = "DOWN"
	DirectionIdle Direction = "IDLE"
)

func (d Direction) Valid() bool {
	switch d {
	case DirectionUp, DirectionDown, DirectionIdle:
		return true
	}
	return false
}

// HallCall reports whether d can be used for a hall call (UP or DOWN only).
func (d Direction) HallCall() bool {
	return d == DirectionUp || d == DirectionDown
}

func (d *Direction) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if !Direction(s).Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
	*d = Direction(s)
	return nil
}

// Status is the mutually exclusive motion/door state of a car.
type Status string

const (
	StatusIdle      Status = "IDLE"
	StatusMoving    Status = "MOVING"
	StatusDoorsOpen Status = "DOORS_OPEN"
)

func (s Status) Valid() bool {
	switch s {
	case StatusIdle, StatusMoving, StatusDoorsOpen:
		return true
	}
	return false
}

func (s *Status) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if !Status(v).Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, v)
	}
	*s = Status(v)
	return nil
}

// Wire types (field names follow the elevator service's JSON)

// Elevator is one car's observable state at an instant.
type Elevator struct {
	ID           int       `json:"id"`
	CurrentFloor int       `json:"currentFloor"`
	Direction    Direction `json:"direction"`
	Status       Status    `json:"status"`
	TargetFloors []int     `json:"targetFloors"`
}

// Validate checks the car against a building of the given height.
// floors <= 0 skips the upper bound checks.
func (e Elevator) Validate(floors int) error {
	if !e.Direction.Valid() {
		return fmt.Errorf("elevator %d: %w: %q", e.ID, ErrInvalidDirection, e.Direction)
	}
	if !e.Status.Valid() {
		return fmt.Errorf("elevator %d: %w: %q", e.ID, ErrInvalidStatus, e.Status)
	}
	if !floorInRange(e.CurrentFloor, floors) {
		return fmt.Errorf("elevator %d: %w: current floor %d", e.ID, ErrInvalidFloor, e.CurrentFloor)
	}
	for _, f := range e.TargetFloors {
		if !floorInRange(f, floors) {
			return fmt.Errorf("elevator %d: %w: target floor %d", e.ID, ErrInvalidFloor, f)
		}
	}
	return nil
}

// HasTarget reports whether floor is one of the car's committed stops.
func (e Elevator) HasTarget(floor int) bool {
	return slices.Contains(e.TargetFloors, floor)
}

func floorInRange(floor, floors int) bool {
	if floor < 0 {
		return false
	}
	return floors <= 0 || floor < floors
}

// FleetSnapshot is the complete fleet view as of one broadcast.
type FleetSnapshot struct {
	Seq        uint64     `json:"seq"`
	ReceivedAt time.Time  `json:"received_at"`
	Elevators  []Elevator `json:"elevators"`
}

// Car returns the car with the given id.
func (s FleetSnapshot) Car(id int) (Elevator, bool) {
	for _, e := range s.Elevators {
		if e.ID == id {
			return e, true
		}
	}
	return Elevator{}, false
}

// PlaceholderFleet returns n idle cars parked on the ground floor.
func PlaceholderFleet(n int) FleetSnapshot {
	cars := make([]Elevator, n)
	for i := range cars {
		cars[i] = Elevator{
			ID:           i,
			Direction:    DirectionIdle,
			Status:       StatusIdle,
			TargetFloors: []int{},
		}
	}
	return FleetSnapshot{Elevators: cars}
}

type CallRequest struct {
	Floor     int       `json:"floor"`
	Direction Direction `json:"direction"`
}

type SelectRequest struct {
	ElevatorID int `json:"elevatorId"`
	Floor      int `json:"floor"`
}

// Gateway request types (POST /calls takes a CallRequest)

type SelectFloorRequest struct {
	Floor int `json:"floor"`
}

// View types

// PanelButton is one button of the in-car floor panel.
type PanelButton struct {
	Floor    int  `json:"floor"`
	Selected bool `json:"selected"`
	Disabled bool `json:"disabled"`
}

// CarView is the rendered state of one car.
type CarView struct {
	ID        int           `json:"id"`
	Label     string        `json:"label"`
	Floor     int           `json:"floor"`
	Status    Status        `json:"status"`
	Motion    string        `json:"motion"`
	Glyph     string        `json:"glyph,omitempty"`
	Top       float64       `json:"top"`
	Height    float64       `json:"height"`
	Hue       int           `json:"hue"`
	Targets   []int         `json:"targets"`
	Panel     []PanelButton `json:"panel"`
	DoorsOpen bool          `json:"doors_open"`
}

// HallButton is one hall-call button on a floor.
type HallButton struct {
	Direction Direction `json:"direction"`
	Active    bool      `json:"active"`
}

// FloorRow is the hall-call control column entry for one floor.
type FloorRow struct {
	Floor   int          `json:"floor"`
	Label   string       `json:"label"`
	Buttons []HallButton `json:"buttons"`
}

type ViewResponse struct {
	Connected   bool       `json:"connected"`
	Floors      int        `json:"floors"`
	Seq         uint64     `json:"seq"`
	Placeholder bool       `json:"placeholder"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	Updated     string     `json:"updated,omitempty"`
	Elevators   []CarView  `json:"elevators"`
	HallCalls   []FloorRow `json:"hall_calls"`
}

// Response types

type PendingCall struct {
	Floor     int       `json:"floor"`
	Direction Direction `json:"direction"`
}

type CallsResponse struct {
	Pending []PendingCall `json:"pending"`
}

type CallResponse struct {
	Floor     int       `json:"floor"`
	Direction Direction `json:"direction"`
	Pending   bool      `json:"pending"`
}

type SelectResponse struct {
	ElevatorID int `json:"elevator_id"`
	Floor      int `json:"floor"`
}

type HistoryEntry struct {
	ID         string     `json:"id"`
	Seq        uint64     `json:"seq"`
	ReceivedAt time.Time  `json:"received_at"`
	CarCount   int        `json:"car_count"`
	Elevators  []Elevator `json:"elevators"`
}

type HistoryResponse struct {
	Entries []HistoryEntry `json:"entries"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
