// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the elevator snapshot model, the service wire types,
and the view types served by the gateway.

# Snapshot Model

Each car is described by an Elevator value that is replaced wholesale on
every broadcast:

  - ID: stable identity assigned by the service
  - CurrentFloor: 0-indexed from the ground floor
  - Direction: UP, DOWN or IDLE
  - Status: IDLE, MOVING or DOORS_OPEN
  - TargetFloors: floors the car is committed to visit

A FleetSnapshot holds every car from one broadcast, plus the client-side
sequence number and receive time. DOORS_OPEN is the only status that
confirms a car has arrived at its floor.

# Wire Types

The service speaks camelCase JSON:

  - Elevator: id, currentFloor, direction, status, targetFloors
  - CallRequest: floor, direction
  - SelectRequest: elevatorId, floor

Direction and Status reject unknown values while decoding, so a payload
with an unexpected enum is treated as malformed.

# View Types

Types for gateway JSON responses:

  - ViewResponse: connectivity, projected cars, hall-call column
  - CarView: position, motion text, direction glyph, floor panel
  - FloorRow: hall buttons for one floor
  - CallsResponse, CallResponse, SelectResponse
  - HistoryResponse: journal entries
  - ErrorResponse: error, message
*/
package models
