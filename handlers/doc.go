// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the lift-view gateway.

# Handler Types

Each handler is a struct with its dependencies injected by constructor:

  - ViewHandler: Rendered fleet view and the pending hall-call list
  - CallHandler: Hall calls and in-car destination selection
  - HistoryHandler: Snapshot journal retrieval

The fleet side is any Fleet, which *syncclient.Client satisfies:

	viewHandler := handlers.NewViewHandler(client, calls, cfg)
	callHandler := handlers.NewCallHandler(client, calls, cfg)
	historyHandler := handlers.NewHistoryHandler(journal) // journal may be nil

# Rendering

	GET /view  → GetView
	GET /calls → GetCalls

GetView projects the latest snapshot onto the shaft. Before the first
snapshot arrives it renders cfg.Elevators idle placeholder cars on the
ground floor and reports placeholder=true. The hall-call column is built
from the pending set, top floor first.

# Hall Calls

	POST /calls {floor, direction} → CreateCall

The floor must have a button in that direction (no UP on the top floor,
no DOWN on the ground floor). The call is marked pending and forwarded
to the service, and the response is 202 with pending=true. Only a
snapshot delivered after the press can clear it; the latest snapshot may
be arbitrarily old while the feed is down, so a car that had its doors
open there before the press does not count.

If the fleet rejects the request outright, a call that this press marked
is withdrawn and the response is 400. Delivery failures toward the
service are logged by the client and never surface here. The call stays
pending until a snapshot answers it.

# Destination Selection

	POST /elevators/{id}/select {floor} → SelectFloor

Status codes:

  - 400: bad id, bad JSON, floor out of range
  - 404: no car with that id in the latest snapshot
  - 409: the car is already at that floor
  - 503: no snapshot has been received yet
  - 202: request forwarded

# History

	GET /history?limit=N → GetHistory

Returns the newest journal entries first (default 20, at most 500).
Responds 404 when the journal is disabled.
*/
package handlers
