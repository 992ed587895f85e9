// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the lift-view gateway.

lift-view is the client side of a multi-elevator simulation. It subscribes
to the elevator service's fleet broadcasts over STOMP, keeps the latest
fleet snapshot, reconciles locally pressed hall-call buttons against what
the cars actually do, and serves the projected building view as JSON.

# Starting the Server

With the elevator service on its default port nothing needs configuring:

	go run .

Or with flags:

	go run . -p 3000 -s http://localhost:8080 -floors 10

# Configuration

All settings are optional; see package cliparse for the full list.

  - SERVICE_URL (-s): Elevator service base URL
  - FEED_URL (-w): Broadcast WebSocket, derived from SERVICE_URL by default
  - FLOORS (-floors): Building height
  - CALL_TIMEOUT (-call-timeout): Expire unconfirmed hall calls (0 disables)
  - DATABASE_URL (-d): Enables the snapshot journal

A .env file in the working directory is loaded when present.

# Architecture

  - feed: Broadcast transport (STOMP over WebSocket, in-memory for tests)
  - syncclient: Subscription lifecycle, reconnection, outbound requests
  - hallcalls: Pending hall-call set and its reconciliation
  - projector: Shaft geometry, motion labels, building layout
  - handlers: HTTP request handlers (view, calls, history)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Snapshot, wire and view types
  - db: Schema creation and the snapshot journal
  - cliparse: Configuration parsing

Every accepted snapshot is reconciled against the hall-call store and then
written to the journal when one is configured. Journal failures are logged
and never block reconciliation.

See package documentation for each component.
*/
package main
