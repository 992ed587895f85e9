// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the lift-view gateway.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(client, calls, journal, cfg)

journal may be nil, in which case /history answers 404.

# Endpoints

Health:

	GET /health

Rendering:

	GET /view  - Projected fleet, hall-call column, connectivity
	GET /calls - Pending hall calls

Commands (forwarded to the elevator service):

	POST /calls                  - Place a hall call
	POST /elevators/{id}/select  - Add a destination for a car

Journal:

	GET /history?limit=N - Recent fleet snapshots, newest first

Every route except /health and / is wrapped with middleware.WithLogging.
CORS is applied by the caller around the whole mux.

# Handler Initialization

The router creates handler instances with dependency injection:

	viewHandler := handlers.NewViewHandler(fleet, calls, cfg)
	callHandler := handlers.NewCallHandler(fleet, calls, cfg)
	historyHandler := handlers.NewHistoryHandler(journal)

View and call handlers share the same hall-call store, so a call placed
through POST /calls lights its button in GET /view until a snapshot
answers it.
*/
package router
