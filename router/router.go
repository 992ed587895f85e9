// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/lift-view/cliparse"
	"github.com/danielhkuo/lift-view/db"
	"github.com/danielhkuo/lift-view/hallcalls"
	"github.com/danielhkuo/lift-view/handlers"
	"github.com/danielhkuo/lift-view/middleware"
)

// NewRouter registers every gateway route. journal may be nil.
func NewRouter(fleet handlers.Fleet, calls *hallcalls.Store, journal *db.Journal, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	viewHandler := handlers.NewViewHandler(fleet, calls, cfg)
	callHandler := handlers.NewCallHandler(fleet, calls, cfg)
	historyHandler := handlers.NewHistoryHandler(journal)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Rendering
	mux.HandleFunc("GET /view", middleware.WithLogging(viewHandler.GetView))
	mux.HandleFunc("GET /calls", middleware.WithLogging(viewHandler.GetCalls))

	// Commands toward the elevator service
	mux.HandleFunc("POST /calls", middleware.WithLogging(callHandler.CreateCall))
	mux.HandleFunc("POST /elevators/{id}/select", middleware.WithLogging(callHandler.SelectFloor))

	// Journal
	mux.HandleFunc("GET /history", middleware.WithLogging(historyHandler.GetHistory))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("lift-view API v1"))
	})

	return mux
}
