// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /view", middleware.WithLogging(handler))

Logs one line per request on completion with method, path, status,
client IP and duration_ms.

# CORS Middleware

Enable cross-origin requests from the dashboard:

	server := http.Server{
		Handler: middleware.CORS("http://localhost:3000")(mux),
	}

Listed origins are echoed back with credentials allowed. Other origins get
no grant. Calling CORS with no origins echoes whatever the browser sends.
Allows methods GET, POST, OPTIONS with headers Content-Type and X-Client-ID.
Preflight requests are answered with 204 and never reach the handler.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusAccepted, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies (at most MaxBodyBytes are read):

	var req models.CallRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
