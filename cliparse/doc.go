// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Gateway listen port (default: 3000)
  - ServiceURL: Elevator service base URL (default: http://localhost:8080)
  - FeedURL: Broadcast WebSocket URL (default: derived from ServiceURL)
  - FeedTopic: Broadcast topic (default: /topic/elevators)
  - Origin: Origin header presented to the service (default: http://localhost:3000)
  - Floors: Building height (default: 10)
  - Elevators: Placeholder car count before the first snapshot (default: 3)
  - ReconnectDelay: Pause between reconnection attempts (default: 5s)
  - RequestTimeout: Outbound request timeout (default: 5s)
  - CallTimeout: Unconfirmed hall call expiry (default: 0, disabled)
  - DatabaseURL: Snapshot journal connection string (optional)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - Retention: Journal rows older than this are pruned (default: 24h, 0 keeps everything)

# CLI Flags

	-p                Gateway port
	-s                Service URL
	-w                Feed URL
	-topic            Feed topic
	-origin           Origin header
	-floors           Floor count
	-elevators        Placeholder car count
	-reconnect        Reconnect delay
	-request-timeout  Request timeout
	-call-timeout     Hall call expiry
	-d                Database URL
	-t                Database type
	-retention        Journal retention
	-env              Dotenv file (default: .env)

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p
	SERVICE_URL       → -s
	FEED_URL          → -w
	FEED_TOPIC        → -topic
	ORIGIN            → -origin
	FLOORS            → -floors
	ELEVATORS         → -elevators
	RECONNECT_DELAY   → -reconnect
	REQUEST_TIMEOUT   → -request-timeout
	CALL_TIMEOUT      → -call-timeout
	DATABASE_URL      → -d
	DATABASE_TYPE     → -t
	JOURNAL_RETENTION → -retention

CLI flags take precedence over environment variables. The dotenv file is
loaded with godotenv before the fallback runs and never replaces a variable
that is already set. A missing dotenv file is not an error.

Durations use time.ParseDuration syntax ("250ms", "5s", "2m").

# Feed URL

The service exposes its broker through SockJS at /ws. DeriveFeedURL maps the
service URL to the raw WebSocket transport underneath it:

	http://host:8080   → ws://host:8080/ws/websocket
	https://host       → wss://host/ws/websocket

# Validation

ParseFlags returns an error if:

  - the port is outside 1-65535
  - the service URL is not an absolute http(s) URL
  - the feed URL is not ws:// or wss://
  - floors or elevators is below 1
  - a duration fails to parse, the reconnect/request values are not
    positive, or the call timeout or retention is negative
  - the database type is neither sqlite nor postgres

# Example

	// In main.go
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	client := syncclient.New(feed.NewSTOMP(cfg.FeedURL, cfg.FeedTopic, cfg.Origin), syncclient.Options{...})
	mux := router.NewRouter(client, calls, journal, cfg)
*/
package cliparse
