// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/lift-view/cliparse"
	"github.com/danielhkuo/lift-view/db"
	"github.com/danielhkuo/lift-view/models"
)

// TestDBURL is an in-memory SQLite database private to one connection
const TestDBURL = "file::memory:"

// SetupTestDB opens a fresh in-memory journal database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open("sqlite", TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// Every pooled connection would get its own empty memory database
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3000,
		ServiceURL:     "http://localhost:8080",
		FeedURL:        "ws://localhost:8080/ws/websocket",
		FeedTopic:      "/topic/elevators",
		Floors:         3,
		Elevators:      3,
		ReconnectDelay: 10 * time.Millisecond,
		RequestTimeout: time.Second,
		DatabaseType:   "sqlite",
	}
}

// Car builds an elevator snapshot entry
func Car(id, floor int, dir models.Direction, status models.Status, targets ...int) models.Elevator {
	if targets == nil {
		targets = []int{}
	}
	return models.Elevator{
		ID:           id,
		CurrentFloor: floor,
		Direction:    dir,
		Status:       status,
		TargetFloors: targets,
	}
}

// Fleet wraps cars in a snapshot with the given sequence number
func Fleet(seq uint64, cars ...models.Elevator) models.FleetSnapshot {
	if cars == nil {
		cars = []models.Elevator{}
	}
	return models.FleetSnapshot{Seq: seq, ReceivedAt: time.Now(), Elevators: cars}
}

// FleetJSON encodes cars the way the elevator service broadcasts them
func FleetJSON(t *testing.T, cars ...models.Elevator) []byte {
	t.Helper()
	if cars == nil {
		cars = []models.Elevator{}
	}
	b, err := json.Marshal(cars)
	if err != nil {
		t.Fatalf("Failed to encode fleet: %v", err)
	}
	return b
}

// Eventually polls cond until it holds or two seconds pass
func Eventually(t *testing.T, cond func() bool, msg string) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Condition not met: %s", msg)
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		var reader *bytes.Reader
		if raw, ok := body.(string); ok {
			reader = bytes.NewReader([]byte(raw))
		} else {
			jsonBody, _ := json.Marshal(body)
			reader = bytes.NewReader(jsonBody)
		}
		req = httptest.NewRequest(method, path, reader)
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
