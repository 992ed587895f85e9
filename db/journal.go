// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/lift-view/models"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 500
)

// Journal appends accepted fleet snapshots for later inspection.
type Journal struct {
	db       *sql.DB
	clientID string
}

func NewJournal(db *sql.DB, clientID string) *Journal {
	return &Journal{db: db, clientID: clientID}
}

// Record stores one snapshot.
func (j *Journal) Record(ctx context.Context, snap models.FleetSnapshot) error {
	cars := snap.Elevators
	if cars == nil {
		cars = []models.Elevator{}
	}
	payload, err := json.Marshal(cars)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	_, err = j.db.ExecContext(ctx, `
		INSERT INTO fleet_snapshot (id, client_id, seq, received_at, car_count, payload)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.NewString(), j.clientID, int64(snap.Seq), snap.ReceivedAt.UnixNano(), len(cars), string(payload))
	if err != nil {
		return fmt.Errorf("failed to record snapshot %d: %w", snap.Seq, err)
	}
	return nil
}

// Prune deletes snapshots received before cutoff and returns how many
// rows went.
func (j *Journal) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := j.db.ExecContext(ctx, `
		DELETE FROM fleet_snapshot WHERE received_at < $1
	`, cutoff.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("failed to prune snapshots: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned snapshots: %w", err)
	}
	return n, nil
}

// Recent returns up to limit snapshots, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]models.HistoryEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	rows, err := j.db.QueryContext(ctx, `
		SELECT id, seq, received_at, car_count, payload
		FROM fleet_snapshot
		ORDER BY received_at DESC, seq DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	entries := []models.HistoryEntry{}
	for rows.Next() {
		var (
			e          models.HistoryEntry
			seq        int64
			receivedAt int64
			payload    string
		)
		if err := rows.Scan(&e.ID, &seq, &receivedAt, &e.CarCount, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &e.Elevators); err != nil {
			return nil, fmt.Errorf("failed to decode snapshot %s: %w", e.ID, err)
		}
		e.Seq = uint64(seq)
		e.ReceivedAt = time.Unix(0, receivedAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read snapshots: %w", err)
	}
	return entries, nil
}
