// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles the optional snapshot journal.

# Connecting

Open accepts the two supported database types:

	conn, err := db.Open("sqlite", "file:journal.db")
	conn, err := db.Open("postgres", "postgres://...")

SQLite uses modernc.org/sqlite (pure Go) and PostgreSQL uses lib/pq.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - fleet_snapshot: one row per accepted broadcast (seq, receive time,
    car count and the decoded fleet as JSON)

# Journal

	j := db.NewJournal(conn, client.ID())
	j.Record(ctx, snap)
	entries, err := j.Recent(ctx, 20)

The service broadcasts about once a second, so the table grows without
bound unless pruned. Prune deletes rows older than a cutoff using the
received_at index:

	removed, err := j.Prune(ctx, time.Now().Add(-24*time.Hour))

The journal is observational only. A failed write is logged by the
caller and has no effect on the live view.
*/
package db
