// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package hallcalls tracks pending hall calls on the client.

A hall call is pending from the moment the user presses a floor button
until a snapshot shows a car at that floor with its doors open:

	store := hallcalls.New()
	store.MarkPending(2, models.DirectionDown)

	client.OnSnapshot(func(snap models.FleetSnapshot) {
		store.Reconcile(snap)
	})

	store.IsPending(2, models.DirectionDown)

The service never learns about pending state; it is an optimistic overlay
on the authoritative snapshots and is always cleared by them. Cancel
withdraws a call whose request never left the client.

# Timeout Fallback

WithTimeout enables Sweep, which drops calls that stayed pending too long.
Clearing on a timer can make a button look re-clickable before any car
has arrived, so it is disabled by default and never replaces Reconcile.
*/
package hallcalls
