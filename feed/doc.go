// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package feed abstracts the fleet-state broadcast channel.

# Interfaces

A Feed performs the subscription handshake and returns a live Stream:

	stream, err := f.Open(ctx)
	for {
		payload, err := stream.Recv()
		if err != nil {
			break // transport loss
		}
		// decode payload
	}
	stream.Close()

The synchronization client only depends on these two interfaces, so the
reconciliation and projection logic can be driven by a synthetic feed.

# STOMP

STOMP is the production adapter. The elevator service runs a STOMP broker
behind a SockJS endpoint; the raw WebSocket transport lives at
/ws/websocket and state is broadcast on /topic/elevators:

	f := feed.NewSTOMP("ws://localhost:8080/ws/websocket", feed.DefaultTopic, "http://localhost:3000")

The broker checks the Origin header against its allowed origins, so the
dialer sends the configured origin.

Open returns once the broker has acknowledged CONNECT and SUBSCRIBE. The
whole handshake is bounded by HandshakeTimeout (10 seconds by default), and
cancelling ctx closes the socket, so a broker that upgrades and then goes
quiet cannot stall the caller.

# Memory

Memory is an in-process feed for tests:

	m := feed.NewMemory()
	m.Publish([]byte(`[...]`)) // deliver to every open stream
	m.Drop()                   // simulate transport loss
	m.Refuse(feed.ErrRefused)  // fail subsequent handshakes
*/
package feed
