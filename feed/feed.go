// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package feed

import (
	"context"
	"errors"
)

var (
	ErrClosed         = errors.New("stream closed")
	ErrConnectionLost = errors.New("connection lost")
	ErrRefused        = errors.New("handshake refused")
)

// Feed opens subscriptions to the fleet-state broadcast channel.
type Feed interface {
	// Open performs the handshake. A nil error means the subscription is live.
	Open(ctx context.Context) (Stream, error)
}

// Stream is one live subscription.
type Stream interface {
	// Recv blocks until the next payload arrives. Any error means the
	// subscription is gone.
	Recv() ([]byte, error)
	// Close releases the subscription and unblocks Recv. Safe to call more than once.
	Close() error
}
