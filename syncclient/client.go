// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package syncclient

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/lift-view/feed"
	"github.com/danielhkuo/lift-view/models"
)

const (
	DefaultReconnectDelay = 5 * time.Second
	DefaultRequestTimeout = 5 * time.Second
)

type Options struct {
	ServiceURL     string // base URL of the elevator service, e.g. http://localhost:8080
	Floors         int    // building height; 0 disables floor bounds checks on payloads
	ReconnectDelay time.Duration
	HTTPClient     *http.Client
	Origin         string
	ClientID       string
}

// Client keeps one live subscription to the fleet broadcast and forwards
// hall and destination calls to the service.
type Client struct {
	feed           feed.Feed
	serviceURL     string
	floors         int
	reconnectDelay time.Duration
	http           *http.Client
	origin         string
	id             string

	connected atomic.Bool

	mu         sync.Mutex
	latest     models.FleetSnapshot
	hasLatest  bool
	seq        uint64
	onSnapshot []func(models.FleetSnapshot)
	onConnect  []func(bool)
	loopCtx    context.Context
	cancel     context.CancelFunc
	done       chan struct{}
}

func New(f feed.Feed, opts Options) *Client {
	if opts.ReconnectDelay <= 0 {
		opts.ReconnectDelay = DefaultReconnectDelay
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: DefaultRequestTimeout}
	}
	if opts.ClientID == "" {
		opts.ClientID = uuid.NewString()
	}

	return &Client{
		feed:           f,
		serviceURL:     strings.TrimRight(opts.ServiceURL, "/"),
		floors:         opts.Floors,
		reconnectDelay: opts.ReconnectDelay,
		http:           opts.HTTPClient,
		origin:         opts.Origin,
		id:             opts.ClientID,
	}
}

// ID returns the client identifier sent with every outbound request.
func (c *Client) ID() string { return c.id }

// OnSnapshot registers cb to run once per accepted broadcast, in arrival order.
// Callbacks run on the client's receive loop and must not block for long.
func (c *Client) OnSnapshot(cb func(models.FleetSnapshot)) {
	c.mu.Lock()
	c.onSnapshot = append(c.onSnapshot, cb)
	c.mu.Unlock()
}

// OnConnectivity registers cb to run whenever the connected flag changes.
func (c *Client) OnConnectivity(cb func(connected bool)) {
	c.mu.Lock()
	c.onConnect = append(c.onConnect, cb)
	c.mu.Unlock()
}

func (c *Client) Connected() bool {
	return c.connected.Load()
}

// Latest returns the last successfully decoded snapshot.
func (c *Client) Latest() (models.FleetSnapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneSnapshot(c.latest), c.hasLatest
}

// Connect starts the subscription loop. It returns immediately; calling it
// again while a loop is running does nothing. The loop ends when ctx is
// cancelled or Disconnect is called.
func (c *Client) Connect(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil && c.loopCtx.Err() == nil {
		return
	}

	// A loop whose parent context ended may still be winding down
	prev := c.done
	if c.cancel != nil {
		c.cancel()
	}

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	c.loopCtx, c.cancel, c.done = loopCtx, cancel, done

	slog.Info("sync client starting", "client_id", c.id)
	go func() {
		if prev != nil {
			<-prev
		}
		c.run(loopCtx, done)
	}()
}

// Disconnect stops the subscription loop and waits for it to exit, so no
// reconnection attempt can follow. Safe to call more than once.
func (c *Client) Disconnect() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.loopCtx, c.cancel, c.done = nil, nil, nil
	c.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	slog.Info("sync client stopped", "client_id", c.id)
}

func (c *Client) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	for {
		stream, err := c.feed.Open(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			slog.Warn("feed connect failed", "error", err, "retry_in", c.reconnectDelay)
		} else {
			c.setConnected(true)
			slog.Info("connected to fleet feed", "client_id", c.id)

			c.consume(ctx, stream)

			c.setConnected(false)
			if ctx.Err() != nil {
				return
			}
			slog.Warn("disconnected from fleet feed", "retry_in", c.reconnectDelay)
		}

		timer := time.NewTimer(c.reconnectDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// consume reads the stream until it fails or ctx is cancelled.
func (c *Client) consume(ctx context.Context, stream feed.Stream) {
	stop := make(chan struct{})
	defer close(stop)
	defer stream.Close()

	go func() {
		select {
		case <-ctx.Done():
			stream.Close()
		case <-stop:
		}
	}()

	for {
		payload, err := stream.Recv()
		if err != nil {
			if ctx.Err() == nil {
				slog.Warn("fleet feed lost", "error", err)
			}
			return
		}
		if ctx.Err() != nil {
			return
		}
		c.handle(payload)
	}
}

func (c *Client) handle(payload []byte) {
	cars, err := DecodeFleet(payload, c.floors)
	if err != nil {
		slog.Warn("discarding fleet snapshot", "error", err, "bytes", len(payload))
		return
	}

	c.mu.Lock()
	c.seq++
	snap := models.FleetSnapshot{
		Seq:        c.seq,
		ReceivedAt: time.Now(),
		Elevators:  cars,
	}
	c.latest = snap
	c.hasLatest = true
	callbacks := append([]func(models.FleetSnapshot){}, c.onSnapshot...)
	c.mu.Unlock()

	slog.Debug("fleet snapshot", "seq", snap.Seq, "cars", len(cars))
	for _, cb := range callbacks {
		cb(cloneSnapshot(snap))
	}
}

func (c *Client) setConnected(v bool) {
	if c.connected.Swap(v) == v {
		return
	}

	c.mu.Lock()
	callbacks := append([]func(bool){}, c.onConnect...)
	c.mu.Unlock()

	for _, cb := range callbacks {
		cb(v)
	}
}

func cloneSnapshot(s models.FleetSnapshot) models.FleetSnapshot {
	if s.Elevators == nil {
		return s
	}
	cars := make([]models.Elevator, len(s.Elevators))
	for i, e := range s.Elevators {
		e.TargetFloors = append([]int{}, e.TargetFloors...)
		cars[i] = e
	}
	s.Elevators = cars
	return s
}
