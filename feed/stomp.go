// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-stomp/stomp/v3"
	"github.com/gorilla/websocket"
)

const (
	DefaultTopic     = "/topic/elevators"
	handshakeTimeout = 10 * time.Second
)

// STOMP subscribes to a topic on a STOMP broker reached over WebSocket.
type STOMP struct {
	URL    string // ws:// or wss:// endpoint, e.g. ws://localhost:8080/ws/websocket
	Topic  string
	Origin string // sent as the Origin header when set
	Dialer *websocket.Dialer

	// HandshakeTimeout bounds the dial plus STOMP CONNECT and SUBSCRIBE.
	// Zero means 10 seconds.
	HandshakeTimeout time.Duration
}

func NewSTOMP(rawURL, topic, origin string) *STOMP {
	if topic == "" {
		topic = DefaultTopic
	}
	return &STOMP{URL: rawURL, Topic: topic, Origin: origin}
}

func (f *STOMP) Open(ctx context.Context) (Stream, error) {
	u, err := url.Parse(f.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid feed URL: %w", err)
	}

	timeout := f.HandshakeTimeout
	if timeout <= 0 {
		timeout = handshakeTimeout
	}

	dialer := f.Dialer
	if dialer == nil {
		dialer = &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: timeout,
		}
	}

	header := http.Header{}
	if f.Origin != "" {
		header.Set("Origin", f.Origin)
	}

	ws, resp, err := dialer.DialContext(ctx, u.String(), header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("websocket dial %s: %s: %w", u.Redacted(), resp.Status, err)
		}
		return nil, fmt.Errorf("websocket dial %s: %w", u.Redacted(), err)
	}

	// A broker that upgrades but never answers CONNECT must not hold the caller
	ws.SetReadDeadline(time.Now().Add(timeout))
	handshakeDone := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			ws.Close()
		case <-handshakeDone:
		}
	}()

	conn, sub, err := f.handshake(ws, u)
	close(handshakeDone)
	if err == nil && ctx.Err() != nil {
		conn.MustDisconnect()
		err = ctx.Err()
	}
	if err != nil {
		ws.Close()
		return nil, err
	}
	ws.SetReadDeadline(time.Time{})

	slog.Debug("stomp subscription open", "url", u.Redacted(), "topic", f.Topic)
	return &stompStream{ws: ws, conn: conn, sub: sub}, nil
}

func (f *STOMP) handshake(ws *websocket.Conn, u *url.URL) (*stomp.Conn, *stomp.Subscription, error) {
	conn, err := stomp.Connect(&wsConn{ws: ws}, stomp.ConnOpt.Host(u.Hostname()))
	if err != nil {
		return nil, nil, fmt.Errorf("stomp connect: %w", err)
	}

	sub, err := conn.Subscribe(f.Topic, stomp.AckAuto)
	if err != nil {
		conn.MustDisconnect()
		return nil, nil, fmt.Errorf("stomp subscribe %s: %w", f.Topic, err)
	}
	return conn, sub, nil
}

type stompStream struct {
	ws   *websocket.Conn
	conn *stomp.Conn
	sub  *stomp.Subscription
	once sync.Once
}

func (s *stompStream) Recv() ([]byte, error) {
	msg, ok := <-s.sub.C
	if !ok {
		return nil, ErrConnectionLost
	}
	if msg.Err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionLost, msg.Err)
	}
	return msg.Body, nil
}

func (s *stompStream) Close() error {
	var err error
	s.once.Do(func() {
		// MustDisconnect does not wait for a receipt, so it cannot hang on a dead peer.
		s.conn.MustDisconnect()
		err = s.ws.Close()
	})
	return err
}

// wsConn presents a WebSocket as the byte stream go-stomp expects.
// Inbound messages are concatenated; each Write becomes one text message.
type wsConn struct {
	ws  *websocket.Conn
	r   io.Reader
	wmu sync.Mutex
}

func (c *wsConn) Read(p []byte) (int, error) {
	for {
		if c.r == nil {
			_, r, err := c.ws.NextReader()
			if err != nil {
				return 0, err
			}
			c.r = r
		}

		n, err := c.r.Read(p)
		if err == io.EOF {
			c.r = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

func (c *wsConn) Write(p []byte) (int, error) {
	c.wmu.Lock()
	defer c.wmu.Unlock()

	if err := c.ws.WriteMessage(websocket.TextMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *wsConn) Close() error {
	return c.ws.Close()
}
