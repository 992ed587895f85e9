// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package feed

import (
	"context"
	"sync"
)

const memoryBuffer = 64

// Memory is an in-process broadcast feed. Publish fans a payload out to
// every open stream in call order.
type Memory struct {
	mu      sync.Mutex
	streams map[*memoryStream]struct{}
	refuse  error
	opens   int
}

func NewMemory() *Memory {
	return &Memory{streams: make(map[*memoryStream]struct{})}
}

func (m *Memory) Open(ctx context.Context) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.opens++
	if m.refuse != nil {
		return nil, m.refuse
	}

	s := &memoryStream{
		owner: m,
		ch:    make(chan []byte, memoryBuffer),
		done:  make(chan struct{}),
	}
	m.streams[s] = struct{}{}
	return s, nil
}

// Publish delivers payload to every open stream. Payloads published while
// no stream is open are lost, as on a real broker topic.
func (m *Memory) Publish(payload []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for s := range m.streams {
		b := make([]byte, len(payload))
		copy(b, payload)
		select {
		case s.ch <- b:
		case <-s.done:
		}
	}
}

// Drop terminates every open stream with ErrConnectionLost.
func (m *Memory) Drop() {
	m.mu.Lock()
	streams := make([]*memoryStream, 0, len(m.streams))
	for s := range m.streams {
		streams = append(streams, s)
	}
	m.mu.Unlock()

	for _, s := range streams {
		s.terminate(ErrConnectionLost)
	}
}

// Refuse makes subsequent handshakes fail with err. A nil err accepts them again.
func (m *Memory) Refuse(err error) {
	m.mu.Lock()
	m.refuse = err
	m.mu.Unlock()
}

// Opens returns the number of handshakes attempted so far.
func (m *Memory) Opens() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opens
}

// Active returns the number of open streams.
func (m *Memory) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.streams)
}

func (m *Memory) remove(s *memoryStream) {
	m.mu.Lock()
	delete(m.streams, s)
	m.mu.Unlock()
}

type memoryStream struct {
	owner *Memory
	ch    chan []byte
	done  chan struct{}
	once  sync.Once
	err   error
}

func (s *memoryStream) Recv() ([]byte, error) {
	select {
	case b := <-s.ch:
		return b, nil
	case <-s.done:
		// Payloads published before the stream ended are still delivered.
		select {
		case b := <-s.ch:
			return b, nil
		default:
			return nil, s.err
		}
	}
}

func (s *memoryStream) Close() error {
	s.terminate(ErrClosed)
	return nil
}

func (s *memoryStream) terminate(err error) {
	s.once.Do(func() {
		s.err = err
		close(s.done)
		s.owner.remove(s)
	})
}
