package mock

import (
	"context"
	"sync"
)

// Sink is a test double for forward.Sink. It records every sent envelope.
type Sink struct {
	SendErr error

	mu     sync.Mutex
	sent   []SentEnvelope
	closed bool
}

// SentEnvelope records one Send call.
type SentEnvelope struct {
	Route string
	Body  []byte
}

func NewSink() *Sink { return &Sink{} }

func (s *Sink) Send(_ context.Context, route string, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SendErr != nil {
		return s.SendErr
	}
	b := make([]byte, len(body))
	copy(b, body)
	s.sent = append(s.sent, SentEnvelope{Route: route, Body: b})
	return nil
}

func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Sent returns all envelopes sent so far.
func (s *Sink) Sent() []SentEnvelope {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SentEnvelope, len(s.sent))
	copy(out, s.sent)
	return out
}

// IsClosed reports whether Close was called.
func (s *Sink) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
