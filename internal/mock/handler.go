package mock

import (
	"sync"

	"github.com/miladsoleymani/intercept/core"
)

// Handler is a test double for core.Handler. It records every delivered
// message in order and can be told to fail or panic on specific kinds.
type Handler struct {
	HandlerID string
	Kinds     []core.Kind // nil means wildcard

	// FailWith makes the callback for a kind return the given error.
	FailWith map[core.Kind]error
	// PanicOn makes the callback for a kind panic with the given value.
	PanicOn map[core.Kind]any

	// RetainPublishes makes OnPublish take its own payload reference.
	RetainPublishes bool

	mu     sync.Mutex
	events []core.Message
	bodies []string
	errors []*core.ExceptionMessage
}

func NewHandler(id string, kinds ...core.Kind) *Handler {
	return &Handler{HandlerID: id, Kinds: kinds}
}

func (h *Handler) ID() string                    { return h.HandlerID }
func (h *Handler) InterceptedKinds() []core.Kind { return h.Kinds }

func (h *Handler) record(m core.Message) error {
	h.mu.Lock()
	h.events = append(h.events, m)
	h.mu.Unlock()

	if v, ok := h.PanicOn[m.Kind()]; ok {
		panic(v)
	}
	return h.FailWith[m.Kind()]
}

func (h *Handler) OnConnect(m *core.ConnectMessage) error               { return h.record(m) }
func (h *Handler) OnDisconnect(m *core.DisconnectMessage) error         { return h.record(m) }
func (h *Handler) OnConnectionLost(m *core.ConnectionLostMessage) error { return h.record(m) }
func (h *Handler) OnPingRequest(m *core.PingRequestMessage) error       { return h.record(m) }
func (h *Handler) OnSubscribe(m *core.SubscribeMessage) error           { return h.record(m) }
func (h *Handler) OnUnsubscribe(m *core.UnsubscribeMessage) error       { return h.record(m) }
func (h *Handler) OnMessageAcknowledged(m *core.AckedMessage) error     { return h.record(m) }

// OnPublish snapshots the payload bytes while the callback still holds them;
// the dispatcher releases its reference right after the fan-out.
func (h *Handler) OnPublish(m *core.PublishMessage) error {
	h.mu.Lock()
	h.bodies = append(h.bodies, m.Payload.String())
	h.mu.Unlock()
	if h.RetainPublishes {
		m.Payload.Retain()
	}
	return h.record(m)
}

func (h *Handler) OnSessionError(m *core.ExceptionMessage) {
	h.mu.Lock()
	h.events = append(h.events, m)
	h.errors = append(h.errors, m)
	h.mu.Unlock()
}

// Events returns a snapshot of everything delivered so far, in order.
func (h *Handler) Events() []core.Message {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]core.Message, len(h.events))
	copy(out, h.events)
	return out
}

// OfKind returns the delivered messages of one kind, in order.
func (h *Handler) OfKind(k core.Kind) []core.Message {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []core.Message
	for _, m := range h.events {
		if m.Kind() == k {
			out = append(out, m)
		}
	}
	return out
}

// PublishBodies returns the payload contents observed by OnPublish, in order.
func (h *Handler) PublishBodies() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.bodies))
	copy(out, h.bodies)
	return out
}

// SessionErrors returns the exception events delivered so far.
func (h *Handler) SessionErrors() []*core.ExceptionMessage {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*core.ExceptionMessage, len(h.errors))
	copy(out, h.errors)
	return out
}
