// Package forward turns intercepted broker events into messages on external
// infrastructure. A Handler is a core.Handler that encodes each event it
// receives and hands it to a Sink; the plugins under plugins/ supply Sinks
// for NATS, Kafka and RabbitMQ.
package forward

import (
	"context"
	"time"

	"github.com/miladsoleymani/intercept/core"
)

// Sink is the transport half of an export handler. Send is called on the
// dispatch goroutine, so a slow sink delays subsequent deliveries — size
// timeouts accordingly.
type Sink interface {
	Send(ctx context.Context, route string, body []byte) error
	Close() error
}

// Option configures a Handler.
type Option func(*options)

type options struct {
	encoder     Encoder
	kinds       []core.Kind
	topicFilter string
	matcher     core.TopicMatcher
	sendTimeout time.Duration
}

func defaults() options {
	return options{
		encoder:     JSONEncoder{},
		matcher:     core.MQTTMatcher{},
		sendTimeout: 5 * time.Second,
	}
}

// WithEncoder replaces the JSON envelope encoder.
func WithEncoder(e Encoder) Option {
	return func(o *options) { o.encoder = e }
}

// WithKinds restricts the handler to the given event kinds. The default is
// wildcard interest; passing no kinds exports nothing.
func WithKinds(kinds ...core.Kind) Option {
	return func(o *options) {
		if kinds == nil {
			kinds = []core.Kind{}
		}
		o.kinds = kinds
	}
}

// WithTopicFilter exports only publishes whose topic matches the MQTT-style
// filter. Other event kinds are unaffected.
func WithTopicFilter(filter string) Option {
	return func(o *options) { o.topicFilter = filter }
}

// WithMatcher replaces the topic matcher used by WithTopicFilter.
func WithMatcher(m core.TopicMatcher) Option {
	return func(o *options) { o.matcher = m }
}

// WithSendTimeout bounds each Sink.Send call. Zero disables the deadline.
func WithSendTimeout(d time.Duration) Option {
	return func(o *options) { o.sendTimeout = d }
}

// Handler exports intercepted events through a Sink. It implements
// core.Handler; register it on a dispatcher like any other handler.
type Handler struct {
	id   string
	sink Sink
	opts options
}

// NewHandler creates an export handler with the given registration identity.
func NewHandler(id string, sink Sink, fns ...Option) *Handler {
	opts := defaults()
	for _, fn := range fns {
		fn(&opts)
	}
	return &Handler{id: id, sink: sink, opts: opts}
}

func (h *Handler) ID() string                    { return h.id }
func (h *Handler) InterceptedKinds() []core.Kind { return h.opts.kinds }

// Close closes the underlying sink. Remove the handler from the dispatcher
// (and Flush) before closing, or in-flight deliveries will hit a dead sink.
func (h *Handler) Close() error { return h.sink.Close() }

func (h *Handler) emit(msg core.Message) error {
	body, err := h.opts.encoder.Encode(msg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if h.opts.sendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.opts.sendTimeout)
		defer cancel()
	}
	return h.sink.Send(ctx, msg.Kind().String(), body)
}

func (h *Handler) OnConnect(m *core.ConnectMessage) error               { return h.emit(m) }
func (h *Handler) OnDisconnect(m *core.DisconnectMessage) error         { return h.emit(m) }
func (h *Handler) OnConnectionLost(m *core.ConnectionLostMessage) error { return h.emit(m) }
func (h *Handler) OnPingRequest(m *core.PingRequestMessage) error       { return h.emit(m) }

func (h *Handler) OnPublish(m *core.PublishMessage) error {
	if h.opts.topicFilter != "" && !h.opts.matcher.Match(h.opts.topicFilter, m.Topic) {
		return nil
	}
	return h.emit(m)
}

func (h *Handler) OnSubscribe(m *core.SubscribeMessage) error       { return h.emit(m) }
func (h *Handler) OnUnsubscribe(m *core.UnsubscribeMessage) error   { return h.emit(m) }
func (h *Handler) OnMessageAcknowledged(m *core.AckedMessage) error { return h.emit(m) }

func (h *Handler) OnSessionError(m *core.ExceptionMessage) {
	// Best effort: a failing export of a failure report is not re-reported.
	_ = h.emit(m)
}
