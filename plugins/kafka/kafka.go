package kafka

import (
	"context"
	"fmt"
	"sync"

	"github.com/segmentio/kafka-go"

	"github.com/miladsoleymani/intercept/core"
	"github.com/miladsoleymani/intercept/forward"
)

func init() {
	forward.Register("kafka", func(cfg forward.Config) (core.Handler, error) {
		opts := optsFromConfig(cfg)
		if cfg.Target != "" {
			opts = append(opts, WithTopic(cfg.Target))
		}
		sink, err := New(cfg.Addrs, opts...)
		if err != nil {
			return nil, err
		}
		id := cfg.ID
		if id == "" {
			id = "kafka"
		}
		return forward.NewHandler(id, sink, cfg.Options()...), nil
	})
}

// Sink exports intercepted events to a single Kafka topic.
//
// Design decisions:
//   - One kafka.Writer shared across all Send calls (thread-safe by library);
//     only the dispatch goroutine calls Send anyway.
//   - The event kind travels as the message key, so per-kind ordering within
//     a partition is preserved and consumers can route on it.
//   - RequireAll acks by default; WithAsync trades delivery reporting for
//     dispatch-loop latency.
type Sink struct {
	writer *kafka.Writer
	topic  string

	mu     sync.Mutex
	closed bool
}

// New creates a Kafka Sink.
func New(addrs []string, fns ...Option) (*Sink, error) {
	if len(addrs) == 0 {
		return nil, fmt.Errorf("intercept/kafka: at least one broker address is required")
	}

	opts := defaults()
	for _, fn := range fns {
		fn(&opts)
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(addrs...),
		Topic:        opts.topic,
		Balancer:     opts.balancer,
		BatchSize:    opts.batchSize,
		Async:        opts.async,
		RequiredAcks: kafka.RequireAll,
	}

	return &Sink{writer: w, topic: opts.topic}, nil
}

// Send writes body to the configured topic, keyed by route.
func (s *Sink) Send(ctx context.Context, route string, body []byte) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("intercept/kafka: sink is closed")
	}
	s.mu.Unlock()

	km := kafka.Message{
		Key:   []byte(route),
		Value: body,
	}
	if err := s.writer.WriteMessages(ctx, km); err != nil {
		return fmt.Errorf("intercept/kafka: write to %q: %w", s.topic, err)
	}
	return nil
}

// Close flushes and closes the writer.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.writer.Close(); err != nil {
		return fmt.Errorf("intercept/kafka: close writer: %w", err)
	}
	return nil
}

// optsFromConfig extracts options from forward.Config.Extra.
func optsFromConfig(cfg forward.Config) []Option {
	if cfg.Extra == nil {
		return nil
	}
	var opts []Option
	if v, ok := cfg.Extra["async"].(bool); ok && v {
		opts = append(opts, WithAsync(true))
	}
	if v, ok := cfg.Extra["batch_size"].(int); ok {
		opts = append(opts, WithBatchSize(v))
	}
	return opts
}
