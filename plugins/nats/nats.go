package nats

import (
	"context"
	"fmt"
	"sync"

	"github.com/nats-io/nats.go"

	"github.com/miladsoleymani/intercept/core"
	"github.com/miladsoleymani/intercept/forward"
)

func init() {
	forward.Register("nats", func(cfg forward.Config) (core.Handler, error) {
		if len(cfg.Addrs) == 0 {
			return nil, fmt.Errorf("intercept/nats: at least one server URL is required")
		}
		opts := optsFromConfig(cfg)
		if cfg.Target != "" {
			opts = append(opts, WithSubjectPrefix(cfg.Target))
		}
		sink, err := New(cfg.Addrs[0], opts...)
		if err != nil {
			return nil, err
		}
		id := cfg.ID
		if id == "" {
			id = "nats"
		}
		return forward.NewHandler(id, sink, cfg.Options()...), nil
	})
}

// Sink exports intercepted events to core NATS subjects.
//
// Design decisions:
//   - One NATS connection per Sink instance.
//   - Core NATS (not JetStream): the dispatcher is best-effort in-memory
//     fan-out, so at-most-once fire-and-forget matches its guarantees.
//   - One subject per event kind: "<prefix>.<kind>", e.g. "intercept.publish".
//   - Close drains the connection so buffered publishes are flushed.
type Sink struct {
	conn *nats.Conn
	opts options

	mu     sync.Mutex
	closed bool
}

// New creates a NATS Sink. url is a standard NATS URL (nats://host:port).
func New(url string, fns ...Option) (*Sink, error) {
	opts := defaults()
	for _, fn := range fns {
		fn(&opts)
	}

	nc, err := nats.Connect(url, nats.Name(opts.name))
	if err != nil {
		return nil, fmt.Errorf("intercept/nats: connect to %q: %w", url, err)
	}
	return &Sink{conn: nc, opts: opts}, nil
}

// Send publishes body to the subject derived from route.
func (s *Sink) Send(ctx context.Context, route string, body []byte) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("intercept/nats: sink is closed")
	}
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	subject := s.opts.subjectPrefix + "." + route
	if err := s.conn.Publish(subject, body); err != nil {
		return fmt.Errorf("intercept/nats: publish to %q: %w", subject, err)
	}
	return nil
}

// Close flushes pending publishes and drains the connection.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.conn.FlushTimeout(s.opts.flushTimeout); err != nil {
		s.conn.Close()
		return fmt.Errorf("intercept/nats: flush: %w", err)
	}
	s.conn.Close()
	return nil
}

// optsFromConfig extracts options from forward.Config.Extra.
func optsFromConfig(cfg forward.Config) []Option {
	if cfg.Extra == nil {
		return nil
	}
	var opts []Option
	if v, ok := cfg.Extra["name"].(string); ok {
		opts = append(opts, WithName(v))
	}
	return opts
}
