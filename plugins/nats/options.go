package nats

import "time"

// Option configures the NATS sink.
type Option func(*options)

type options struct {
	subjectPrefix string
	name          string
	flushTimeout  time.Duration
}

func defaults() options {
	return options{
		subjectPrefix: "intercept",
		name:          "intercept-exporter",
		flushTimeout:  5 * time.Second,
	}
}

// WithSubjectPrefix sets the subject prefix; events are published to
// "<prefix>.<kind>".
func WithSubjectPrefix(prefix string) Option {
	return func(o *options) { o.subjectPrefix = prefix }
}

// WithName sets the NATS connection name.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithFlushTimeout bounds the flush performed on Close.
func WithFlushTimeout(d time.Duration) Option {
	return func(o *options) { o.flushTimeout = d }
}
