package forward

import "github.com/miladsoleymani/intercept/core"

// Config holds sink-agnostic export configuration. Plugins extract the
// fields they need.
type Config struct {
	// Addrs is a list of broker addresses (e.g., "localhost:9092").
	Addrs []string

	// Target is the destination namespace: a NATS subject prefix, a Kafka
	// topic, or an AMQP exchange, depending on the plugin.
	Target string

	// ID is the handler's registration identity. Plugins default it to the
	// plugin name when empty.
	ID string

	// Kinds restricts which event kinds are exported; nil exports all.
	Kinds []core.Kind

	// TopicFilter restricts exported publishes to matching topics.
	TopicFilter string

	// Extra holds plugin-specific configuration.
	Extra map[string]any
}

// Options translates the sink-agnostic fields into Handler options.
// Plugin factories append their own options to the result.
func (c Config) Options() []Option {
	var opts []Option
	if c.Kinds != nil {
		opts = append(opts, WithKinds(c.Kinds...))
	}
	if c.TopicFilter != "" {
		opts = append(opts, WithTopicFilter(c.TopicFilter))
	}
	return opts
}
