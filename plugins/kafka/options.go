package kafka

import "github.com/segmentio/kafka-go"

// Option configures the Kafka sink.
type Option func(*options)

type options struct {
	topic     string
	balancer  kafka.Balancer
	batchSize int
	async     bool
}

func defaults() options {
	return options{
		topic:    "intercept-events",
		balancer: &kafka.Hash{},
	}
}

// WithTopic sets the destination topic.
func WithTopic(topic string) Option {
	return func(o *options) { o.topic = topic }
}

// WithBalancer sets the partition balancer. The default hashes the message
// key (the event kind), keeping each kind on one partition.
func WithBalancer(b kafka.Balancer) Option {
	return func(o *options) { o.balancer = b }
}

// WithBatchSize sets the writer batch size.
func WithBatchSize(n int) Option {
	return func(o *options) { o.batchSize = n }
}

// WithAsync makes writes fire-and-forget. Send errors are no longer
// reported, but the dispatch loop never waits on broker acks.
func WithAsync(async bool) Option {
	return func(o *options) { o.async = async }
}
