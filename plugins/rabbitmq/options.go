package rabbitmq

// Option configures the RabbitMQ sink.
type Option func(*options)

type options struct {
	exchange     string
	exchangeType string
	durable      bool
	mandatory    bool
}

func defaults() options {
	return options{
		exchange:     "intercept",
		exchangeType: "topic",
		durable:      true,
	}
}

// WithExchange sets the destination exchange and its type.
func WithExchange(name, kind string) Option {
	return func(o *options) {
		o.exchange = name
		o.exchangeType = kind
	}
}

// WithDurable controls whether the exchange is declared durable.
func WithDurable(durable bool) Option {
	return func(o *options) { o.durable = durable }
}

// WithMandatory makes unroutable events come back as returns instead of
// being dropped silently by the broker.
func WithMandatory(mandatory bool) Option {
	return func(o *options) { o.mandatory = mandatory }
}
