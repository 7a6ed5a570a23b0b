package middleware

import (
	"time"

	"github.com/miladsoleymani/intercept/core"
)

// Collector is the interface that metrics backends must implement. This
// keeps the middleware decoupled from any specific metrics library.
type Collector interface {
	// EventDelivered records one delivery to one handler. kind is the event
	// kind, duration is callback time, and err is nil on success.
	EventDelivered(handler string, kind core.Kind, duration time.Duration, err error)
}

// Metrics wraps h so that every callback invocation is reported to the
// given collector.
func Metrics(collector Collector, h core.Handler) core.Handler {
	return &metricsHandler{inner: h, collector: collector}
}

type metricsHandler struct {
	inner     core.Handler
	collector Collector
}

func (m *metricsHandler) ID() string                    { return m.inner.ID() }
func (m *metricsHandler) InterceptedKinds() []core.Kind { return m.inner.InterceptedKinds() }

func (m *metricsHandler) observe(kind core.Kind, fn func() error) error {
	start := time.Now()
	err := fn()
	m.collector.EventDelivered(m.inner.ID(), kind, time.Since(start), err)
	return err
}

func (m *metricsHandler) OnConnect(msg *core.ConnectMessage) error {
	return m.observe(core.KindConnect, func() error { return m.inner.OnConnect(msg) })
}

func (m *metricsHandler) OnDisconnect(msg *core.DisconnectMessage) error {
	return m.observe(core.KindDisconnect, func() error { return m.inner.OnDisconnect(msg) })
}

func (m *metricsHandler) OnConnectionLost(msg *core.ConnectionLostMessage) error {
	return m.observe(core.KindConnectionLost, func() error { return m.inner.OnConnectionLost(msg) })
}

func (m *metricsHandler) OnPingRequest(msg *core.PingRequestMessage) error {
	return m.observe(core.KindPingRequest, func() error { return m.inner.OnPingRequest(msg) })
}

func (m *metricsHandler) OnPublish(msg *core.PublishMessage) error {
	return m.observe(core.KindPublish, func() error { return m.inner.OnPublish(msg) })
}

func (m *metricsHandler) OnSubscribe(msg *core.SubscribeMessage) error {
	return m.observe(core.KindSubscribe, func() error { return m.inner.OnSubscribe(msg) })
}

func (m *metricsHandler) OnUnsubscribe(msg *core.UnsubscribeMessage) error {
	return m.observe(core.KindUnsubscribe, func() error { return m.inner.OnUnsubscribe(msg) })
}

func (m *metricsHandler) OnMessageAcknowledged(msg *core.AckedMessage) error {
	return m.observe(core.KindAcked, func() error { return m.inner.OnMessageAcknowledged(msg) })
}

func (m *metricsHandler) OnSessionError(msg *core.ExceptionMessage) {
	start := time.Now()
	m.inner.OnSessionError(msg)
	m.collector.EventDelivered(m.inner.ID(), core.KindException, time.Since(start), nil)
}
