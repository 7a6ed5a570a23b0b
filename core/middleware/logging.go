package middleware

import (
	"log"
	"time"

	"github.com/miladsoleymani/intercept/core"
)

// Logging wraps h so that every delivered event is logged with its kind,
// the handler id, and the callback duration. Failed callbacks log at the
// same place with the error attached.
func Logging(h core.Handler) core.Handler {
	return &loggingHandler{inner: h}
}

type loggingHandler struct {
	inner core.Handler
}

func (l *loggingHandler) ID() string                    { return l.inner.ID() }
func (l *loggingHandler) InterceptedKinds() []core.Kind { return l.inner.InterceptedKinds() }

func (l *loggingHandler) observe(kind core.Kind, clientID string, fn func() error) error {
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)

	if err != nil {
		log.Printf("[Intercept] ERROR handler=%s kind=%s client=%s elapsed=%s err=%v",
			l.inner.ID(), kind, clientID, elapsed, err)
	} else {
		log.Printf("[Intercept] OK    handler=%s kind=%s client=%s elapsed=%s",
			l.inner.ID(), kind, clientID, elapsed)
	}
	return err
}

func (l *loggingHandler) OnConnect(m *core.ConnectMessage) error {
	return l.observe(core.KindConnect, m.ClientID, func() error { return l.inner.OnConnect(m) })
}

func (l *loggingHandler) OnDisconnect(m *core.DisconnectMessage) error {
	return l.observe(core.KindDisconnect, m.ClientID, func() error { return l.inner.OnDisconnect(m) })
}

func (l *loggingHandler) OnConnectionLost(m *core.ConnectionLostMessage) error {
	return l.observe(core.KindConnectionLost, m.ClientID, func() error { return l.inner.OnConnectionLost(m) })
}

func (l *loggingHandler) OnPingRequest(m *core.PingRequestMessage) error {
	return l.observe(core.KindPingRequest, m.ClientID, func() error { return l.inner.OnPingRequest(m) })
}

func (l *loggingHandler) OnPublish(m *core.PublishMessage) error {
	return l.observe(core.KindPublish, m.ClientID, func() error { return l.inner.OnPublish(m) })
}

func (l *loggingHandler) OnSubscribe(m *core.SubscribeMessage) error {
	return l.observe(core.KindSubscribe, m.Subscription.ClientID, func() error { return l.inner.OnSubscribe(m) })
}

func (l *loggingHandler) OnUnsubscribe(m *core.UnsubscribeMessage) error {
	return l.observe(core.KindUnsubscribe, m.ClientID, func() error { return l.inner.OnUnsubscribe(m) })
}

func (l *loggingHandler) OnMessageAcknowledged(m *core.AckedMessage) error {
	return l.observe(core.KindAcked, "", func() error { return l.inner.OnMessageAcknowledged(m) })
}

func (l *loggingHandler) OnSessionError(m *core.ExceptionMessage) {
	log.Printf("[Intercept] LOOP  handler=%s source=%s err=%v", l.inner.ID(), m.HandlerID, m.Err)
	l.inner.OnSessionError(m)
}
