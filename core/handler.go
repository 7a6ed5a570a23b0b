package core

// Handler is the plugin boundary: an observer of broker lifecycle events.
//
// ID must be stable and unique per registration; registering a second handler
// with the same ID replaces the first. InterceptedKinds is read once, at
// registration time — changing the returned set afterwards has no effect
// until the handler is re-registered. A nil slice (or AllKinds) declares
// wildcard interest.
//
// Every callback runs on the single dispatch goroutine, strictly serialized
// with all other deliveries and registry changes. A callback that blocks
// stalls the whole dispatcher; that is a documented property, not a bug.
// Returning an error (or panicking) never disturbs other handlers: the
// failure is converted into an ExceptionMessage and routed to handlers
// interested in KindException.
type Handler interface {
	ID() string
	InterceptedKinds() []Kind

	OnConnect(*ConnectMessage) error
	OnDisconnect(*DisconnectMessage) error
	OnConnectionLost(*ConnectionLostMessage) error
	OnPingRequest(*PingRequestMessage) error
	OnPublish(*PublishMessage) error
	OnSubscribe(*SubscribeMessage) error
	OnUnsubscribe(*UnsubscribeMessage) error
	OnMessageAcknowledged(*AckedMessage) error

	// OnSessionError receives dispatch-loop failures: errors fed in through
	// NotifyLoopError and failures of other handlers' callbacks.
	OnSessionError(*ExceptionMessage)
}

// NopHandler is a convenience base with wildcard interest and no-op
// callbacks. Embed it and override the callbacks you care about:
//
//	type auditor struct{ core.NopHandler }
//
//	func (auditor) ID() string { return "auditor" }
//
//	func (a auditor) OnPublish(m *core.PublishMessage) error {
//	    log.Printf("publish on %s", m.Topic)
//	    return nil
//	}
//
// NopHandler deliberately does not implement ID, so every embedder must
// supply its own identity.
type NopHandler struct{}

func (NopHandler) InterceptedKinds() []Kind { return nil }

func (NopHandler) OnConnect(*ConnectMessage) error               { return nil }
func (NopHandler) OnDisconnect(*DisconnectMessage) error         { return nil }
func (NopHandler) OnConnectionLost(*ConnectionLostMessage) error { return nil }
func (NopHandler) OnPingRequest(*PingRequestMessage) error       { return nil }
func (NopHandler) OnPublish(*PublishMessage) error               { return nil }
func (NopHandler) OnSubscribe(*SubscribeMessage) error           { return nil }
func (NopHandler) OnUnsubscribe(*UnsubscribeMessage) error       { return nil }
func (NopHandler) OnMessageAcknowledged(*AckedMessage) error     { return nil }
func (NopHandler) OnSessionError(*ExceptionMessage)              {}
