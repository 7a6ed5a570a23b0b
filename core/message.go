package core

// Kind identifies one of the closed set of broker lifecycle events the
// dispatcher can deliver. The set is fixed: handlers declare interest in
// kinds, and filtering is plain membership — there is no kind hierarchy.
type Kind uint8

const (
	KindConnect Kind = iota
	KindDisconnect
	KindConnectionLost
	KindPingRequest
	KindPublish
	KindSubscribe
	KindUnsubscribe
	KindAcked
	KindException
)

var kindNames = [...]string{
	KindConnect:        "connect",
	KindDisconnect:     "disconnect",
	KindConnectionLost: "connection_lost",
	KindPingRequest:    "ping_request",
	KindPublish:        "publish",
	KindSubscribe:      "subscribe",
	KindUnsubscribe:    "unsubscribe",
	KindAcked:          "acked",
	KindException:      "exception",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// AllKinds lists every message kind. Handlers may return it from
// InterceptedKinds to declare wildcard interest; returning nil means the same.
var AllKinds = []Kind{
	KindConnect, KindDisconnect, KindConnectionLost, KindPingRequest,
	KindPublish, KindSubscribe, KindUnsubscribe, KindAcked, KindException,
}

// QoS is the MQTT quality-of-service level attached to publishes and
// subscriptions.
type QoS byte

const (
	AtMostOnce  QoS = 0
	AtLeastOnce QoS = 1
	ExactlyOnce QoS = 2
)

// Message is an immutable snapshot of a single broker event. Concrete
// messages are built by the dispatcher facade and must not be mutated by
// handlers; they may outlive the producer call that created them.
type Message interface {
	Kind() Kind
}

// ConnectData is the already-decoded CONNECT handshake handed to the
// dispatcher by the broker's I/O path. WillPayload remains owned by the
// caller; the facade copies it into the snapshot.
type ConnectData struct {
	ClientID        string
	Username        string
	ProtocolVersion byte
	CleanSession    bool
	KeepAlive       uint16
	WillTopic       string
	WillPayload     []byte
}

// ConnectMessage reports a client connection.
type ConnectMessage struct {
	ClientID        string
	Username        string
	ProtocolVersion byte
	CleanSession    bool
	KeepAlive       uint16
	WillTopic       string
	WillPayload     []byte
}

func (*ConnectMessage) Kind() Kind { return KindConnect }

// DisconnectMessage reports a clean client disconnect.
type DisconnectMessage struct {
	ClientID string
	Username string
}

func (*DisconnectMessage) Kind() Kind { return KindDisconnect }

// ConnectionLostMessage reports an abnormal connection loss.
type ConnectionLostMessage struct {
	ClientID string
	Username string
}

func (*ConnectionLostMessage) Kind() Kind { return KindConnectionLost }

// PingRequestMessage reports a PINGREQ from a client.
type PingRequestMessage struct {
	ClientID string
}

func (*PingRequestMessage) Kind() Kind { return KindPingRequest }

// PublishData is a raw publish handed to the dispatcher. Payload is still
// owned by the caller; the facade copies it before enqueueing, so the caller
// may reuse or free its buffer as soon as the notify call returns.
type PublishData struct {
	Topic    string
	QoS      QoS
	Retained bool
	Payload  []byte
}

// PublishMessage reports a message published to a topic. Payload is the
// dispatcher's owned copy; it is valid for the duration of the callback and
// released by the dispatch actor after the fan-out. Handlers that keep the
// bytes past their callback must Retain a reference of their own.
type PublishMessage struct {
	ClientID string
	Username string
	Topic    string
	QoS      QoS
	Retained bool
	Payload  *Payload
}

func (*PublishMessage) Kind() Kind { return KindPublish }

// Subscription is one client subscription: who, to which filter, at what QoS.
type Subscription struct {
	ClientID     string
	TopicFilter  string
	RequestedQoS QoS
}

// SubscribeMessage reports a new subscription.
type SubscribeMessage struct {
	Subscription Subscription
	Username     string
}

func (*SubscribeMessage) Kind() Kind { return KindSubscribe }

// UnsubscribeMessage reports a removed subscription.
type UnsubscribeMessage struct {
	TopicFilter string
	ClientID    string
	Username    string
}

func (*UnsubscribeMessage) Kind() Kind { return KindUnsubscribe }

// AckData describes an acknowledged in-flight message. Payload remains owned
// by the caller; the facade copies it.
type AckData struct {
	Topic    string
	Username string
	PacketID uint16
	QoS      QoS
	Payload  []byte
}

// AckedMessage reports a message acknowledgment. Payload is a plain copy made
// at notify time; unlike PublishMessage it carries no refcount, the snapshot
// simply owns its bytes.
type AckedMessage struct {
	Topic    string
	Username string
	PacketID uint16
	QoS      QoS
	Payload  []byte
}

func (*AckedMessage) Kind() Kind { return KindAcked }

// ExceptionMessage reports a failure inside the dispatch loop: either an
// error fed in via NotifyLoopError or a handler callback that failed.
// HandlerID and FailedKind are zero for loop-level errors.
type ExceptionMessage struct {
	Err        error
	HandlerID  string
	FailedKind Kind
}

func (*ExceptionMessage) Kind() Kind { return KindException }

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
