package forward

import (
	"encoding/json"
	"fmt"

	"github.com/miladsoleymani/intercept/core"
)

// Envelope is the wire form of an intercepted event. One flat shape covers
// every kind; fields that do not apply to a kind are omitted.
type Envelope struct {
	Kind     string `json:"kind"`
	ClientID string `json:"client_id,omitempty"`
	Username string `json:"username,omitempty"`
	Topic    string `json:"topic,omitempty"`
	QoS      byte   `json:"qos,omitempty"`
	Retained bool   `json:"retained,omitempty"`
	PacketID uint16 `json:"packet_id,omitempty"`
	Payload  []byte `json:"payload,omitempty"`
	Handler  string `json:"handler,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Encoder serializes an intercepted event for a Sink. Implement this for
// custom wire formats (Protobuf, Avro, etc.).
type Encoder interface {
	Encode(msg core.Message) ([]byte, error)
}

// JSONEncoder encodes events as JSON envelopes.
type JSONEncoder struct{}

func (JSONEncoder) Encode(msg core.Message) ([]byte, error) {
	env, err := envelope(msg)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("forward: encode %s: %w", msg.Kind(), err)
	}
	return b, nil
}

func envelope(msg core.Message) (Envelope, error) {
	env := Envelope{Kind: msg.Kind().String()}
	switch m := msg.(type) {
	case *core.ConnectMessage:
		env.ClientID = m.ClientID
		env.Username = m.Username
	case *core.DisconnectMessage:
		env.ClientID = m.ClientID
		env.Username = m.Username
	case *core.ConnectionLostMessage:
		env.ClientID = m.ClientID
		env.Username = m.Username
	case *core.PingRequestMessage:
		env.ClientID = m.ClientID
	case *core.PublishMessage:
		env.ClientID = m.ClientID
		env.Username = m.Username
		env.Topic = m.Topic
		env.QoS = byte(m.QoS)
		env.Retained = m.Retained
		env.Payload = m.Payload.Bytes()
	case *core.SubscribeMessage:
		env.ClientID = m.Subscription.ClientID
		env.Username = m.Username
		env.Topic = m.Subscription.TopicFilter
		env.QoS = byte(m.Subscription.RequestedQoS)
	case *core.UnsubscribeMessage:
		env.ClientID = m.ClientID
		env.Username = m.Username
		env.Topic = m.TopicFilter
	case *core.AckedMessage:
		env.Username = m.Username
		env.Topic = m.Topic
		env.QoS = byte(m.QoS)
		env.PacketID = m.PacketID
		env.Payload = m.Payload
	case *core.ExceptionMessage:
		env.Handler = m.HandlerID
		if m.Err != nil {
			env.Error = m.Err.Error()
		}
	default:
		return Envelope{}, fmt.Errorf("forward: unknown message kind %s", msg.Kind())
	}
	return env, nil
}
