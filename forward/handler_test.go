package forward_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/miladsoleymani/intercept/core"
	"github.com/miladsoleymani/intercept/forward"
	"github.com/miladsoleymani/intercept/internal/mock"
)

func TestHandler_ExportsThroughDispatcher(t *testing.T) {
	sink := mock.NewSink()
	h := forward.NewHandler("exporter", sink)

	d := core.New(h)
	d.NotifyClientConnected(core.ConnectData{ClientID: "c1", Username: "alice"})
	d.NotifyTopicPublished(core.PublishData{
		Topic:   "sensors/kitchen/temp",
		QoS:     core.AtLeastOnce,
		Payload: []byte("21.5"),
	}, "c1", "alice")
	d.Stop()

	sent := sink.Sent()
	if len(sent) != 2 {
		t.Fatalf("sink received %d envelopes, want 2", len(sent))
	}
	if sent[0].Route != "connect" || sent[1].Route != "publish" {
		t.Errorf("routes = %s, %s; want connect, publish", sent[0].Route, sent[1].Route)
	}

	var env forward.Envelope
	if err := json.Unmarshal(sent[1].Body, &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if env.Kind != "publish" || env.Topic != "sensors/kitchen/temp" || env.QoS != 1 {
		t.Errorf("envelope = %+v", env)
	}
	if string(env.Payload) != "21.5" {
		t.Errorf("payload = %q, want 21.5", env.Payload)
	}
}

func TestHandler_TopicFilter(t *testing.T) {
	sink := mock.NewSink()
	h := forward.NewHandler("exporter", sink, forward.WithTopicFilter("sensors/#"))

	pub := func(topic string) error {
		p := core.NewPayload([]byte("x"))
		defer p.Release()
		return h.OnPublish(&core.PublishMessage{Topic: topic, Payload: p})
	}

	if err := pub("sensors/kitchen/temp"); err != nil {
		t.Fatalf("matching publish: %v", err)
	}
	if err := pub("admin/metrics"); err != nil {
		t.Fatalf("filtered publish: %v", err)
	}
	// Non-publish kinds are unaffected by the topic filter.
	if err := h.OnDisconnect(&core.DisconnectMessage{ClientID: "c1"}); err != nil {
		t.Fatalf("disconnect: %v", err)
	}

	sent := sink.Sent()
	if len(sent) != 2 {
		t.Fatalf("sink received %d envelopes, want 2", len(sent))
	}
	if sent[0].Route != "publish" || sent[1].Route != "disconnect" {
		t.Errorf("routes = %s, %s", sent[0].Route, sent[1].Route)
	}
}

func TestHandler_KindSubset(t *testing.T) {
	sink := mock.NewSink()
	h := forward.NewHandler("exporter", sink, forward.WithKinds(core.KindConnect))

	kinds := h.InterceptedKinds()
	if len(kinds) != 1 || kinds[0] != core.KindConnect {
		t.Errorf("kinds = %v, want [connect]", kinds)
	}

	d := core.New(h)
	d.NotifyClientConnected(core.ConnectData{ClientID: "c1"})
	d.NotifyClientPing("c1")
	d.Stop()

	if n := len(sink.Sent()); n != 1 {
		t.Errorf("sink received %d envelopes, want 1", n)
	}
}

func TestHandler_NoKindsExportsNothing(t *testing.T) {
	sink := mock.NewSink()
	h := forward.NewHandler("exporter", sink, forward.WithKinds())

	// An empty restriction must not collapse into the nil wildcard.
	if h.InterceptedKinds() == nil {
		t.Fatal("empty restriction yielded nil interest set (wildcard)")
	}

	d := core.New(h)
	d.NotifyClientConnected(core.ConnectData{ClientID: "c1"})
	d.NotifyClientPing("c1")
	d.Stop()

	if n := len(sink.Sent()); n != 0 {
		t.Errorf("sink received %d envelopes, want 0", n)
	}
}

func TestHandler_SinkErrorSurfacesToDispatcher(t *testing.T) {
	sink := mock.NewSink()
	sink.SendErr = errors.New("broker down")
	h := forward.NewHandler("exporter", sink)
	witness := mock.NewHandler("witness", core.KindException)

	d := core.New(h, witness)
	d.NotifyClientPing("c1")
	d.Stop()

	errs := witness.SessionErrors()
	if len(errs) != 1 {
		t.Fatalf("witness saw %d exception events, want 1", len(errs))
	}
	if errs[0].HandlerID != "exporter" {
		t.Errorf("exception handler id = %q, want exporter", errs[0].HandlerID)
	}
}

func TestHandler_Close(t *testing.T) {
	sink := mock.NewSink()
	h := forward.NewHandler("exporter", sink)
	if err := h.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !sink.IsClosed() {
		t.Error("sink not closed")
	}
}

func TestRegistry(t *testing.T) {
	forward.Register("test", func(cfg forward.Config) (core.Handler, error) {
		return forward.NewHandler(cfg.ID, mock.NewSink(), cfg.Options()...), nil
	})

	h, err := forward.Create("test", forward.Config{ID: "h1", Kinds: []core.Kind{core.KindPublish}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if h.ID() != "h1" {
		t.Errorf("ID = %q, want h1", h.ID())
	}
	kinds := h.InterceptedKinds()
	if len(kinds) != 1 || kinds[0] != core.KindPublish {
		t.Errorf("kinds = %v, want [publish]", kinds)
	}

	if _, err := forward.Create("nope", forward.Config{}); err == nil {
		t.Error("expected error for unknown exporter")
	}
}
