package core

import (
	"fmt"
	"log"
	"sync"
)

// task is the unit flowing through the dispatch queue. Exactly one consumer
// (the dispatch goroutine) pops tasks in enqueue order, which gives registry
// mutations and deliveries a single global order.
type task interface{ isTask() }

type deliverTask struct{ msg Message }
type addTask struct{ handler Handler }
type removeTask struct{ id string }
type barrierTask struct{ done chan struct{} }
type stopTask struct{}

func (deliverTask) isTask() {}
func (addTask) isTask()     {}
func (removeTask) isTask()  {}
func (barrierTask) isTask() {}
func (stopTask) isTask()    {}

// Dispatcher fans broker lifecycle events out to registered handlers.
//
// The Notify*, AddHandler and RemoveHandler methods are the producer facade:
// safe for any number of goroutines, and non-blocking except for a brief
// wait when the task queue is full. They never run handler code. All
// deliveries and all registry mutations happen on one internal goroutine, so
// a Remove enqueued before a Deliver is guaranteed to suppress that
// delivery; tasks enqueued concurrently from unrelated goroutines carry no
// ordering promise relative to each other.
//
// Handler callbacks execute synchronously on the dispatch goroutine. A slow
// handler therefore delays every later delivery; no per-handler timeout is
// imposed.
//
// After Stop has begun, every facade method is a silent no-op.
type Dispatcher struct {
	tasks  chan task
	exited chan struct{}

	// stopMu serializes shutdown against in-flight enqueues: producers hold
	// the read side across their channel send, so once Stop takes the write
	// side every accepted task is already queued and the stop task goes in
	// strictly last.
	stopMu   sync.RWMutex
	stopped  bool
	stopOnce sync.Once

	// read-only after construction
	pingEnabled bool

	// owned by the dispatch goroutine
	reg *registry
}

// New creates a started dispatcher with default configuration, pre-seeded
// with the given handlers. It cannot fail; use NewWithConfig to supply
// broker properties.
func New(handlers ...Handler) *Dispatcher {
	d, err := NewWithConfig(Config{}, handlers...)
	if err != nil {
		// Config{} is always valid.
		panic(err)
	}
	return d
}

// NewWithConfig creates a started dispatcher. The handler list seeds the
// registry before the dispatch goroutine starts, so the initial handlers
// observe every notification. Invalid configuration fails here, never later.
func NewWithConfig(cfg Config, handlers ...Handler) (*Dispatcher, error) {
	ping, err := cfg.interceptPing()
	if err != nil {
		return nil, err
	}
	size := cfg.QueueSize
	if size < 0 {
		return nil, ErrInvalidQueueSize
	}
	if size == 0 {
		size = defaultQueueSize
	}

	d := &Dispatcher{
		tasks:       make(chan task, size),
		exited:      make(chan struct{}),
		pingEnabled: ping,
		reg:         newRegistry(handlers),
	}
	go d.run()
	return d, nil
}

// ---------------------------------------------------------------------------
// Producer facade
// ---------------------------------------------------------------------------

// NotifyClientConnected reports a completed CONNECT handshake.
func (d *Dispatcher) NotifyClientConnected(c ConnectData) {
	d.enqueue(deliverTask{msg: &ConnectMessage{
		ClientID:        c.ClientID,
		Username:        c.Username,
		ProtocolVersion: c.ProtocolVersion,
		CleanSession:    c.CleanSession,
		KeepAlive:       c.KeepAlive,
		WillTopic:       c.WillTopic,
		WillPayload:     cloneBytes(c.WillPayload),
	}})
}

// NotifyClientDisconnected reports a clean disconnect.
func (d *Dispatcher) NotifyClientDisconnected(clientID, username string) {
	d.enqueue(deliverTask{msg: &DisconnectMessage{ClientID: clientID, Username: username}})
}

// NotifyClientConnectionLost reports an abnormal connection loss.
func (d *Dispatcher) NotifyClientConnectionLost(clientID, username string) {
	d.enqueue(deliverTask{msg: &ConnectionLostMessage{ClientID: clientID, Username: username}})
}

// NotifyClientPing reports a PINGREQ. When the intercept.pingreq property
// was false at construction this returns without enqueueing anything.
func (d *Dispatcher) NotifyClientPing(clientID string) {
	if !d.pingEnabled {
		return
	}
	d.enqueue(deliverTask{msg: &PingRequestMessage{ClientID: clientID}})
}

// NotifyTopicPublished reports a publish. The payload in p is copied before
// this call returns; the caller may reuse or free its buffer immediately.
func (d *Dispatcher) NotifyTopicPublished(p PublishData, clientID, username string) {
	msg := &PublishMessage{
		ClientID: clientID,
		Username: username,
		Topic:    p.Topic,
		QoS:      p.QoS,
		Retained: p.Retained,
		Payload:  NewPayload(p.Payload),
	}
	if !d.enqueue(deliverTask{msg: msg}) {
		// Refused post-stop: the owned copy would otherwise leak.
		msg.Payload.Release()
	}
}

// NotifyTopicSubscribed reports a new subscription.
func (d *Dispatcher) NotifyTopicSubscribed(sub Subscription, username string) {
	d.enqueue(deliverTask{msg: &SubscribeMessage{Subscription: sub, Username: username}})
}

// NotifyTopicUnsubscribed reports a removed subscription.
func (d *Dispatcher) NotifyTopicUnsubscribed(topicFilter, clientID, username string) {
	d.enqueue(deliverTask{msg: &UnsubscribeMessage{
		TopicFilter: topicFilter,
		ClientID:    clientID,
		Username:    username,
	}})
}

// NotifyMessageAcknowledged reports an acknowledged in-flight message.
func (d *Dispatcher) NotifyMessageAcknowledged(ack AckData) {
	d.enqueue(deliverTask{msg: &AckedMessage{
		Topic:    ack.Topic,
		Username: ack.Username,
		PacketID: ack.PacketID,
		QoS:      ack.QoS,
		Payload:  cloneBytes(ack.Payload),
	}})
}

// NotifyLoopError feeds a broker-loop failure to handlers interested in
// exception events.
func (d *Dispatcher) NotifyLoopError(err error) {
	if err == nil {
		return
	}
	d.enqueue(deliverTask{msg: &ExceptionMessage{Err: err}})
}

// AddHandler registers h. Registration is idempotent by identity: adding a
// handler whose ID is already present replaces the earlier registration.
// The handler starts receiving notifications enqueued after this call.
func (d *Dispatcher) AddHandler(h Handler) {
	if h == nil {
		return
	}
	d.enqueue(addTask{handler: h})
}

// RemoveHandler unregisters h by identity. Removing an unknown handler is a
// no-op. Notifications enqueued after this call will not reach h; a delivery
// already dispatched is not recalled.
func (d *Dispatcher) RemoveHandler(h Handler) {
	if h == nil {
		return
	}
	d.enqueue(removeTask{id: h.ID()})
}

// Flush blocks until every task enqueued before it has been processed. It is
// the synchronization point for observing asynchronous effects — tests use
// it instead of timed waits. After Stop it returns immediately.
func (d *Dispatcher) Flush() {
	done := make(chan struct{})
	if !d.enqueue(barrierTask{done: done}) {
		return
	}
	select {
	case <-done:
	case <-d.exited:
	}
}

// Stop shuts the dispatcher down: every task accepted before the call is
// still processed, then the dispatch goroutine exits and Stop returns. It is
// idempotent, and concurrent callers all block until the goroutine is gone.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		d.stopMu.Lock()
		d.stopped = true
		d.stopMu.Unlock()
		// Granting the write lock means no enqueue is mid-send, so this is
		// the last task the queue will ever carry.
		d.tasks <- stopTask{}
	})
	<-d.exited
}

// enqueue submits a task unless shutdown has begun. Reports whether the task
// was accepted; an accepted task is guaranteed to be processed before the
// actor exits.
func (d *Dispatcher) enqueue(t task) bool {
	d.stopMu.RLock()
	defer d.stopMu.RUnlock()
	if d.stopped {
		return false
	}
	d.tasks <- t
	return true
}

// ---------------------------------------------------------------------------
// Dispatch actor
// ---------------------------------------------------------------------------

func (d *Dispatcher) run() {
	defer close(d.exited)
	for t := range d.tasks {
		// The stop task is always the final task (see Stop), so returning
		// here cannot strand anything in the queue.
		if _, stopping := t.(stopTask); stopping {
			return
		}
		d.process(t)
	}
}

func (d *Dispatcher) process(t task) {
	switch t := t.(type) {
	case deliverTask:
		d.deliver(t.msg)
	case addTask:
		d.reg.put(t.handler)
	case removeTask:
		d.reg.remove(t.id)
	case barrierTask:
		close(t.done)
	}
}

// deliver fans msg out to every registered handler whose interest set covers
// its kind, then releases the dispatcher's payload reference for publishes.
func (d *Dispatcher) deliver(msg Message) {
	kind := msg.Kind()
	for _, ent := range d.reg.entries {
		if !ent.kinds.has(kind) {
			continue
		}
		if err := invoke(ent.handler, msg); err != nil {
			d.handlerFailed(ent.handler.ID(), kind, err)
		}
	}
	if pm, ok := msg.(*PublishMessage); ok {
		pm.Payload.Release()
	}
}

// handlerFailed converts a callback failure into data and pushes it through
// the same delivery path. Failures while delivering an exception event are
// only logged — the loop must not feed itself.
func (d *Dispatcher) handlerFailed(id string, kind Kind, err error) {
	log.Printf("[Intercept] handler %q failed on %s: %v", id, kind, err)
	if kind == KindException {
		return
	}
	d.deliver(&ExceptionMessage{Err: err, HandlerID: id, FailedKind: kind})
}

// invoke routes msg to the callback matching its kind, converting panics
// into errors so one handler can never take down the dispatch loop.
func invoke(h Handler, msg Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("intercept: handler panic: %v", r)
		}
	}()

	switch m := msg.(type) {
	case *ConnectMessage:
		return h.OnConnect(m)
	case *DisconnectMessage:
		return h.OnDisconnect(m)
	case *ConnectionLostMessage:
		return h.OnConnectionLost(m)
	case *PingRequestMessage:
		return h.OnPingRequest(m)
	case *PublishMessage:
		return h.OnPublish(m)
	case *SubscribeMessage:
		return h.OnSubscribe(m)
	case *UnsubscribeMessage:
		return h.OnUnsubscribe(m)
	case *AckedMessage:
		return h.OnMessageAcknowledged(m)
	case *ExceptionMessage:
		h.OnSessionError(m)
		return nil
	default:
		return fmt.Errorf("intercept: unknown message kind %s", msg.Kind())
	}
}
