package core

import "sync/atomic"

// Payload is a reference-counted copy of a publish body. The dispatcher owns
// one reference, taken when the notify call copies the producer's buffer, and
// releases it after the message has been fanned out. A handler that wants the
// bytes beyond its callback takes its own reference with Retain and later
// calls Release exactly once.
//
// The one-owner-at-a-time contract is strict: releasing a reference you do
// not hold corrupts someone else's view of the buffer, so over-release
// panics instead of failing quietly.
type Payload struct {
	data []byte
	refs atomic.Int32
}

// NewPayload copies b into a fresh payload with a single reference.
func NewPayload(b []byte) *Payload {
	p := &Payload{data: cloneBytes(b)}
	p.refs.Store(1)
	return p
}

// Bytes returns the payload contents. It returns nil once all references
// have been released.
func (p *Payload) Bytes() []byte { return p.data }

// Len returns the payload length in bytes.
func (p *Payload) Len() int { return len(p.data) }

func (p *Payload) String() string { return string(p.data) }

// Retain takes an additional reference and returns p for chaining.
func (p *Payload) Retain() *Payload {
	if p.refs.Add(1) <= 1 {
		panic("intercept: retain of released payload")
	}
	return p
}

// Release drops one reference, freeing the buffer when the last one goes.
func (p *Payload) Release() {
	switch n := p.refs.Add(-1); {
	case n == 0:
		p.data = nil
	case n < 0:
		panic("intercept: payload released twice")
	}
}

// Released reports whether every reference has been dropped.
func (p *Payload) Released() bool { return p.refs.Load() <= 0 }
