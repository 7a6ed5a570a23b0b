// Package intercept provides the top-level API for the broker event
// interception dispatcher. It re-exports core types for convenience, so
// broker code can write:
//
//	d := intercept.New(auditHandler)
//	d.NotifyClientConnected(connectData)
//	d.Stop()
package intercept

import (
	"github.com/miladsoleymani/intercept/core"
)

// Re-export core types at the package level for ergonomic usage.
type (
	Dispatcher = core.Dispatcher
	Config     = core.Config
	Handler    = core.Handler
	NopHandler = core.NopHandler
	Message    = core.Message
	Kind       = core.Kind
	QoS        = core.QoS
	Payload    = core.Payload
)

// New creates a started dispatcher with default configuration, pre-seeded
// with the given handlers.
func New(handlers ...Handler) *Dispatcher {
	return core.New(handlers...)
}

// NewWithConfig creates a started dispatcher from broker configuration.
func NewWithConfig(cfg Config, handlers ...Handler) (*Dispatcher, error) {
	return core.NewWithConfig(cfg, handlers...)
}
