package forward

import (
	"fmt"
	"sync"

	"github.com/miladsoleymani/intercept/core"
)

// Factory creates an export handler from the given Config.
type Factory func(cfg Config) (core.Handler, error)

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
)

// Register adds a named export factory. Plugins call this from init().
func Register(name string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[name] = factory
}

// Create instantiates an export handler by name using the registered factory.
func Create(name string, cfg Config) (core.Handler, error) {
	mu.RLock()
	f, ok := factories[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("forward: unknown exporter %q", name)
	}
	return f(cfg)
}
