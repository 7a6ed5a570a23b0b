package core

// kindSet is a bitmask over Kind values. The zero value means "no kinds";
// allKindSet is the wildcard.
type kindSet uint16

const allKindSet = kindSet(1<<len(kindNames) - 1)

func makeKindSet(kinds []Kind) kindSet {
	if kinds == nil {
		return allKindSet
	}
	var s kindSet
	for _, k := range kinds {
		s |= 1 << k
	}
	return s
}

func (s kindSet) has(k Kind) bool { return s&(1<<k) != 0 }

type registration struct {
	handler Handler
	kinds   kindSet
}

// registry maps handler identity to its registration. It is owned by the
// dispatch goroutine: every read and write happens there, so no lock guards
// it. The interest set is compiled to a bitmask once, when the add task is
// processed, and never consulted on the handler again.
type registry struct {
	entries map[string]registration
}

func newRegistry(handlers []Handler) *registry {
	r := &registry{entries: make(map[string]registration, len(handlers))}
	for _, h := range handlers {
		r.put(h)
	}
	return r
}

// put inserts or replaces by identity. Last write wins.
func (r *registry) put(h Handler) {
	r.entries[h.ID()] = registration{
		handler: h,
		kinds:   makeKindSet(h.InterceptedKinds()),
	}
}

// remove deletes by identity; removing an unknown ID is a no-op.
func (r *registry) remove(id string) {
	delete(r.entries, id)
}
