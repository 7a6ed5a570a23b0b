package middleware

import "github.com/miladsoleymani/intercept/core"

// WithKinds restricts h to the given message kinds, regardless of what its
// own InterceptedKinds declares. The dispatcher reads the interest set at
// registration time, so wrap before AddHandler. Passing no kinds restricts
// the handler to nothing; wildcard interest is a nil interest set, which a
// restriction never produces.
func WithKinds(h core.Handler, kinds ...core.Kind) core.Handler {
	if kinds == nil {
		kinds = []core.Kind{}
	}
	return &kindsHandler{Handler: h, kinds: kinds}
}

type kindsHandler struct {
	core.Handler
	kinds []core.Kind
}

func (k *kindsHandler) InterceptedKinds() []core.Kind { return k.kinds }

// WithID overrides the identity of h. Useful for registering the same
// handler implementation more than once — registrations are keyed by ID, so
// two registrations of one implementation need two identities.
func WithID(h core.Handler, id string) core.Handler {
	return &idHandler{Handler: h, id: id}
}

type idHandler struct {
	core.Handler
	id string
}

func (i *idHandler) ID() string { return i.id }
