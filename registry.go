package hxtitle

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
)

// binder is satisfied by any type embedding *Component[P]: the unexported
// bind method is promoted from the embedded component.
type binder interface {
	HXComponent
	bind(reg *Registry, parent any) error
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithBase mounts component routes under base instead of DefaultBase.
// The base is normalised to start and end with a slash.
func WithBase(base string) RegistryOption {
	return func(reg *Registry) {
		base = "/" + strings.Trim(base, "/") + "/"
		if base == "//" {
			base = "/"
		}
		reg.base = base
	}
}

// Registry owns the props encoder and routes requests under its base to
// the registered components. Register everything before serving.
type Registry struct {
	mu         sync.RWMutex
	mux        *http.ServeMux
	encoder    *Encoder
	base       string
	components map[string]HXComponent // map[prefix]component

	// OnError writes the response for a failed component request.
	// DefaultOnError unless replaced.
	OnError func(http.ResponseWriter, *http.Request, error)
}

// NewRegistry creates a new component registry with the given props key.
// Panics if the key is unusable.
func NewRegistry(key []byte, opts ...RegistryOption) *Registry {
	enc, err := NewEncoder(key)
	if err != nil {
		panic(fmt.Sprintf("hxtitle: failed to create encoder: %v", err))
	}

	reg := &Registry{
		mux:        http.NewServeMux(),
		encoder:    enc,
		base:       DefaultBase,
		components: make(map[string]HXComponent),
		OnError:    DefaultOnError,
	}
	for _, opt := range opts {
		opt(reg)
	}
	return reg
}

// DefaultOnError maps component errors onto status codes. It is the
// registry's OnError until replaced.
func DefaultOnError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case IsNotFound(err):
		http.Error(w, "Not found", http.StatusNotFound)
	case IsBadRequest(err):
		http.Error(w, "Bad request", http.StatusBadRequest)
	case errors.Is(err, ErrMethodNotAllowed):
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	default:
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}

// Encoder returns the registry's encoder.
func (reg *Registry) Encoder() *Encoder {
	return reg.encoder
}

// Base returns the path component routes are mounted under.
func (reg *Registry) Base() string {
	return reg.base
}

// Add binds and routes each component. Every argument must embed
// *hxtitle.Component[P] and implement Renderer[P]. Misconfiguration and
// prefix collisions panic, so they surface at startup.
func (reg *Registry) Add(components ...any) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for _, comp := range components {
		b, ok := comp.(binder)
		if !ok {
			panic(fmt.Sprintf("hxtitle: %T does not embed *hxtitle.Component[P]", comp))
		}
		if err := b.bind(reg, comp); err != nil {
			panic(fmt.Sprintf("hxtitle: %v", err))
		}

		prefix := b.HXPrefix()
		if _, taken := reg.components[prefix]; taken {
			panic(fmt.Sprintf("hxtitle: prefix collision for %q", prefix))
		}
		reg.components[prefix] = b
		reg.mux.HandleFunc(prefix+"/", b.HXServeHTTP)
	}
}

// Len returns the number of registered components.
func (reg *Registry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.components)
}

// Handler serves the component routes; mount it at Base(). Requests
// other than GET and HEAD must carry HX-Request, which a cross-site form
// cannot set.
func (reg *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		safe := r.Method == http.MethodGet || r.Method == http.MethodHead
		if !safe && !IsHTMX(r) {
			http.Error(w, "Forbidden: HTMX request required", http.StatusForbidden)
			return
		}
		reg.mux.ServeHTTP(w, r)
	})
}
