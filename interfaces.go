package hxtitle

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
)

// Hydrater is implemented by components that need to fill in props from
// outside sources before rendering. Optional: components whose props are
// complete on the wire skip it.
//
// Hydrate runs exactly once per request, before Render.
type Hydrater[P any] interface {
	Hydrate(ctx context.Context, props *P) error
}

// Renderer is implemented by every component to produce templ output.
//
// Render receives fully-hydrated props and should be pure - it reads props
// and produces HTML without side effects. Components served through Memo
// rely on this.
//
// Example:
//
//	func (c *Title) Render(ctx context.Context, props TitleProps) templ.Component {
//	    return c.memo.Render(props)
//	}
type Renderer[P any] interface {
	Render(ctx context.Context, props P) templ.Component
}

// HXComponent is what the registry routes to. Components get it for free
// by embedding *Component[P].
//
// HXPrefix returns the unique URL prefix for this component instance.
// HXServeHTTP handles all HTTP requests under that prefix.
type HXComponent interface {
	HXPrefix() string
	HXServeHTTP(w http.ResponseWriter, r *http.Request)
}
