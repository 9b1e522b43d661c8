// Package hxtitle provides the component core behind the title page: typed,
// server-rendered components built on templ and loaded into the browser
// with HTMX.
//
// # Core Concepts
//
// Components embed *Component[P] where P is the Props type. Props travel in
// URLs, so they should stay small and comparable:
//
//	type Title struct {
//	    *hxtitle.Component[TitleProps]
//	}
//
// The lifecycle is two interfaces:
//   - Renderer[P]: Render(ctx, P) produces the templ.Component output (required)
//   - Hydrater[P]: Hydrate(ctx, *P) fills props from outside sources (optional)
//
// # Routing
//
// Each component receives a unique URL prefix based on its name and source
// location hash. A GET to the prefix decodes props from the "p" query
// parameter, hydrates, and renders. Responses carry a content ETag, so a
// client re-requesting unchanged output gets 304.
//
// # Lazy Loading
//
// Defer and Lazy return placeholders that HTMX replaces with the component's
// own output once the page has loaded (Defer) or the placeholder scrolls
// into view (Lazy). The component's route is the on-demand chunk: nothing of
// the component is sent with the page itself.
//
//	title.Defer(props, nil)
//
// # Security Model
//
// Props are encoded in URLs using one of two modes:
//   - Signed (default): HMAC-authenticated msgpack, visible but tamper-proof
//   - Encrypted: AES-GCM encrypted, opaque to clients (use .Sensitive())
//
// Mutating methods require the HX-Request: true header that HTMX sends.
//
// # Registration
//
// Components are registered explicitly with a Registry:
//
//	reg := hxtitle.NewRegistry(key)
//	reg.Add(title)
//	http.Handle(reg.Base(), reg.Handler())
//
// The registry checks interface requirements and prefix uniqueness at
// registration time, not during requests, and routes failures through its
// OnError callback.
package hxtitle
