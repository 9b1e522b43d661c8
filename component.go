package hxtitle

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/a-h/templ"
)

// DefaultBase is where component routes live unless WithBase says otherwise.
const DefaultBase = "/_c/"

// Component is embedded (as a pointer) by every routed component. P is the
// props type; it travels in the route's query string, so keep it small.
//
//	type Title struct {
//	    *hxtitle.Component[TitleProps]
//	}
//
//	func NewTitle() *Title {
//	    return &Title{Component: hxtitle.New[TitleProps]("title")}
//	}
//
// The route prefix is name plus a short hash of the call site of New, so
// two components may share a name without colliding.
type Component[P any] struct {
	name      string
	hash      string
	prefix    string
	sensitive bool

	// set by Registry.Add
	encoder  *Encoder
	registry *Registry
	parent   Renderer[P]
}

// New returns an unregistered component. Props are signed unless
// Sensitive is called.
func New[P any](name string) *Component[P] {
	hash := callSiteHash(name, 1)
	return &Component[P]{
		name:   name,
		hash:   hash,
		prefix: DefaultBase + name + "-" + hash,
	}
}

// Sensitive seals props instead of signing them. Sealed props are opaque
// but a fresh nonce per URL means the same props never give the same URL.
func (c *Component[P]) Sensitive() *Component[P] {
	c.sensitive = true
	return c
}

func (c *Component[P]) Name() string      { return c.name }
func (c *Component[P]) Prefix() string    { return c.prefix }
func (c *Component[P]) IsSensitive() bool { return c.sensitive }

// Encoder returns the registry's encoder, or nil before registration.
func (c *Component[P]) Encoder() *Encoder { return c.encoder }

// HXPrefix implements HXComponent.
func (c *Component[P]) HXPrefix() string { return c.prefix }

// bind attaches c to reg. parent is the value passed to Registry.Add,
// i.e. the type embedding c.
func (c *Component[P]) bind(reg *Registry, parent any) error {
	r, ok := parent.(Renderer[P])
	if !ok {
		return fmt.Errorf("%T does not implement Renderer[%T]", parent, *new(P))
	}
	c.parent = r
	c.registry = reg
	c.encoder = reg.encoder
	c.prefix = reg.base + c.name + "-" + c.hash
	return nil
}

// URL returns the route that renders c with props.
func (c *Component[P]) URL(props P) (string, error) {
	if c.encoder == nil {
		return "", fmt.Errorf("%w: %s", ErrNotRegistered, c.name)
	}
	p, err := c.encoder.Encode(props, c.sensitive)
	if err != nil {
		return "", err
	}
	return c.prefix + "/?p=" + p, nil
}

// Lazy renders placeholder now and swaps in the component the first time
// the placeholder scrolls into view.
func (c *Component[P]) Lazy(props P, placeholder templ.Component) templ.Component {
	return &deferred[P]{c: c, props: props, placeholder: placeholder, trigger: "intersect once"}
}

// Defer renders placeholder now and swaps in the component once, as soon
// as the page has loaded. A failed fetch leaves the placeholder in place;
// HTMX reports it as htmx:responseError. Nothing retries.
//
//	title.Defer(props, nil)
func (c *Component[P]) Defer(props P, placeholder templ.Component) templ.Component {
	return &deferred[P]{c: c, props: props, placeholder: placeholder, trigger: "load"}
}

// deferred is the placeholder element Lazy and Defer emit.
type deferred[P any] struct {
	c           *Component[P]
	props       P
	placeholder templ.Component
	trigger     string
}

func (d *deferred[P]) Render(ctx context.Context, w io.Writer) error {
	url, err := d.c.URL(d.props)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, `<div hx-get="%s" hx-trigger="%s" hx-swap="outerHTML">`,
		templ.EscapeString(url), templ.EscapeString(d.trigger)); err != nil {
		return err
	}
	if d.placeholder != nil {
		if err := d.placeholder.Render(ctx, w); err != nil {
			return err
		}
	}
	_, err = io.WriteString(w, "</div>")
	return err
}

// HXServeHTTP serves GET and HEAD on the component's route. Output carries
// a content ETag; a matching If-None-Match gets 304 and no body.
func (c *Component[P]) HXServeHTTP(w http.ResponseWriter, r *http.Request) {
	if c.parent == nil {
		c.fail(w, r, fmt.Errorf("%w: %s", ErrNotRegistered, c.name))
		return
	}
	switch r.Method {
	case http.MethodGet, http.MethodHead:
	default:
		w.Header().Set("Allow", "GET, HEAD")
		c.fail(w, r, ErrMethodNotAllowed)
		return
	}
	if rest := strings.TrimPrefix(r.URL.Path, c.prefix); rest != "" && rest != "/" {
		c.fail(w, r, ErrNotFound)
		return
	}

	ctx := r.Context()
	props, err := c.props(ctx, r)
	if err != nil {
		c.fail(w, r, err)
		return
	}

	var out bytes.Buffer
	if err := c.parent.Render(ctx, props).Render(ctx, &out); err != nil {
		c.fail(w, r, err)
		return
	}

	tag := etag(out.Bytes())
	w.Header().Set("ETag", tag)
	if ifNoneMatch(r.Header.Get("If-None-Match"), tag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if r.Method == http.MethodGet {
		_, _ = w.Write(out.Bytes())
	}
}

// props decodes the "p" query parameter and runs Hydrate when the parent
// has one. A missing parameter yields zero props.
func (c *Component[P]) props(ctx context.Context, r *http.Request) (P, error) {
	var props P
	if p := r.URL.Query().Get("p"); p != "" {
		if err := c.encoder.Decode(p, c.sensitive, &props); err != nil {
			return props, WrapDecodeError(err)
		}
	}
	if h, ok := c.parent.(Hydrater[P]); ok {
		if err := h.Hydrate(ctx, &props); err != nil {
			return props, fmt.Errorf("%w: %v", ErrHydrationFailed, err)
		}
	}
	return props, nil
}

func (c *Component[P]) fail(w http.ResponseWriter, r *http.Request, err error) {
	onError := DefaultOnError
	if c.registry != nil && c.registry.OnError != nil {
		onError = c.registry.OnError
	}
	onError(w, r, err)
}

func etag(body []byte) string {
	sum := sha256.Sum256(body)
	return `"` + hex.EncodeToString(sum[:8]) + `"`
}

func ifNoneMatch(header, tag string) bool {
	for _, v := range strings.Split(header, ",") {
		v = strings.TrimSpace(v)
		if v == "*" || (v != "" && strings.TrimPrefix(v, "W/") == tag) {
			return true
		}
	}
	return false
}

// callSiteHash hashes name with the file:line skip frames above the caller.
// Only the base file name is used so the hash survives moving the checkout.
func callSiteHash(name string, skip int) string {
	key := name
	if _, file, line, ok := runtime.Caller(skip + 1); ok {
		key = fmt.Sprintf("%s:%d:%s", filepath.Base(file), line, name)
	}
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:4])
}
