// Package hxtitleecho serves hxtitle component routes from Echo.
//
//	e := echo.New()
//	reg := hxtitleecho.Mount(e, hxtitleecho.WithKey(key))
//	reg.Add(title)
//
// Routes can also hang off a group so they share its middleware:
//
//	g := e.Group("/app", auth)
//	reg := hxtitleecho.MountGroup(g, "/app", hxtitleecho.WithPath("/app/_c/"))
package hxtitleecho

import (
	"crypto/rand"
	"fmt"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/pthm/hxtitle"
)

// Option configures Mount and MountGroup.
type Option func(*options)

type options struct {
	key     []byte
	path    string
	onError func(http.ResponseWriter, *http.Request, error)
}

// WithKey sets the props key. Without one a random key is drawn, so URLs
// handed out before a restart stop working after it.
func WithKey(key []byte) Option {
	return func(o *options) { o.key = key }
}

// WithPath sets the full URL path the routes live under (default
// hxtitle.DefaultBase). Under a group it must include the group prefix.
func WithPath(path string) Option {
	return func(o *options) { o.path = path }
}

// WithOnError wraps the registry's error handler. next is the handler
// that would otherwise run.
func WithOnError(wrap func(next func(http.ResponseWriter, *http.Request, error)) func(http.ResponseWriter, *http.Request, error)) Option {
	return func(o *options) { o.onError = wrap(hxtitle.DefaultOnError) }
}

// router is satisfied by both *echo.Echo and *echo.Group.
type router interface {
	Any(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) []*echo.Route
}

// Mount creates a registry and routes everything under its base to it.
func Mount(e *echo.Echo, opts ...Option) *hxtitle.Registry {
	return mount(e, "", opts)
}

// MountGroup is Mount for a group created with groupPrefix.
func MountGroup(g *echo.Group, groupPrefix string, opts ...Option) *hxtitle.Registry {
	return mount(g, groupPrefix, opts)
}

func mount(r router, groupPrefix string, opts []Option) *hxtitle.Registry {
	o := options{path: hxtitle.DefaultBase}
	for _, opt := range opts {
		opt(&o)
	}
	if o.key == nil {
		o.key = make([]byte, 32)
		if _, err := rand.Read(o.key); err != nil {
			panic(fmt.Sprintf("hxtitleecho: random key: %v", err))
		}
	}

	reg := hxtitle.NewRegistry(o.key, hxtitle.WithBase(o.path))
	if o.onError != nil {
		reg.OnError = o.onError
	}
	r.Any(strings.TrimPrefix(reg.Base(), groupPrefix)+"*", echo.WrapHandler(reg.Handler()))
	return reg
}

// Render writes component to the response as HTML.
func Render(c echo.Context, component templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/html; charset=utf-8")
	return component.Render(c.Request().Context(), c.Response())
}

// Page returns a handler that always serves the same document.
func Page(doc string) echo.HandlerFunc {
	page := templ.Raw(doc)
	return func(c echo.Context) error {
		return Render(c, page)
	}
}
