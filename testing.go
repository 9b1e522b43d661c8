package hxtitle

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
)

// TestResult is what the test helpers hand back: rendered HTML plus the
// status and headers of the response that carried it.
type TestResult struct {
	HTML       string
	StatusCode int
	Headers    http.Header
}

// TestableComponent is a component with the full lifecycle. Wrap one
// without Hydrate in NoHydrate.
type TestableComponent[P any] interface {
	Hydrater[P]
	Renderer[P]
}

// TestRender runs Hydrate then Render on props directly, skipping the
// route and the props codec.
//
//	res, err := hxtitle.TestRender(hxtitle.NoHydrate[TitleProps](title), props)
func TestRender[P any](comp TestableComponent[P], props P) (*TestResult, error) {
	return TestRenderWithContext(context.Background(), comp, props)
}

// TestRenderWithContext is TestRender with a caller-supplied context.
func TestRenderWithContext[P any](ctx context.Context, comp TestableComponent[P], props P) (*TestResult, error) {
	if err := comp.Hydrate(ctx, &props); err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := comp.Render(ctx, props).Render(ctx, &out); err != nil {
		return nil, err
	}
	return &TestResult{HTML: out.String(), StatusCode: http.StatusOK, Headers: http.Header{}}, nil
}

// NoHydrate gives r a no-op Hydrate.
func NoHydrate[P any](r Renderer[P]) TestableComponent[P] {
	return noHydrate[P]{r}
}

type noHydrate[P any] struct {
	Renderer[P]
}

func (noHydrate[P]) Hydrate(context.Context, *P) error { return nil }

// TestGet sends h a GET the way HTMX would. header is a flat list of
// key/value pairs.
//
//	url, _ := title.URL(props)
//	res := hxtitle.TestGet(reg.Handler(), url, "If-None-Match", etag)
func TestGet(h http.Handler, url string, header ...string) *TestResult {
	return TestDo(h, http.MethodGet, url, header...)
}

// TestDo sends h a request with HX-Request: true, then applies header
// pairs, which may override it.
func TestDo(h http.Handler, method, url string, header ...string) *TestResult {
	req := httptest.NewRequest(method, url, nil)
	req.Header.Set("HX-Request", "true")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return &TestResult{HTML: rec.Body.String(), StatusCode: rec.Code, Headers: rec.Header()}
}

func (r *TestResult) HTMLContains(s string) bool { return strings.Contains(r.HTML, s) }
func (r *TestResult) HTMLCount(s string) int     { return strings.Count(r.HTML, s) }
func (r *TestResult) IsOK() bool                 { return r.StatusCode == http.StatusOK }
func (r *TestResult) HasStatus(code int) bool    { return r.StatusCode == code }
func (r *TestResult) Header(key string) string   { return r.Headers.Get(key) }
