package hxtitle

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/a-h/templ"
)

// Memo caches the output of a pure render function for the most recent
// props. Rendering again with props equal (==) to the cached ones writes
// the cached bytes without running the template.
//
// The render function must not depend on the context: the output cached
// for one request is served to the next.
type Memo[P comparable] struct {
	render func(P) templ.Component

	mu      sync.Mutex
	valid   bool
	last    P
	html    []byte
	renders int
}

// NewMemo wraps render.
func NewMemo[P comparable](render func(P) templ.Component) *Memo[P] {
	return &Memo[P]{render: render}
}

// Render returns a component writing the output for props.
func (m *Memo[P]) Render(props P) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		html, err := m.bytes(ctx, props)
		if err != nil {
			return err
		}
		_, err = w.Write(html)
		return err
	})
}

// Renders returns how many times the underlying template has run.
func (m *Memo[P]) Renders() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.renders
}

func (m *Memo[P]) bytes(ctx context.Context, props P) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.valid && m.last == props {
		return m.html, nil
	}

	var buf bytes.Buffer
	if err := m.render(props).Render(ctx, &buf); err != nil {
		return nil, err
	}
	m.renders++
	m.last, m.html, m.valid = props, buf.Bytes(), true
	return m.html, nil
}
