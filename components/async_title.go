package components

import (
	"context"

	"github.com/a-h/templ"
)

// AsyncTitle stands in for a Title until the browser has fetched it.
//
// On first render it emits only a placeholder; HTMX then requests the
// title's route once, after page load, and swaps the placeholder for the
// returned heading. Props are forwarded unchanged through the encoded URL.
// The load is not retried or cancelled.
type AsyncTitle struct {
	title       *Title
	placeholder templ.Component
}

// NewAsyncTitle wraps title. placeholder may be nil, in which case the
// pending state renders as an empty element.
func NewAsyncTitle(title *Title, placeholder templ.Component) *AsyncTitle {
	return &AsyncTitle{title: title, placeholder: placeholder}
}

// Title returns the wrapped component.
func (a *AsyncTitle) Title() *Title {
	return a.title
}

// Render returns the deferred placeholder for props.
func (a *AsyncTitle) Render(ctx context.Context, props TitleProps) templ.Component {
	return a.title.Defer(props, a.placeholder)
}
