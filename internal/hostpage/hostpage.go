// Package hostpage provides the document the title is mounted into.
package hostpage

import (
	"os"

	"github.com/rohanthewiz/element"
	"github.com/rohanthewiz/serr"
)

// Options describes the built-in host page.
type Options struct {
	// Title is the document <title>.
	Title string
	// Target is the id of the empty attachment element in the body.
	Target string
	// HTMXURL is loaded in the head when set. The lazy variant needs it.
	HTMXURL string
}

// Default builds a minimal page with a single empty attachment element.
func Default(opts Options) string {
	b := element.NewBuilder()

	b.Html().R(
		b.Head().R(
			b.Meta("charset", "UTF-8"),
			b.Meta("name", "viewport", "content", "width=device-width, initial-scale=1.0"),
			b.Title().T(opts.Title),
			b.Wrap(func() {
				if opts.HTMXURL != "" {
					b.Script("src", opts.HTMXURL).R()
				}
			}),
		),
		b.Body().R(
			b.Div("id", opts.Target).R(),
		),
	)

	return b.String()
}

// Load reads a host page from disk.
func Load(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", serr.Wrap(err, "failed to read host page "+path)
	}
	return string(raw), nil
}
