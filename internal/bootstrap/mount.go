package bootstrap

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/a-h/templ"
	"github.com/pthm/hxtitle"
	"github.com/rohanthewiz/serr"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Mount renders root into the element of page whose id is target and
// returns the resulting document. Any existing children of the attachment
// point are replaced. head components are appended to <head>.
//
// The attachment point must exist exactly once. On error no document is
// returned.
func Mount(ctx context.Context, page, target string, root templ.Component, head ...templ.Component) (string, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return "", serr.Wrap(err, "failed to parse host page")
	}

	// Attachment errors are returned as-is so callers can match them with
	// errors.Is.
	attach, err := findByID(doc, target)
	if err != nil {
		return "", err
	}

	if err := replaceChildren(ctx, attach, root); err != nil {
		return "", serr.Wrap(err, "failed to mount root at #"+target)
	}

	if len(head) > 0 {
		h := findElement(doc, atom.Head)
		if h == nil {
			return "", serr.New("host page has no head")
		}
		for _, c := range head {
			if err := appendRendered(ctx, h, c); err != nil {
				return "", serr.Wrap(err, "failed to inject head content")
			}
		}
	}

	var out bytes.Buffer
	if err := html.Render(&out, doc); err != nil {
		return "", serr.Wrap(err, "failed to render mounted page")
	}
	return out.String(), nil
}

// findByID returns the single element with the given id.
func findByID(doc *html.Node, id string) (*html.Node, error) {
	var found []*html.Node
	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		for _, a := range n.Attr {
			if a.Namespace == "" && a.Key == "id" && a.Val == id {
				found = append(found, n)
				return
			}
		}
	})

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: #%s", hxtitle.ErrAttachmentNotFound, id)
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("%w: #%s matches %d elements", hxtitle.ErrAttachmentAmbiguous, id, len(found))
	}
}

// loadsHTMX reports whether page already has a <script> whose src is
// url or names htmx.
func loadsHTMX(page, url string) bool {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return false
	}
	found := false
	walk(doc, func(n *html.Node) {
		if found || n.Type != html.ElementNode || n.DataAtom != atom.Script {
			return
		}
		for _, a := range n.Attr {
			if a.Namespace == "" && a.Key == "src" && (a.Val == url || strings.Contains(strings.ToLower(a.Val), "htmx")) {
				found = true
				return
			}
		}
	})
	return found
}

func findElement(doc *html.Node, a atom.Atom) *html.Node {
	var found *html.Node
	walk(doc, func(n *html.Node) {
		if found == nil && n.Type == html.ElementNode && n.DataAtom == a {
			found = n
		}
	})
	return found
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func replaceChildren(ctx context.Context, parent *html.Node, c templ.Component) error {
	for parent.FirstChild != nil {
		parent.RemoveChild(parent.FirstChild)
	}
	return appendRendered(ctx, parent, c)
}

// appendRendered renders c and parses the output in the context of parent,
// so the markup is interpreted the way a browser inserting it there would.
func appendRendered(ctx context.Context, parent *html.Node, c templ.Component) error {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return err
	}
	nodes, err := html.ParseFragment(&buf, parent)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		parent.AppendChild(n)
	}
	return nil
}
