package components

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/pthm/hxtitle"
	"github.com/pthm/hxtitle/lib/styles"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// headings parses an HTML fragment and returns every <h1> element.
func headings(t *testing.T, fragment string) []*html.Node {
	t.Helper()
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		t.Fatalf("ParseFragment(%q) error = %v", fragment, err)
	}

	var found []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.H1 {
			found = append(found, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return found
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func TestTitle_TextIsVerbatim(t *testing.T) {
	texts := []string{
		"Is this thing on?",
		"",
		"<script>alert('x')</script>",
		`a & b "quoted" 'single'`,
		"</h1><h1>second",
		"  leading and trailing spaces  ",
		"ünïcødé ✓",
		strings.Repeat("long ", 500),
	}

	for _, text := range texts {
		c := NewTitle()
		result, err := hxtitle.TestRender(hxtitle.NoHydrate[TitleProps](c), TitleProps{Text: text})
		if err != nil {
			t.Fatalf("TestRender(%q) error = %v", text, err)
		}

		hs := headings(t, result.HTML)
		if len(hs) != 1 {
			t.Fatalf("text %q: got %d headings in %q, want 1", text, len(hs), result.HTML)
		}
		if got := textContent(hs[0]); got != text {
			t.Errorf("heading text = %q, want %q", got, text)
		}
	}
}

func TestTitle_UnstyledHasNoClass(t *testing.T) {
	out := render(t, NewTitle().Render(context.Background(), TitleProps{Text: "x"}))

	if out != "<h1>x</h1>" {
		t.Errorf("Render() = %q, want <h1>x</h1>", out)
	}
	if hs := headings(t, out); len(hs[0].Attr) != 0 {
		t.Errorf("unstyled heading has attributes %v", hs[0].Attr)
	}
}

func TestTitle_StyledHasOneClass(t *testing.T) {
	c, err := NewStyledTitle("red")
	if err != nil {
		t.Fatalf("NewStyledTitle() error = %v", err)
	}

	out := render(t, c.Render(context.Background(), TitleProps{Text: "x"}))
	hs := headings(t, out)
	if len(hs) != 1 {
		t.Fatalf("got %d headings", len(hs))
	}
	attrs := hs[0].Attr
	if len(attrs) != 1 || attrs[0].Key != "class" || attrs[0].Val != "Title__red" {
		t.Errorf("styled heading attrs = %v, want one class=Title__red", attrs)
	}
	if c.Class() != TitleStyles.Class("red") {
		t.Errorf("Class() = %q", c.Class())
	}
}

func TestNewStyledTitle_UnknownKey(t *testing.T) {
	_, err := NewStyledTitle("chartreuse")
	if !errors.Is(err, styles.ErrUnknownStyle) {
		t.Errorf("error = %v, want ErrUnknownStyle", err)
	}
}

func TestTitle_EqualPropsRenderOnce(t *testing.T) {
	c := NewTitle()
	ctx := context.Background()

	a := render(t, c.Render(ctx, TitleProps{Text: "same"}))
	b := render(t, c.Render(ctx, TitleProps{Text: "same"}))
	if a != b {
		t.Errorf("outputs differ: %q vs %q", a, b)
	}
	if c.Renders() != 1 {
		t.Errorf("Renders() = %d, want 1", c.Renders())
	}

	render(t, c.Render(ctx, TitleProps{Text: "changed"}))
	if c.Renders() != 2 {
		t.Errorf("Renders() = %d after change, want 2", c.Renders())
	}
}

func TestTitle_RefetchUnchangedIsNotModified(t *testing.T) {
	reg := hxtitle.NewRegistry([]byte("test-key"))
	set, err := Init(reg, "", nil)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	url, err := set.Title.URL(TitleProps{Text: "Is this thing on?"})
	if err != nil {
		t.Fatalf("URL() error = %v", err)
	}

	first := hxtitle.TestGet(reg.Handler(), url)
	if !first.IsOK() {
		t.Fatalf("status = %d", first.StatusCode)
	}

	again := hxtitle.TestGet(reg.Handler(), url, "If-None-Match", first.Header("ETag"))
	if !again.HasStatus(http.StatusNotModified) || again.HTML != "" {
		t.Errorf("re-fetch: status = %d, body = %q; want 304 and no body", again.StatusCode, again.HTML)
	}
	if set.Title.Renders() != 1 {
		t.Errorf("Renders() = %d, want 1", set.Title.Renders())
	}
}

func TestAsyncTitle_PendingThenResolved(t *testing.T) {
	reg := hxtitle.NewRegistry([]byte("test-key"))
	set, err := Init(reg, "", nil)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	props := TitleProps{Text: "Is this thing on?"}
	ctx := context.Background()

	pending := render(t, set.Root(true).Render(ctx, props))
	if hs := headings(t, pending); len(hs) != 0 {
		t.Fatalf("pending placeholder contains %d headings: %q", len(hs), pending)
	}
	if strings.Contains(pending, props.Text) {
		t.Errorf("pending placeholder leaks the text: %q", pending)
	}

	url := hxGet(t, pending)
	resolved := hxtitle.TestGet(reg.Handler(), url)
	if !resolved.IsOK() {
		t.Fatalf("fetch status = %d, body = %q", resolved.StatusCode, resolved.HTML)
	}

	hs := headings(t, resolved.HTML)
	if len(hs) != 1 || textContent(hs[0]) != props.Text {
		t.Fatalf("resolved output = %q", resolved.HTML)
	}

	eager := render(t, set.Root(false).Render(ctx, props))
	if resolved.HTML != eager {
		t.Errorf("lazy output %q differs from eager %q", resolved.HTML, eager)
	}
}

func TestAsyncTitle_StyledForwardsClass(t *testing.T) {
	reg := hxtitle.NewRegistry([]byte("test-key"))
	set, err := Init(reg, "red", nil)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	pending := render(t, set.Async.Render(context.Background(), TitleProps{Text: "hi"}))
	resolved := hxtitle.TestGet(reg.Handler(), hxGet(t, pending))

	if resolved.HTML != `<h1 class="Title__red">hi</h1>` {
		t.Errorf("resolved = %q", resolved.HTML)
	}
}

func TestAsyncTitle_Placeholder(t *testing.T) {
	reg := hxtitle.NewRegistry([]byte("test-key"))
	spinner := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<span class="spinner"></span>`)
		return err
	})
	set, err := Init(reg, "", spinner)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	pending := render(t, set.Async.Render(context.Background(), TitleProps{Text: "hi"}))
	if !strings.Contains(pending, `<span class="spinner"></span>`) {
		t.Errorf("placeholder missing: %q", pending)
	}
	if set.Async.Title() != set.Title {
		t.Error("Async should wrap the registered title")
	}
}

func TestInit_UnknownStyle(t *testing.T) {
	reg := hxtitle.NewRegistry([]byte("test-key"))
	if _, err := Init(reg, "nope", nil); !errors.Is(err, styles.ErrUnknownStyle) {
		t.Errorf("Init() error = %v, want ErrUnknownStyle", err)
	}
	if reg.Len() != 0 {
		t.Errorf("failed Init registered %d components", reg.Len())
	}
}

func TestTerminal(t *testing.T) {
	plain := Terminal(TitleProps{Text: "hello"}, "")
	red := Terminal(TitleProps{Text: "hello"}, "red")

	if !strings.Contains(plain, "hello") || !strings.Contains(red, "hello") {
		t.Errorf("terminal output lost the text: %q / %q", plain, red)
	}
}

// hxGet extracts the hx-get URL from a rendered placeholder.
func hxGet(t *testing.T, fragment string) string {
	t.Helper()
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		t.Fatalf("ParseFragment() error = %v", err)
	}
	for _, n := range nodes {
		for _, a := range n.Attr {
			if a.Key == "hx-get" {
				return a.Val
			}
		}
	}
	t.Fatalf("no hx-get in %q", fragment)
	return ""
}
