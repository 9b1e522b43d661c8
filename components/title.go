package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/pthm/hxtitle"
	"github.com/pthm/hxtitle/lib/styles"
)

// TitleProps holds the heading text. The text is the only input and is
// required; the empty string renders an empty heading.
type TitleProps struct {
	Text string `msgpack:"t"`
}

// TitleStyles is the Title's scoped stylesheet. Mount it into the page head
// when a styled title is used.
var TitleStyles = styles.New("Title",
	styles.Rule{Key: "red", Decl: "color: red;"},
)

// Title renders its text as an <h1>, optionally carrying one scoped class.
// It has no state of its own; equal props reuse the previous output.
type Title struct {
	*hxtitle.Component[TitleProps]
	class string
	memo  *hxtitle.Memo[TitleProps]
}

// NewTitle creates an unstyled Title.
func NewTitle() *Title {
	c := &Title{
		Component: hxtitle.New[TitleProps]("title"),
	}
	c.memo = hxtitle.NewMemo(c.heading)
	return c
}

// NewStyledTitle creates a Title carrying the scoped class for key.
func NewStyledTitle(key string) (*Title, error) {
	class, err := TitleStyles.Lookup(key)
	if err != nil {
		return nil, err
	}
	c := &Title{
		Component: hxtitle.New[TitleProps]("title-styled"),
		class:     class,
	}
	c.memo = hxtitle.NewMemo(c.heading)
	return c, nil
}

// Class returns the scoped class applied to the heading, or "".
func (c *Title) Class() string {
	return c.class
}

// Render produces the heading.
func (c *Title) Render(ctx context.Context, props TitleProps) templ.Component {
	return c.memo.Render(props)
}

// Renders reports how many times the heading template actually ran.
func (c *Title) Renders() int {
	return c.memo.Renders()
}

func (c *Title) heading(props TitleProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		open := "<h1>"
		if c.class != "" {
			open = `<h1 class="` + templ.EscapeString(c.class) + `">`
		}
		_, err := io.WriteString(w, open+templ.EscapeString(props.Text)+"</h1>")
		return err
	})
}
