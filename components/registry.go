package components

import (
	"github.com/a-h/templ"
	"github.com/pthm/hxtitle"
)

// Set holds the component instances for one page.
type Set struct {
	Title *Title
	Async *AsyncTitle
}

// Root returns the component to mount: the title itself, or its lazy
// stand-in.
func (s *Set) Root(lazy bool) hxtitle.Renderer[TitleProps] {
	if lazy {
		return s.Async
	}
	return s.Title
}

// Init creates the title components and registers the routed ones.
// An empty styleKey selects the unstyled title.
//
//	reg := hxtitle.NewRegistry(key)
//	set, err := components.Init(reg, "red", nil)
func Init(reg *hxtitle.Registry, styleKey string, placeholder templ.Component) (*Set, error) {
	var title *Title
	if styleKey == "" {
		title = NewTitle()
	} else {
		var err error
		if title, err = NewStyledTitle(styleKey); err != nil {
			return nil, err
		}
	}

	reg.Add(title)

	return &Set{
		Title: title,
		Async: NewAsyncTitle(title, placeholder),
	}, nil
}
