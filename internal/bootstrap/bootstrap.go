// Package bootstrap mounts the title into the host page once at startup.
package bootstrap

import (
	"context"

	"github.com/a-h/templ"
	"github.com/pthm/hxtitle"
	"github.com/pthm/hxtitle/components"
	"github.com/pthm/hxtitle/internal/config"
	"github.com/pthm/hxtitle/internal/hostpage"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// PageTitle is the <title> of the built-in host page.
const PageTitle = "hxtitle"

// App is the result of a successful boot: the mounted document and the
// components that serve it.
type App struct {
	Page  string
	Props components.TitleProps
	Set   *components.Set
	Lazy  bool
}

// Boot registers the title components on reg and mounts the configured
// variant into the host page. The returned page never changes afterwards.
func Boot(ctx context.Context, cfg config.Config, reg *hxtitle.Registry) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	set, err := components.Init(reg, cfg.Style, nil)
	if err != nil {
		return nil, serr.Wrap(err, "failed to create title components")
	}

	page, err := hostPage(cfg)
	if err != nil {
		return nil, err
	}

	props := components.TitleProps{Text: cfg.Text}
	root := set.Root(cfg.Lazy())

	var head []templ.Component
	if set.Title.Class() != "" {
		head = append(head, components.TitleStyles.StyleTag())
	}
	// A custom host page may not load htmx; the placeholder never fires
	// without it.
	if cfg.Lazy() && !loadsHTMX(page, cfg.HTMXURL) {
		logger.Debug("Host page does not load htmx, injecting it", "src", cfg.HTMXURL)
		head = append(head, htmxScript(cfg.HTMXURL))
	}

	doc, err := Mount(ctx, page, cfg.Target, root.Render(ctx, props), head...)
	if err != nil {
		return nil, err
	}

	logger.Info("Title mounted",
		"variant", cfg.Variant,
		"style", cfg.Style,
		"target", cfg.Target,
		"route", set.Title.Prefix(),
	)

	return &App{
		Page:  doc,
		Props: props,
		Set:   set,
		Lazy:  cfg.Lazy(),
	}, nil
}

func htmxScript(src string) templ.Component {
	return templ.Raw(`<script src="` + templ.EscapeString(src) + `"></script>`)
}

func hostPage(cfg config.Config) (string, error) {
	if cfg.Page != "" {
		logger.Debug("Loading host page", "path", cfg.Page)
		return hostpage.Load(cfg.Page)
	}
	return hostpage.Default(hostpage.Options{
		Title:   PageTitle,
		Target:  cfg.Target,
		HTMXURL: cfg.HTMXURL,
	}), nil
}
