// Package pages serves the static template routes declared in the manifest.
package pages

import (
	"errors"
	"net/http"

	"github.com/joeydtaylor/tramp/pkg/core"
	"github.com/joeydtaylor/tramp/pkg/manifest"
	"go.uber.org/zap"
)

// Controller exposes each manifest page as a route at its exact path.
type Controller struct {
	core.Base
	pages []manifest.Page
	tpl   core.Templates
	log   *zap.Logger
}

func NewController(cfg manifest.Config, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		pages: cfg.Pages,
		tpl:   core.Templates{Dir: cfg.Templates.Dir, Logger: log},
		log:   log,
	}
}

func (c *Controller) Routes() []core.Route {
	out := make([]core.Route, 0, len(c.pages))
	for _, p := range c.pages {
		out = append(out, core.Route{
			Suffix:  p.Path,
			Methods: p.Methods,
			Handler: c.render(p.Template),
		})
	}
	return out
}

func (c *Controller) render(name string) core.HandlerFunc {
	return func(req *core.Request) any {
		resp, err := c.tpl.Render(name)
		if errors.Is(err, core.ErrTemplateNotFound) {
			c.log.Warn("page template missing", zap.String("path", req.Path()), zap.String("template", name))
			nf, _ := core.NewStatusResponse(http.StatusNotFound)
			return nf
		}
		if err != nil {
			return err
		}
		return resp
	}
}
