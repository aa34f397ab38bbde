// pkg/transport/httpx/router.go
package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Router is the minimal HTTP mux contract the server wiring depends on.
// The dispatcher sits behind it as a catch-all; the mux itself only carries
// transport-level endpoints such as /metrics.
type Router interface {
	Handle(method, path string, h http.Handler)
	Get(path string, h http.Handler)
	CatchAll(h http.Handler)
	Mux() http.Handler
	Use(mw ...func(http.Handler) http.Handler)
}

// chiRouter is our default Router backed by github.com/go-chi/chi.
type chiRouter struct{ r *chi.Mux }

// NewChi returns a Chi-backed Router.
func NewChi() Router { return &chiRouter{r: chi.NewRouter()} }

func (c *chiRouter) Handle(method, path string, h http.Handler) { c.r.Method(method, path, h) }
func (c *chiRouter) Get(path string, h http.Handler)            { c.r.Method(http.MethodGet, path, h) }
func (c *chiRouter) Mux() http.Handler                          { return c.r }
func (c *chiRouter) Use(mw ...func(http.Handler) http.Handler)  { c.r.Use(mw...) }

// CatchAll sends every request chi does not route itself to h, for any
// method. Method checks are left to h.
func (c *chiRouter) CatchAll(h http.Handler) {
	c.r.NotFound(h.ServeHTTP)
	c.r.MethodNotAllowed(h.ServeHTTP)
}
