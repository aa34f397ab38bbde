package auth

import (
	"net/http"

	"github.com/joeydtaylor/tramp/pkg/core"
	"go.uber.org/zap"
)

// Hook returns a before-request hook that short-circuits protected paths
// with 401 unless the request carries a valid assertion cookie.
func (g *Guard) Hook(log *zap.Logger) core.Hook {
	if log == nil {
		log = zap.NewNop()
	}
	return func(req *core.Request) *core.Response {
		if !g.Protects(req.Path()) {
			return nil
		}
		raw := cookieValue(req.CookieHeader(), g.cookieName)
		if raw == "" {
			return unauthorized()
		}
		u, err := g.validateAssertion(raw)
		if err != nil {
			log.Info("assertion rejected",
				zap.String("path", req.Path()),
				zap.String("remoteAddr", req.RemoteAddr()),
				zap.Error(err),
			)
			return unauthorized()
		}
		log.Debug("assertion accepted", zap.String("username", u.Username), zap.String("path", req.Path()))
		return nil
	}
}

func unauthorized() *core.Response {
	resp, _ := core.NewStatusResponse(http.StatusUnauthorized)
	return resp
}

// cookieValue pulls one cookie out of a raw Cookie header. The core keeps
// the header opaque, so the hook leans on net/http's own parser.
func cookieValue(header, name string) string {
	if header == "" || name == "" {
		return ""
	}
	r := http.Request{Header: http.Header{"Cookie": {header}}}
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
