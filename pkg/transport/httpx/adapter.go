package httpx

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	chimd "github.com/go-chi/chi/v5/middleware"
	"github.com/joeydtaylor/tramp/pkg/core"
	"go.uber.org/zap"
)

// Environ builds the dispatcher environment from a net/http request.
// Every required key is always present, possibly empty.
func Environ(r *http.Request) core.Environ {
	host := r.RemoteAddr
	if h, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		host = h
	}
	cl := r.Header.Get("Content-Length")
	if cl == "" && r.ContentLength > 0 {
		cl = strconv.FormatInt(r.ContentLength, 10)
	}
	return core.Environ{
		core.EnvRequestMethod: r.Method,
		core.EnvPathInfo:      r.URL.Path,
		core.EnvQueryString:   r.URL.RawQuery,
		core.EnvRemoteAddr:    host,
		core.EnvRemoteHost:    host,
		core.EnvUserAgent:     r.UserAgent(),
		core.EnvCookie:        strings.Join(r.Header.Values("Cookie"), "; "),
		core.EnvContentLength: cl,
	}
}

// Server is the net/http side of the transport contract: it feeds each
// request to the dispatcher and writes back what the emit callback and
// returned body describe.
type Server struct {
	d   *core.Dispatcher
	log *zap.Logger
}

func NewServer(d *core.Dispatcher, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{d: d, log: log}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	emitted := false
	body, err := s.d.Serve(Environ(r), func(status string, headers []core.Header) {
		emitted = true
		for _, h := range headers {
			w.Header().Set(h.Name, h.Value)
		}
		w.WriteHeader(statusCode(status))
	})
	if err != nil {
		s.log.Error("dispatch failed",
			zap.String("requestId", chimd.GetReqID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		if !emitted {
			http.Error(w, "Server Error.", http.StatusInternalServerError)
		}
		return
	}
	if _, err := w.Write(body); err != nil {
		s.log.Debug("response write failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
}

// statusCode reads the numeric code off a "<code> <reason>" status line.
func statusCode(status string) int {
	code, _, _ := strings.Cut(status, " ")
	n, err := strconv.Atoi(code)
	if err != nil || n < 100 || n > 999 {
		return http.StatusInternalServerError
	}
	return n
}
