// pkg/core/dispatcher.go
package core

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// EmitFunc is the transport's emission callback. It is called exactly once
// per request, before the body is handed back.
type EmitFunc func(status string, headers []Header)

// Dispatcher is the per-request entry point. Hooks and the registry are
// configured during start-up; Freeze is called before serving, after which
// the dispatcher is read-only and safe for concurrent use.
type Dispatcher struct {
	reg    *Registry
	before []Hook
	after  []Hook
	log    *zap.Logger
	obs    Observer
	frozen bool
}

type Option func(*Dispatcher)

func WithLogger(l *zap.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.log = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(d *Dispatcher) {
		if o != nil {
			d.obs = o
		}
	}
}

func NewDispatcher(reg *Registry, opts ...Option) *Dispatcher {
	if reg == nil {
		reg = NewRegistry()
	}
	d := &Dispatcher{reg: reg, log: zap.NewNop(), obs: nopObserver{}}
	for _, o := range opts {
		o(d)
	}
	return d
}

func (d *Dispatcher) Registry() *Registry { return d.reg }

// BeforeRequest appends h to the pre-request chain and returns it.
func (d *Dispatcher) BeforeRequest(h Hook) (Hook, error) {
	if err := d.checkHook(h); err != nil {
		return nil, err
	}
	d.before = append(d.before, h)
	return h, nil
}

// AfterRequest appends h to the post-request chain and returns it.
func (d *Dispatcher) AfterRequest(h Hook) (Hook, error) {
	if err := d.checkHook(h); err != nil {
		return nil, err
	}
	d.after = append(d.after, h)
	return h, nil
}

func (d *Dispatcher) checkHook(h Hook) error {
	if d.frozen {
		return ErrDispatcherFrozen
	}
	if h == nil {
		return ErrNilHook
	}
	return nil
}

// Freeze ends configuration. The registry is frozen along with the hooks.
func (d *Dispatcher) Freeze() {
	d.frozen = true
	d.reg.Freeze()
}

func (d *Dispatcher) Frozen() bool { return d.frozen }

// Dispatch runs the full chain for env and returns the response to emit.
// Only a transport contract violation returns an error.
func (d *Dispatcher) Dispatch(env Environ) (*Response, error) {
	req, err := NewRequest(env)
	if err != nil {
		return nil, err
	}
	start := time.Now()

	for i, h := range d.before {
		if resp := h(req); resp != nil {
			d.log.Debug("request short-circuited",
				zap.String("method", req.Method()),
				zap.String("path", req.Path()),
				zap.Int("hook", i),
				zap.Int("status", resp.StatusCode()),
			)
			d.observe(req, OutcomeShortCircuit, resp, start)
			return resp, nil
		}
	}

	resp, outcome := d.route(req)

	for _, h := range d.after {
		if r := h(req); r != nil {
			resp = r
		}
	}
	d.observe(req, outcome, resp, start)
	return resp, nil
}

func (d *Dispatcher) route(req *Request) (*Response, Outcome) {
	entry, ok := d.reg.Lookup(req.Path())
	if !ok {
		return d.statusResponse(http.StatusNotFound), OutcomeNotFound
	}
	if !entry.Allows(req.Method()) {
		resp := d.statusResponse(http.StatusMethodNotAllowed)
		resp.SetHeaders(map[string]string{"Allow": strings.Join(entry.MethodList(), ", ")})
		return resp, OutcomeMethodNotAllowed
	}
	return d.coerce(req, entry.Handler(req))
}

func (d *Dispatcher) coerce(req *Request, out any) (*Response, Outcome) {
	switch v := out.(type) {
	case *Response:
		if v == nil {
			return NewResponse(""), OutcomeOK
		}
		return v, OutcomeOK
	case string:
		return NewResponse(v), OutcomeOK
	case []byte:
		return NewResponse(v), OutcomeOK
	case nil:
		return NewResponse(""), OutcomeOK
	case error:
		d.log.Error("handler failed",
			zap.String("method", req.Method()),
			zap.String("path", req.Path()),
			zap.Error(v),
		)
		return d.statusResponse(http.StatusInternalServerError), OutcomeHandlerError
	default:
		d.log.Error("handler returned unsupported result",
			zap.String("method", req.Method()),
			zap.String("path", req.Path()),
			zap.String("type", fmt.Sprintf("%T", out)),
		)
		return d.statusResponse(http.StatusInternalServerError), OutcomeHandlerError
	}
}

func (d *Dispatcher) statusResponse(code int) *Response {
	// code always comes from the table
	resp, _ := NewStatusResponse(code)
	return resp
}

func (d *Dispatcher) observe(req *Request, o Outcome, resp *Response, start time.Time) {
	d.obs.ObserveDispatch(req.Method(), req.Path(), o, resp.StatusCode(), time.Since(start).Seconds())
}

// ResponseToServer encodes resp, calls emit with the status line and
// flattened headers, and returns the body. If the body cannot be encoded,
// emit is not called and the error is returned.
func (d *Dispatcher) ResponseToServer(resp *Response, emit EmitFunc) ([]byte, error) {
	body, err := resp.FormatResponseBody()
	if err != nil {
		return nil, err
	}
	emit(statusLine(resp.StatusCode()), resp.FormatResponseHeader())
	return body, nil
}

// Serve is the transport-facing call: dispatch, then emit. A response body
// that cannot be encoded is replaced by a 500 response.
func (d *Dispatcher) Serve(env Environ, emit EmitFunc) ([]byte, error) {
	resp, err := d.Dispatch(env)
	if err != nil {
		return nil, err
	}
	body, err := d.ResponseToServer(resp, emit)
	if err != nil {
		d.log.Error("response body encode failed",
			zap.String("path", env[EnvPathInfo]),
			zap.Error(err),
		)
		return d.ResponseToServer(d.statusResponse(http.StatusInternalServerError), emit)
	}
	return body, nil
}
