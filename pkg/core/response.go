// pkg/core/response.go
package core

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/joeydtaylor/tramp/pkg/codec"
)

const defaultContentType = "text/plain; charset=utf-8"

// Header is one flattened response header, in the order handed to the transport.
type Header struct {
	Name  string
	Value string
}

// Response is built for a single request and discarded once emitted.
// Body may be a string or []byte; anything else fails at emission. The zero
// value is a usable empty 200 response.
type Response struct {
	Body       any
	statusCode int
	headers    map[string]string
}

// NewResponse returns a 200 response with a text/plain content type.
func NewResponse(body any) *Response {
	return &Response{
		Body:       body,
		statusCode: http.StatusOK,
		headers:    map[string]string{"Content-Type": defaultContentType},
	}
}

// NewStatusResponse builds a response whose body is the reason phrase of code.
func NewStatusResponse(code int) (*Response, error) {
	r := NewResponse("")
	if err := r.SetStatusCode(code); err != nil {
		return nil, err
	}
	r.Body = r.StatusDesc()
	return r, nil
}

// JSON marshals v with c and returns a 200 response carrying the codec's content type.
func JSON(v any, c codec.Codec) (*Response, error) {
	if c == nil {
		c = codec.JSONStrict
	}
	b, err := c.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("core: encode json body: %w", err)
	}
	r := NewResponse(b)
	r.headers["Content-Type"] = c.ContentType()
	return r, nil
}

// StatusCode returns the status. A Response built as a literal has no
// status set yet and reports 200.
func (r *Response) StatusCode() int {
	if r.statusCode == 0 {
		return http.StatusOK
	}
	return r.statusCode
}

// SetStatusCode fails with ErrUnknownStatus when code is not in the status table.
func (r *Response) SetStatusCode(code int) error {
	if _, ok := reasons[code]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownStatus, code)
	}
	r.statusCode = code
	return nil
}

// StatusDesc returns the reason phrase for the current status code.
func (r *Response) StatusDesc() string { return reasons[r.StatusCode()] }

// SetHeaders merges h into the existing headers, overwriting equal names.
func (r *Response) SetHeaders(h map[string]string) {
	if r.headers == nil {
		r.headers = make(map[string]string, len(h))
	}
	for k, v := range h {
		r.headers[http.CanonicalHeaderKey(k)] = v
	}
}

// Header returns a single header value.
func (r *Response) Header(name string) string {
	return r.headers[http.CanonicalHeaderKey(name)]
}

// FormatResponseHeader flattens the headers into name-sorted pairs.
func (r *Response) FormatResponseHeader() []Header {
	out := make([]Header, 0, len(r.headers))
	for k, v := range r.headers {
		out = append(out, Header{Name: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// FormatResponseBody encodes the body. Strings are UTF-8 already in Go, so
// the conversion is a copy; []byte passes through untouched.
func (r *Response) FormatResponseBody() ([]byte, error) {
	switch b := r.Body.(type) {
	case string:
		return []byte(b), nil
	case []byte:
		return b, nil
	case nil:
		return []byte{}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedBodyType, r.Body)
	}
}
