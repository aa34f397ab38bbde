// pkg/core/request.go
package core

import "fmt"

// Environ is the key/value environment a transport hands to the dispatcher
// for every inbound call.
type Environ map[string]string

// Environment keys the transport contract guarantees.
const (
	EnvRequestMethod = "REQUEST_METHOD"
	EnvPathInfo      = "PATH_INFO"
	EnvQueryString   = "QUERY_STRING"
	EnvRemoteAddr    = "REMOTE_ADDR"
	EnvRemoteHost    = "REMOTE_HOST"
	EnvUserAgent     = "HTTP_USER_AGENT"
	EnvCookie        = "HTTP_COOKIE"
	EnvContentLength = "CONTENT_LENGTH"
)

// RequiredEnvKeys is the full set NewRequest extracts, in a stable order.
var RequiredEnvKeys = []string{
	EnvRequestMethod,
	EnvPathInfo,
	EnvQueryString,
	EnvRemoteAddr,
	EnvRemoteHost,
	EnvUserAgent,
	EnvCookie,
	EnvContentLength,
}

// Request is an immutable snapshot of one inbound call. QueryString and
// CookieHeader are opaque; parsing them is left to the caller.
type Request struct {
	method        string
	path          string
	queryString   string
	remoteAddr    string
	remoteHost    string
	userAgent     string
	cookieHeader  string
	contentLength string
}

// NewRequest extracts the recognised keys from env. A missing key is a
// transport contract violation and fails with ErrMissingEnvKey.
func NewRequest(env Environ) (*Request, error) {
	for _, k := range RequiredEnvKeys {
		if _, ok := env[k]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingEnvKey, k)
		}
	}
	return &Request{
		method:        env[EnvRequestMethod],
		path:          env[EnvPathInfo],
		queryString:   env[EnvQueryString],
		remoteAddr:    env[EnvRemoteAddr],
		remoteHost:    env[EnvRemoteHost],
		userAgent:     env[EnvUserAgent],
		cookieHeader:  env[EnvCookie],
		contentLength: env[EnvContentLength],
	}, nil
}

func (r *Request) Method() string        { return r.method }
func (r *Request) Path() string          { return r.path }
func (r *Request) QueryString() string   { return r.queryString }
func (r *Request) RemoteAddr() string    { return r.remoteAddr }
func (r *Request) RemoteHost() string    { return r.remoteHost }
func (r *Request) UserAgent() string     { return r.userAgent }
func (r *Request) CookieHeader() string  { return r.cookieHeader }
func (r *Request) ContentLength() string { return r.contentLength }
