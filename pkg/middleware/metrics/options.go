package metrics

import (
	"net/http"
	"strings"
	"sync"

	"github.com/joeydtaylor/tramp/pkg/core"
)

// UnmatchedLabel is the uri label used for paths no route is registered for.
const UnmatchedLabel = "unmatched"

// OtherMethodLabel is the method label for anything outside the standard set.
const OtherMethodLabel = "other"

var knownMethods = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodHead:    {},
	http.MethodPost:    {},
	http.MethodPut:     {},
	http.MethodPatch:   {},
	http.MethodDelete:  {},
	http.MethodConnect: {},
	http.MethodOptions: {},
	http.MethodTrace:   {},
}

var (
	skipMu    sync.RWMutex
	skipPaths = map[string]struct{}{"/metrics": {}, "/ping": {}}

	normMu         sync.RWMutex
	pathNormalizer = func(r *http.Request) string { return r.URL.Path }
)

// AddMetricsSkipPaths extends the skip list (default "/metrics" and "/ping").
func AddMetricsSkipPaths(paths ...string) {
	skipMu.Lock()
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p != "" {
			skipPaths[p] = struct{}{}
		}
	}
	skipMu.Unlock()
}

// SetPathNormalizer replaces the function producing the uri label.
func SetPathNormalizer(fn func(*http.Request) string) {
	if fn == nil {
		return
	}
	normMu.Lock()
	pathNormalizer = fn
	normMu.Unlock()
}

// RegistryNormalizer labels registered paths as themselves and everything
// else as UnmatchedLabel, so scanners cannot blow up label cardinality.
func RegistryNormalizer(reg *core.Registry) func(*http.Request) string {
	return func(r *http.Request) string {
		if _, ok := reg.Lookup(r.URL.Path); ok {
			return r.URL.Path
		}
		return UnmatchedLabel
	}
}

func isSkipPath(r *http.Request) bool {
	skipMu.RLock()
	_, ok := skipPaths[r.URL.Path]
	skipMu.RUnlock()
	return ok
}

func normalizePath(r *http.Request) string {
	normMu.RLock()
	fn := pathNormalizer
	normMu.RUnlock()
	return fn(r)
}

// methodLabel keeps client-chosen methods from growing label cardinality.
func methodLabel(m string) string {
	if _, ok := knownMethods[m]; ok {
		return m
	}
	return OtherMethodLabel
}
