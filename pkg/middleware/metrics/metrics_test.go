package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/joeydtaylor/tramp/pkg/core"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollectCountsRequests(t *testing.T) {
	h := Collect()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
	}))

	c := totalHttpRequestsToUri.WithLabelValues("405", "/collect-test", http.MethodPost)
	before := testutil.ToFloat64(c)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/collect-test", nil))
	if got := testutil.ToFloat64(c); got != before+1 {
		t.Fatalf("counter = %v, want %v", got, before+1)
	}
}

func TestCollectSkipsMetricsPath(t *testing.T) {
	AddMetricsSkipPaths("/skip-me")
	h := Collect()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))

	c := totalHttpRequestsToUri.WithLabelValues("200", "/skip-me", http.MethodGet)
	before := testutil.ToFloat64(c)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/skip-me", nil))
	if got := testutil.ToFloat64(c); got != before {
		t.Fatalf("skipped path was counted")
	}
}

func TestDispatchObserver(t *testing.T) {
	var o core.Observer = NewDispatchObserver()
	c := dispatchOutcomes.WithLabelValues(string(core.OutcomeNotFound), "404", http.MethodGet)
	before := testutil.ToFloat64(c)
	o.ObserveDispatch(http.MethodGet, "/nope", core.OutcomeNotFound, 404, 0.001)
	if got := testutil.ToFloat64(c); got != before+1 {
		t.Fatalf("counter = %v, want %v", got, before+1)
	}
}

func TestRegistryNormalizer(t *testing.T) {
	reg := core.NewRegistry()
	if err := reg.Register("/book/add", func(*core.Request) any { return nil }, []string{"POST"}, nil); err != nil {
		t.Fatalf("Register: %v", err)
	}
	norm := RegistryNormalizer(reg)
	if got := norm(httptest.NewRequest(http.MethodPost, "/book/add", nil)); got != "/book/add" {
		t.Fatalf("registered path label = %q", got)
	}
	if got := norm(httptest.NewRequest(http.MethodGet, "/wp-admin.php", nil)); got != UnmatchedLabel {
		t.Fatalf("unregistered path label = %q", got)
	}
}

func TestUnknownMethodsShareOneLabel(t *testing.T) {
	var o core.Observer = NewDispatchObserver()
	other := dispatchOutcomes.WithLabelValues(string(core.OutcomeNotFound), "404", OtherMethodLabel)
	before := testutil.ToFloat64(other)

	o.ObserveDispatch("BREW", "/pot", core.OutcomeNotFound, 404, 0.001)
	o.ObserveDispatch("PROPFIND-X1", "/pot", core.OutcomeNotFound, 404, 0.001)
	if got := testutil.ToFloat64(other); got != before+2 {
		t.Fatalf("other = %v, want %v", got, before+2)
	}

	h := Collect()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	c := totalHttpRequests.WithLabelValues("404", OtherMethodLabel)
	before = testutil.ToFloat64(c)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("BREW", "/pot", nil))
	if got := testutil.ToFloat64(c); got != before+1 {
		t.Fatalf("http other = %v, want %v", got, before+1)
	}

	for _, m := range []string{http.MethodGet, http.MethodPost, http.MethodOptions} {
		if got := methodLabel(m); got != m {
			t.Errorf("methodLabel(%q) = %q", m, got)
		}
	}
}
