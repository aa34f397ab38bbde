package main

import (
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/joeydtaylor/tramp/pkg/core"
	"go.uber.org/fx"
	"go.uber.org/zap/zaptest"
)

func env(method, path, query, agent string) core.Environ {
	e := core.Environ{}
	for _, k := range core.RequiredEnvKeys {
		e[k] = ""
	}
	e[core.EnvRequestMethod] = method
	e[core.EnvPathInfo] = path
	e[core.EnvQueryString] = query
	e[core.EnvUserAgent] = agent
	return e
}

func newDemo(t *testing.T) (*core.Dispatcher, *BookController) {
	t.Helper()
	log := zaptest.NewLogger(t)
	books := NewBookController(log)
	reg := core.NewRegistry()
	core.MustMount(reg, NewHelloController(), books)
	d := core.NewDispatcher(reg, core.WithLogger(log))
	if err := registerJudges(d, log); err != nil {
		t.Fatalf("registerJudges: %v", err)
	}
	d.Freeze()
	return d, books
}

func body(t *testing.T, r *core.Response) string {
	t.Helper()
	b, err := r.FormatResponseBody()
	if err != nil {
		t.Fatalf("FormatResponseBody: %v", err)
	}
	return string(b)
}

func TestDemoRoutes(t *testing.T) {
	d, _ := newDemo(t)
	want := map[string][]string{
		"/":          {"GET"},
		"/hello":     {"GET"},
		"/book/add":  {"POST"},
		"/book/list": {"GET"},
	}
	if d.Registry().Len() != len(want) {
		t.Fatalf("routes: %s", d.Registry().Describe())
	}
	for p, methods := range want {
		e, ok := d.Registry().Lookup(p)
		if !ok {
			t.Fatalf("%s missing", p)
		}
		if got := e.MethodList(); len(got) != 1 || got[0] != methods[0] {
			t.Fatalf("%s methods = %v", p, got)
		}
	}
}

func TestJudgeUserShortCircuits(t *testing.T) {
	d, _ := newDemo(t)

	// judgeHello would answer ?hello, but judgeUser runs first.
	resp, err := d.Dispatch(env("GET", "/", "hello", ""))
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if resp.StatusCode() != http.StatusUnauthorized || body(t, resp) != "Unauthorized." {
		t.Fatalf("got %d %q", resp.StatusCode(), body(t, resp))
	}

	resp, _ = d.Dispatch(env("GET", "/nowhere", "hello", "curl"))
	if resp.StatusCode() != http.StatusOK || body(t, resp) != greeting {
		t.Fatalf("judgeHello: got %d %q", resp.StatusCode(), body(t, resp))
	}
}

func TestHello(t *testing.T) {
	d, _ := newDemo(t)
	for _, p := range []string{"/", "/hello"} {
		resp, _ := d.Dispatch(env("GET", p, "", "curl"))
		if resp.StatusCode() != http.StatusOK || body(t, resp) != greeting {
			t.Fatalf("%s: got %d %q", p, resp.StatusCode(), body(t, resp))
		}
		if ct := resp.Header("Content-Type"); ct != "text/plain; charset=utf-8" {
			t.Fatalf("%s: content type %q", p, ct)
		}
	}
}

func TestBookShelf(t *testing.T) {
	d, books := newDemo(t)

	resp, _ := d.Dispatch(env("POST", "/book/add", "title=Dune", "curl"))
	if body(t, resp) != "added Dune" {
		t.Fatalf("add: %q", body(t, resp))
	}
	resp, _ = d.Dispatch(env("POST", "/book/add", "", "curl"))
	if resp.StatusCode() != http.StatusBadRequest || body(t, resp) != "missing title" {
		t.Fatalf("add without title: %d %q", resp.StatusCode(), body(t, resp))
	}
	resp, _ = d.Dispatch(env("POST", "/book/add", "title=%zz", "curl"))
	if resp.StatusCode() != http.StatusInternalServerError {
		t.Fatalf("bad query: %d", resp.StatusCode())
	}
	resp, _ = d.Dispatch(env("GET", "/book/add", "title=Dune", "curl"))
	if resp.StatusCode() != http.StatusMethodNotAllowed || resp.Header("Allow") != "POST" {
		t.Fatalf("GET add: %d allow=%q", resp.StatusCode(), resp.Header("Allow"))
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Dispatch(env("POST", "/book/add", "title=Emma", "curl"))
		}()
	}
	wg.Wait()

	resp, _ = d.Dispatch(env("GET", "/book/list", "", "curl"))
	if resp.Header("Content-Type") != "application/json" {
		t.Fatalf("list content type %q", resp.Header("Content-Type"))
	}
	const want = `[{"title":"Dune","copies":1},{"title":"Emma","copies":20}]`
	if got := body(t, resp); got != want {
		t.Fatalf("list = %s, want %s", got, want)
	}

	books.mu.RLock()
	defer books.mu.RUnlock()
	if books.shelf["Emma"] != 20 {
		t.Fatalf("shelf = %v", books.shelf)
	}
}

func TestAppGraph(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TRAMP_MANIFEST", filepath.Join(dir, "absent.toml"))
	t.Setenv("TRAMP_LOG_DIR", filepath.Join(dir, "log"))
	if _, err := os.Stat(filepath.Join(dir, "absent.toml")); !os.IsNotExist(err) {
		t.Fatal("manifest should be absent")
	}

	var d *core.Dispatcher
	a := app(fx.Populate(&d))
	if err := a.Err(); err != nil {
		t.Fatalf("app: %v", err)
	}
	if _, ok := d.Registry().Lookup("/book/add"); !ok {
		t.Fatalf("routes: %s", d.Registry().Describe())
	}
}
