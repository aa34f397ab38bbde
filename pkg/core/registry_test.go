package core

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

type bookController struct {
	Base
	mu    sync.Mutex
	added []string
}

func (c *bookController) Prefix() string { return "/book" }

func (c *bookController) Routes() []Route {
	return []Route{
		{Suffix: "/add", Methods: []string{"POST"}, Handler: c.addBook},
	}
}

func (c *bookController) addBook(req *Request) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.added = append(c.added, req.QueryString())
	return "added"
}

// shelfController collides with bookController on /book/add.
type shelfController struct{ Base }

func (shelfController) Prefix() string { return "/book/" }

func (shelfController) Routes() []Route {
	return []Route{{Suffix: "add", Methods: []string{"GET"}, Handler: func(*Request) any { return "shelf" }}}
}

func TestMountBookController(t *testing.T) {
	reg := NewRegistry()
	c := &bookController{}
	if err := Mount(reg, c); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if reg.Len() != 1 {
		t.Fatalf("Len = %d, want 1", reg.Len())
	}
	e, ok := reg.Lookup("/book/add")
	if !ok {
		t.Fatalf("/book/add not registered: %s", reg.Describe())
	}
	if got := e.MethodList(); len(got) != 1 || got[0] != "POST" {
		t.Fatalf("methods = %v", got)
	}
	if e.Owner != c {
		t.Fatalf("owner is not the mounted instance")
	}

	req, _ := NewRequest(testEnv("POST", "/book/add"))
	if out := e.Handler(req); out != "added" {
		t.Fatalf("handler returned %v", out)
	}
	if len(c.added) != 1 {
		t.Fatalf("handler not bound to owner")
	}
}

func TestMountDuplicateRegardlessOfOrder(t *testing.T) {
	orders := [][]Controller{
		{&bookController{}, shelfController{}},
		{shelfController{}, &bookController{}},
	}
	for i, cs := range orders {
		reg := NewRegistry()
		if err := Mount(reg, cs[0]); err != nil {
			t.Fatalf("order %d first mount: %v", i, err)
		}
		if err := Mount(reg, cs[1]); !errors.Is(err, ErrDuplicateRoute) {
			t.Fatalf("order %d: err = %v, want ErrDuplicateRoute", i, err)
		}
	}
}

func TestMountSameControllerTwice(t *testing.T) {
	reg := NewRegistry()
	if err := Mount(reg, &bookController{}); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if err := Mount(reg, &bookController{}); !errors.Is(err, ErrDuplicateRoute) {
		t.Fatalf("err = %v, want ErrDuplicateRoute", err)
	}
}

func TestMountBaseIsExempt(t *testing.T) {
	reg := NewRegistry()
	if err := Mount(reg, Base{}); err != nil {
		t.Fatalf("Mount(Base): %v", err)
	}
	if err := Mount(reg, Base{}); err != nil {
		t.Fatalf("second Mount(Base): %v", err)
	}
	if reg.Len() != 0 {
		t.Fatalf("Base registered %d routes", reg.Len())
	}
}

func TestRegisterValidation(t *testing.T) {
	h := func(*Request) any { return nil }
	cases := []struct {
		name    string
		handler HandlerFunc
		methods []string
		want    error
	}{
		{"no methods", h, nil, ErrNoMethods},
		{"blank methods", h, []string{" "}, ErrNoMethods},
		{"nil handler", nil, []string{"GET"}, ErrNilHandler},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := NewRegistry().Register("/x", tc.handler, tc.methods, nil)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestRegistryOrderAndDescribe(t *testing.T) {
	reg := NewRegistry()
	h := func(*Request) any { return nil }
	for _, p := range []string{"/z", "/a", "/m"} {
		if err := reg.Register(p, h, []string{"get", "post"}, nil); err != nil {
			t.Fatalf("Register %s: %v", p, err)
		}
	}
	var paths []string
	for _, e := range reg.Routes() {
		paths = append(paths, e.Path)
	}
	if strings.Join(paths, " ") != "/z /a /m" {
		t.Fatalf("order = %v", paths)
	}
	want := "3 route(s)\n  /z [GET,POST]\n  /a [GET,POST]\n  /m [GET,POST]"
	if got := reg.Describe(); got != want {
		t.Fatalf("Describe =\n%s\nwant\n%s", got, want)
	}
}

func TestRegistryFreeze(t *testing.T) {
	reg := NewRegistry()
	reg.Freeze()
	err := reg.Register("/late", func(*Request) any { return nil }, []string{"GET"}, nil)
	if !errors.Is(err, ErrRegistryFrozen) {
		t.Fatalf("err = %v, want ErrRegistryFrozen", err)
	}
}

func TestJoinPath(t *testing.T) {
	cases := map[[2]string]string{
		{"/", "/add"}:       "/add",
		{"", "hello"}:       "/hello",
		{"/book", "/add"}:   "/book/add",
		{"/book/", "add"}:   "/book/add",
		{"book", ""}:        "/book",
		{"/", ""}:           "/",
		{"/api//v1", "/x/"}: "/api/v1/x",
	}
	for in, want := range cases {
		if got := JoinPath(in[0], in[1]); got != want {
			t.Errorf("JoinPath(%q, %q) = %q, want %q", in[0], in[1], got, want)
		}
	}
}
