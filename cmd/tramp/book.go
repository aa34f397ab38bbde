package main

import (
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/joeydtaylor/tramp/pkg/codec"
	"github.com/joeydtaylor/tramp/pkg/core"
	"go.uber.org/zap"
)

// BookController keeps an in-memory shelf. Handlers run concurrently, so
// the shelf is guarded by mu.
type BookController struct {
	core.Base
	log *zap.Logger

	mu    sync.RWMutex
	shelf map[string]int
}

func NewBookController(log *zap.Logger) *BookController {
	return &BookController{log: log, shelf: map[string]int{}}
}

func (c *BookController) Prefix() string { return "/book" }

func (c *BookController) Routes() []core.Route {
	return []core.Route{
		{Suffix: "/add", Methods: []string{"POST"}, Handler: c.addBook},
		{Suffix: "/list", Methods: []string{"GET"}, Handler: c.listBooks},
	}
}

type bookCount struct {
	Title  string `json:"title"`
	Copies int    `json:"copies"`
}

func (c *BookController) addBook(req *core.Request) any {
	q, err := url.ParseQuery(req.QueryString())
	if err != nil {
		return err
	}
	title := strings.TrimSpace(q.Get("title"))
	if title == "" {
		resp := core.NewResponse("missing title")
		if err := resp.SetStatusCode(http.StatusBadRequest); err != nil {
			return err
		}
		return resp
	}

	c.mu.Lock()
	c.shelf[title]++
	n := c.shelf[title]
	c.mu.Unlock()

	c.log.Info("book added", zap.String("title", title), zap.Int("copies", n))
	return "added " + title
}

func (c *BookController) listBooks(*core.Request) any {
	c.mu.RLock()
	out := make([]bookCount, 0, len(c.shelf))
	for t, n := range c.shelf {
		out = append(out, bookCount{Title: t, Copies: n})
	}
	c.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	resp, err := core.JSON(out, codec.JSONStrict)
	if err != nil {
		return err
	}
	return resp
}
