package main

import (
	"net/http"

	"github.com/joeydtaylor/tramp/pkg/core"
	"go.uber.org/zap"
)

// judgeUser turns away clients that do not identify themselves.
func judgeUser(req *core.Request) *core.Response {
	if req.UserAgent() != "" {
		return nil
	}
	resp, _ := core.NewStatusResponse(http.StatusUnauthorized)
	return resp
}

// judgeHello answers ?hello on any path before routing.
func judgeHello(req *core.Request) *core.Response {
	if req.QueryString() != "hello" {
		return nil
	}
	return core.NewResponse(greeting)
}

func registerJudges(d *core.Dispatcher, log *zap.Logger) error {
	for _, h := range []core.Hook{judgeUser, judgeHello} {
		if _, err := d.BeforeRequest(h); err != nil {
			return err
		}
	}
	_, err := d.AfterRequest(func(req *core.Request) *core.Response {
		log.Debug("served", zap.String("method", req.Method()), zap.String("path", req.Path()))
		return nil
	})
	return err
}
