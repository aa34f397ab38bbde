// Command tramp runs the demo application: a hello page, a small book
// shelf and the two request judges.
package main

import (
	"github.com/joeydtaylor/tramp/pkg/serverfx"
	"go.uber.org/fx"
)

func main() {
	app().Run()
}

func app(extra ...fx.Option) *fx.App {
	opts := []fx.Option{
		serverfx.Module(serverfx.DefaultOptions()),
		fx.Provide(
			serverfx.AsController(NewHelloController),
			serverfx.AsController(NewBookController),
		),
		fx.Invoke(registerJudges),
	}
	return fx.New(append(opts, extra...)...)
}
