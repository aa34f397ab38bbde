package main

import "github.com/joeydtaylor/tramp/pkg/core"

const greeting = "Hello World, Tramp!"

type HelloController struct{ core.Base }

func NewHelloController() *HelloController { return &HelloController{} }

func (c *HelloController) Routes() []core.Route {
	return []core.Route{
		{Suffix: "/", Methods: []string{"GET"}, Handler: c.index},
		{Suffix: "/hello", Methods: []string{"GET"}, Handler: c.index},
	}
}

func (c *HelloController) index(*core.Request) any { return greeting }
