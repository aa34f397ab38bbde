// pkg/core/controller.go
package core

import (
	"fmt"
	"path"
	"strings"
)

// Route is one row of a controller's route table.
type Route struct {
	Suffix  string
	Methods []string
	Handler HandlerFunc
}

// Controller groups handlers under a shared path prefix. An empty Prefix
// means "/".
type Controller interface {
	Prefix() string
	Routes() []Route
}

// Base is the marker controller meant to be embedded. It has no routes, so
// mounting it registers nothing.
type Base struct{}

func (Base) Prefix() string  { return "/" }
func (Base) Routes() []Route { return nil }

// Mount registers every route of c into reg under prefix+suffix. The
// composition root creates c once and calls Mount once during start-up;
// mounting two controllers that produce the same path fails with
// ErrDuplicateRoute.
func Mount(reg *Registry, c Controller) error {
	if c == nil {
		return fmt.Errorf("core: mount nil controller")
	}
	prefix := c.Prefix()
	for _, rt := range c.Routes() {
		full := JoinPath(prefix, rt.Suffix)
		if err := reg.Register(full, rt.Handler, rt.Methods, c); err != nil {
			return fmt.Errorf("mount %T: %w", c, err)
		}
	}
	return nil
}

// MustMount is Mount for package-level wiring where failure should abort.
func MustMount(reg *Registry, cs ...Controller) {
	for _, c := range cs {
		if err := Mount(reg, c); err != nil {
			panic(err)
		}
	}
}

// JoinPath concatenates a prefix and suffix into a single clean absolute path.
func JoinPath(prefix, suffix string) string {
	p := "/" + strings.Trim(prefix, "/") + "/" + strings.TrimLeft(suffix, "/")
	return path.Clean(p)
}
