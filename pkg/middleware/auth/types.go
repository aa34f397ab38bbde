package auth

import (
	"strings"
	"time"
)

type Role struct {
	Name string `json:"name"`
}

type User struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Guard validates HS256 assertion cookies for requests under the protected
// path prefixes. It is configured once and read-only afterwards.
type Guard struct {
	cookieName string
	secret     []byte
	issuer     string
	audience   string
	leeway     time.Duration
	protect    []string
}

// Protects reports whether path falls under a protected prefix.
func (g *Guard) Protects(path string) bool {
	for _, p := range g.protect {
		if path == p || strings.HasPrefix(path, strings.TrimSuffix(p, "/")+"/") {
			return true
		}
	}
	return false
}
