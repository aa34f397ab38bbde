package manifest

import (
	"errors"
	"fmt"
	"strings"
)

// Auth configures the assertion-cookie hook. The signing secret is never
// stored in the manifest; SecretEnv names the variable that holds it.
type Auth struct {
	CookieName    string   `toml:"cookie_name"`
	SecretEnv     string   `toml:"secret_env"`
	Issuer        string   `toml:"issuer"`
	Audience      string   `toml:"audience"`
	LeewaySeconds int      `toml:"leeway_seconds"`
	Protect       []string `toml:"protect"` // path prefixes that require a valid assertion
}

func (a *Auth) validate() error {
	a.CookieName = strings.TrimSpace(a.CookieName)
	if a.CookieName == "" {
		a.CookieName = "assert"
	}
	a.SecretEnv = strings.TrimSpace(a.SecretEnv)
	if a.SecretEnv == "" {
		a.SecretEnv = "ASSERTION_HMAC_SECRET"
	}
	if a.LeewaySeconds < 0 {
		return errors.New("auth.leeway_seconds must be >= 0")
	}
	if a.LeewaySeconds == 0 {
		a.LeewaySeconds = 60
	}
	for i, p := range a.Protect {
		p = strings.TrimSpace(p)
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("auth.protect[%d] %q must start with /", i, p)
		}
		a.Protect[i] = p
	}
	return nil
}
