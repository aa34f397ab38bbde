package auth

import (
	"os"
	"strings"
	"time"

	"github.com/joeydtaylor/tramp/pkg/manifest"
	"go.uber.org/fx"
)

// NewGuard builds a guard from the manifest auth block and the secret.
func NewGuard(cfg manifest.Auth, secret []byte) *Guard {
	return &Guard{
		cookieName: cfg.CookieName,
		secret:     secret,
		issuer:     cfg.Issuer,
		audience:   cfg.Audience,
		leeway:     time.Duration(cfg.LeewaySeconds) * time.Second,
		protect:    append([]string(nil), cfg.Protect...),
	}
}

// ProvideGuard returns nil when the manifest has no auth block, which
// leaves the hook unregistered.
func ProvideGuard(cfg manifest.Config) *Guard {
	if cfg.Auth == nil {
		return nil
	}
	secret := strings.TrimSpace(os.Getenv(cfg.Auth.SecretEnv))
	return NewGuard(*cfg.Auth, []byte(secret))
}

var Module = fx.Options(
	fx.Provide(ProvideGuard),
)
