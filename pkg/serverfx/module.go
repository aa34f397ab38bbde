package serverfx

import (
	"github.com/joeydtaylor/tramp/pkg/bundlefx"
	"github.com/joeydtaylor/tramp/pkg/core"
	"github.com/joeydtaylor/tramp/pkg/transport/httpx"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Options allow per-service env keys/defaults without code duplication.
type Options struct {
	Service         string // for logs only
	ManifestEnv     string // e.g. "TRAMP_MANIFEST"
	DefaultManifest string // e.g. "manifest.toml"
	ListenAddrEnv   string // e.g. "SERVER_LISTEN_ADDRESS"
	DefaultListen   string // e.g. ":9000"; the manifest's server.listen wins over it
	TLSCertEnv      string // e.g. "SSL_SERVER_CERTIFICATE"
	TLSKeyEnv       string // e.g. "SSL_SERVER_KEY"
	LogDirEnv       string // e.g. "TRAMP_LOG_DIR"
	LogLevelEnv     string // e.g. "TRAMP_LOG_LEVEL"; the manifest's server.log_level is the fallback
	DotEnvFile      string // optional; values never override the process env
}

// DefaultOptions returns the env key names used by cmd/tramp.
func DefaultOptions() Options {
	return Options{
		Service:         "tramp",
		ManifestEnv:     "TRAMP_MANIFEST",
		DefaultManifest: "manifest.toml",
		ListenAddrEnv:   "SERVER_LISTEN_ADDRESS",
		DefaultListen:   "127.0.0.1:9000",
		TLSCertEnv:      "SSL_SERVER_CERTIFICATE",
		TLSKeyEnv:       "SSL_SERVER_KEY",
		LogDirEnv:       "TRAMP_LOG_DIR",
		LogLevelEnv:     "TRAMP_LOG_LEVEL",
		DotEnvFile:      ".env",
	}
}

// AsController annotates a constructor so its result joins the controllers
// mounted into the registry at start-up.
func AsController(f any) any {
	return fx.Annotate(f, fx.As(new(core.Controller)), fx.ResultTags(`group:"controllers"`))
}

// Module returns a complete Fx option set. Register application hooks with
// fx.Invoke after it; they run after the assertion guard.
func Module(opts Options) fx.Option {
	return fx.Options(
		fx.Supply(opts),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),

		// Manifest and log dir come first; loggers depend on them.
		fx.Provide(provideManifest),
		fx.Provide(provideLogDir),
		fx.Provide(provideLogLevel),

		// Loggers, metrics, auth guard
		bundlefx.Module,

		// Mux implementation
		fx.Provide(httpx.NewChi),

		// Dispatch core
		fx.Provide(AsController(providePages)),
		fx.Provide(provideRegistry),
		fx.Provide(provideDispatcher),

		// HTTP handler (named "app")
		fx.Provide(fx.Annotate(provideRouter, fx.ResultTags(`name:"app"`))),

		fx.Invoke(registerGuard),
		fx.Invoke(registerHooks),
	)
}
