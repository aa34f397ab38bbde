package serverfx

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"

	chimd "github.com/go-chi/chi/v5/middleware"
	"github.com/joeydtaylor/tramp/pkg/core"
	"github.com/joeydtaylor/tramp/pkg/manifest"
	"github.com/joeydtaylor/tramp/pkg/middleware/auth"
	"github.com/joeydtaylor/tramp/pkg/middleware/logger"
	"github.com/joeydtaylor/tramp/pkg/middleware/metrics"
	"github.com/joeydtaylor/tramp/pkg/pages"
	"github.com/joeydtaylor/tramp/pkg/transport/httpx"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// loadDotEnv fills unset env vars from opts.DotEnvFile. A missing file is
// not an error.
func loadDotEnv(opts Options) error {
	if opts.DotEnvFile == "" {
		return nil
	}
	if err := godotenv.Load(opts.DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("dotenv %s: %w", opts.DotEnvFile, err)
	}
	return nil
}

// provideManifest is the root of the graph; every env lookup happens after it.
func provideManifest(opts Options) (manifest.Config, error) {
	if err := loadDotEnv(opts); err != nil {
		return manifest.Config{}, err
	}
	path := envOr(opts.ManifestEnv, opts.DefaultManifest)
	cfg, err := manifest.LoadOrDefault(path)
	if err != nil {
		return manifest.Config{}, fmt.Errorf("manifest %s: %w", path, err)
	}
	return cfg, nil
}

func provideLogDir(opts Options, cfg manifest.Config) logger.Dir {
	return logger.Dir(envOr(opts.LogDirEnv, cfg.Server.LogDir))
}

func provideLogLevel(opts Options, cfg manifest.Config) (logger.Level, error) {
	raw := envOr(opts.LogLevelEnv, cfg.Server.LogLevel)
	if raw == "" {
		return logger.Level(zapcore.InfoLevel), nil
	}
	lvl, err := zapcore.ParseLevel(raw)
	if err != nil {
		return 0, fmt.Errorf("log level %q: %w", raw, err)
	}
	return logger.Level(lvl), nil
}

func providePages(cfg manifest.Config, log *zap.Logger) *pages.Controller {
	return pages.NewController(cfg, log)
}

type registryDeps struct {
	fx.In
	Controllers []core.Controller `group:"controllers"`
	Log         *zap.Logger
}

// provideRegistry mounts every controller once. A duplicate path aborts
// start-up through the returned error.
func provideRegistry(d registryDeps) (*core.Registry, error) {
	reg := core.NewRegistry()
	for _, c := range d.Controllers {
		if err := core.Mount(reg, c); err != nil {
			return nil, err
		}
	}
	d.Log.Info("routes registered", zap.Int("count", reg.Len()), zap.String("routes", reg.Describe()))
	return reg, nil
}

func provideDispatcher(reg *core.Registry, log *zap.Logger, obs core.Observer) *core.Dispatcher {
	return core.NewDispatcher(reg, core.WithLogger(log), core.WithObserver(obs))
}

type routerDeps struct {
	fx.In

	LogMW   *logger.Middleware
	Metrics http.Handler `name:"metrics"`

	R   httpx.Router
	D   *core.Dispatcher
	Reg *core.Registry
	Log *zap.Logger
}

func provideRouter(d routerDeps) http.Handler {
	metrics.SetPathNormalizer(metrics.RegistryNormalizer(d.Reg))

	r := d.R
	r.Use(chimd.RequestID, chimd.Recoverer, chimd.Heartbeat("/ping"))
	r.Use(d.LogMW.Middleware(), metrics.Collect())

	r.Handle(http.MethodGet, "/metrics", d.Metrics)
	r.CatchAll(httpx.NewServer(d.D, d.Log))
	return r.Mux()
}

type guardDeps struct {
	fx.In
	Guard *auth.Guard
	D     *core.Dispatcher
	Log   *zap.Logger
}

func registerGuard(d guardDeps) error {
	if d.Guard == nil {
		return nil
	}
	_, err := d.D.BeforeRequest(d.Guard.Hook(d.Log))
	return err
}

// ---- helpers ----

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

func envOr(k, def string) string {
	if k == "" {
		return def
	}
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
