package serverfx

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/joeydtaylor/tramp/pkg/core"
	"github.com/joeydtaylor/tramp/pkg/manifest"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ---------- Lifecycle (HTTP server) ----------

type serverDeps struct {
	fx.In
	Opts     Options
	Cfg      manifest.Config
	Handler  http.Handler `name:"app"`
	D        *core.Dispatcher
	Logger   *zap.Logger
	Shutdown fx.Shutdowner
}

// listenAddr resolves env, then manifest, then the option default.
func listenAddr(opts Options, cfg manifest.Config) string {
	def := opts.DefaultListen
	if cfg.Server.Listen != "" {
		def = cfg.Server.Listen
	}
	return envOr(opts.ListenAddrEnv, def)
}

func registerHooks(lc fx.Lifecycle, d serverDeps) {
	addr := listenAddr(d.Opts, d.Cfg)
	cert := os.Getenv(d.Opts.TLSCertEnv)
	key := os.Getenv(d.Opts.TLSKeyEnv)
	useTLS := d.Opts.TLSCertEnv != "" && d.Opts.TLSKeyEnv != "" && fileExists(cert) && fileExists(key)

	srv := &http.Server{
		Addr:         addr,
		Handler:      d.Handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			// No hook or route may be added once requests can arrive.
			d.D.Freeze()

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}

			serve := func() error { return srv.Serve(ln) }
			mode := "PLAINTEXT"
			if useTLS {
				serve = func() error { return srv.ServeTLS(ln, cert, key) }
				mode = "TLS"
			}
			d.Logger.Info("server starting",
				zap.String("service", d.Opts.Service),
				zap.String("mode", mode),
				zap.String("addr", ln.Addr().String()),
			)

			go func() {
				if err := serve(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					d.Logger.Error("server failed", zap.Error(err))
					_ = d.Shutdown.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			d.Logger.Info("server stopping", zap.String("service", d.Opts.Service))
			return srv.Shutdown(ctx)
		},
	})
}
