package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"PortfolioPulse/internal/service/cache"
	"PortfolioPulse/internal/service/ratelimit"
	"PortfolioPulse/pkg/config"
	xhttp "PortfolioPulse/pkg/http"
	applogger "PortfolioPulse/pkg/logger"
)

// limiterIdle is how long a client's throttle bucket survives without requests.
const limiterIdle = 30 * time.Minute

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	handler    xhttp.Handler
	cache      cache.BytesCache
	limiter    *ratelimit.Limiter
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	bc cache.BytesCache,
	limiter *ratelimit.Limiter,
) *App {
	if logger == nil {
		logger = applogger.NewNop()
	}
	a := &App{
		cfg:     cfg,
		logger:  logger,
		handler: handler,
		cache:   bc,
		limiter: limiter,
	}
	opts := []xhttp.ServerOption{
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(cfg.Server.CORS),
		xhttp.WithLogger(logger),
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetrics(cfg.Metrics.Path))
	}
	a.httpServer = xhttp.NewServer(handler, opts...)
	return a
}

// Server exposes the HTTP server, mainly for tests.
func (a *App) Server() *xhttp.Server { return a.httpServer }

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("http server started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("summarizer", a.cfg.Summarizer.Provider),
		applogger.String("cache", a.cfg.Cache.Backend),
	)

	go a.pruneLimiter(ctx)

	<-ctx.Done()
	a.logger.Info("shutdown signal received")
	return a.Shutdown(context.Background())
}

func (a *App) pruneLimiter(ctx context.Context) {
	if a.limiter == nil {
		return
	}
	t := time.NewTicker(limiterIdle / 2)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := a.limiter.Prune(limiterIdle); n > 0 {
				a.logger.Debug("pruned throttle buckets", applogger.Int("count", n))
			}
		}
	}
}

// Shutdown gracefully stops the HTTP server and closes the cache backend.
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("cache close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
