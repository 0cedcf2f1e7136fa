// Package server wires configuration into the running dashboard.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	appleague "github.com/preston-bernstein/fpl-dashboard/internal/app/league"
	"github.com/preston-bernstein/fpl-dashboard/internal/cache"
	"github.com/preston-bernstein/fpl-dashboard/internal/config"
	httpserver "github.com/preston-bernstein/fpl-dashboard/internal/http"
	"github.com/preston-bernstein/fpl-dashboard/internal/http/handlers"
	"github.com/preston-bernstein/fpl-dashboard/internal/logging"
	"github.com/preston-bernstein/fpl-dashboard/internal/metrics"
	"github.com/preston-bernstein/fpl-dashboard/internal/poller"
	"github.com/preston-bernstein/fpl-dashboard/internal/providers"
	"github.com/preston-bernstein/fpl-dashboard/internal/web"
)

const redisKeyPrefix = "fpl-dashboard:"

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	cache         io.Closer
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
}

// New constructs a server with the configured provider, cache backend,
// snapshots and telemetry.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsStop := buildMetrics(ctx, cfg, logger)
	provider := newProviderFactory(logger, recorder).build(cfg)

	s, err := newServerWithProvider(ctx, cfg, logger, provider, recorder)
	if err != nil {
		if metricsStop != nil {
			_ = metricsStop(ctx)
		}
		return nil, err
	}
	s.metricsServer = metricsSrv
	s.metricsStop = metricsStop
	return s, nil
}

func newServerWithProvider(ctx context.Context, cfg config.Config, logger *slog.Logger, provider providers.LeagueProvider, recorder *metrics.Recorder) (*Server, error) {
	store, err := cache.New(ctx, cfg.Cache.Backend, cache.RedisConfig{
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
		Prefix:   redisKeyPrefix,
	}, cacheJanitorInterval, logger)
	if err != nil {
		return nil, fmt.Errorf("build cache: %w", err)
	}

	snaps := buildSnapshots(cfg.Snapshots)
	svc := appleague.NewService(provider, store, appleague.Options{
		TTL:       cfg.Cache.TTL,
		Logger:    logger,
		Metrics:   recorder,
		Snapshots: snaps.source(),
	})
	plr := poller.New(svc, snaps.snapshotWriter(), logger, recorder, cfg.PollInterval)

	router, err := buildRouter(cfg, logger, recorder, svc, snaps, plr)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &Server{
		cfg:        cfg,
		logger:     logger,
		metrics:    recorder,
		cache:      store,
		httpServer: newHTTPServer(cfg.Port, router),
		poller:     plr,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		poller:     plr,
	}
}

func buildRouter(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder, svc *appleague.Service, snaps snapshotComponents, plr Poller) (http.Handler, error) {
	pages, err := web.NewHandler(svc, web.Options{
		Project: cfg.CDF.Project,
		Space:   cfg.CDF.Space,
		Logger:  logger,
		Metrics: recorder,
	})
	if err != nil {
		return nil, fmt.Errorf("build pages: %w", err)
	}

	var admin *handlers.AdminHandler
	// The refresh endpoint only exists when a token is configured.
	if cfg.AdminToken != "" {
		admin = handlers.NewAdminHandler(svc, plr, cfg.AdminToken, logger)
	}

	return httpserver.NewRouter(httpserver.RouterConfig{
		API:         handlers.NewHandler(svc, snaps.reader(), logger, plr.Status),
		Admin:       admin,
		Pages:       pages,
		Logger:      logger,
		Metrics:     recorder,
		ServiceName: cfg.Metrics.ServiceName,
	}), nil
}

// Run starts the poller and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.poller.Start(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if err := s.poller.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop poller", err)
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", logging.FieldError, err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", logging.FieldError, err)
		}
	}

	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			logging.Warn(s.logger, "cache close failed", logging.FieldError, err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(ctx context.Context, cfg config.Config, logger *slog.Logger) (*metrics.Recorder, httpServer, func(context.Context) error) {
	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(ctx, recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", logging.FieldError, err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readHeaderTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Warn(logger, name+" server failed", logging.FieldError, err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
