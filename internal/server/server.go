package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/ahump20/blaze-data-gateway/internal/cache"
	"github.com/ahump20/blaze-data-gateway/internal/config"
	"github.com/ahump20/blaze-data-gateway/internal/gateway"
	gatewayhttp "github.com/ahump20/blaze-data-gateway/internal/http"
	"github.com/ahump20/blaze-data-gateway/internal/logging"
	"github.com/ahump20/blaze-data-gateway/internal/metrics"
	"github.com/ahump20/blaze-data-gateway/internal/ratelimit"
	"github.com/ahump20/blaze-data-gateway/internal/refresher"
)

var metricsSetup = metrics.Setup

// Server owns the gateway's runtime: fetch client, orchestrator, warm loop
// and the HTTP surface.
type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	memory        *cache.Memory
	store         cache.Cache
	redisClient   *redis.Client
	orchestrator  *gateway.Orchestrator
	httpServer    httpServer
	metricsServer httpServer
	refresher     Refresher
	metricsStop   func(context.Context) error
}

// New constructs a server from configuration.
func New(cfg config.Config, logger *slog.Logger) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger)
	memory, store, redisClient := buildCache(cfg, logger)

	limits := ratelimit.NewTracker()
	client := gateway.NewClient(gateway.ClientConfig{
		Providers: cfg.Providers,
		Cache:     store,
		Limits:    limits,
		Metrics:   recorder,
		Logger:    logger,
	})

	orch := gateway.NewOrchestrator(cfg.Breaker, store, recorder, logger)
	gamesAdapters, statsAdapters := buildAdapters(cfg.ProviderOrder, client, logger)
	orch.RegisterGames(gamesAdapters...)
	orch.RegisterTeamStats(statsAdapters...)

	var warm Refresher = noopRefresher{}
	var statusFn func() refresher.Status
	if cfg.RefreshEnabled {
		r := refresher.New(orch, logger, recorder, cfg.RefreshInterval)
		warm = r
		statusFn = r.Status
	}

	handler := gatewayhttp.NewHandler(orch, logger, statusFn, cfg.AdminToken)
	router := gatewayhttp.NewRouter(handler, logger, recorder)

	srv := netHTTPServer{srv: &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}}

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		memory:        memory,
		store:         store,
		redisClient:   redisClient,
		orchestrator:  orch,
		httpServer:    srv,
		metricsServer: metricsSrv,
		refresher:     warm,
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, warm Refresher) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		refresher:  warm,
	}
}

// Run starts the warm loop and HTTP servers, then waits for context
// cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if s.memory != nil && s.cfg.Cache.SweepInterval > 0 {
		s.memory.StartSweeper(ctx, s.cfg.Cache.SweepInterval)
	}
	s.refresher.Start(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
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
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.refresher.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop refresher", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}
	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			logging.Warn(s.logger, "redis close failed", "error", err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

// buildCache assembles the cache stack: always an in-process memory tier,
// plus a shared Redis tier when configured.
func buildCache(cfg config.Config, logger *slog.Logger) (*cache.Memory, cache.Cache, *redis.Client) {
	memory := cache.NewMemory()
	if cfg.Cache.RedisURL == "" {
		return memory, memory, nil
	}

	opts, err := redis.ParseURL(cfg.Cache.RedisURL)
	if err != nil {
		logging.Warn(logger, "invalid redis url, using memory cache only", "error", err)
		return memory, memory, nil
	}
	client := redis.NewClient(opts)
	return memory, cache.NewLayered(memory, client, logger), client
}

func buildMetrics(cfg config.Config, logger *slog.Logger) (*metrics.Recorder, httpServer, func(context.Context) error) {
	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "error", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", handler)
		metricsSrv = netHTTPServer{srv: &http.Server{
			Addr:    ":" + recCfg.Port,
			Handler: mux,
		}}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
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
