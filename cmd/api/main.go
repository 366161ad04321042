package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/noah-isme/farmer-shop/internal/catalog"
	"github.com/noah-isme/farmer-shop/internal/common"
	"github.com/noah-isme/farmer-shop/internal/config"
	"github.com/noah-isme/farmer-shop/internal/health"
	"github.com/noah-isme/farmer-shop/internal/obs"
	"github.com/noah-isme/farmer-shop/internal/ratelimit"
	"github.com/noah-isme/farmer-shop/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := obs.NewLogger(obs.LoggerConfig{
		Format:  cfg.Obs.LogFormat,
		Level:   cfg.Obs.LogLevel,
		Service: cfg.Obs.ServiceName,
		Env:     cfg.AppEnv,
	})

	if cfg.Obs.EnablePrometheus {
		obs.MustRegisterDomainMetrics(cfg.Obs.MetricsNamespace, nil)
	}

	tracingEnabled := cfg.Obs.EnableTracing
	if tracingEnabled {
		shutdown, err := obs.InitTracer(context.Background(), obs.TracingConfig{
			ServiceName:    cfg.Obs.ServiceName,
			ServiceVersion: cfg.Obs.ServiceVersion,
			Endpoint:       cfg.Obs.OTLPEndpoint,
			Exporter:       cfg.Obs.TracingExporter,
			SamplingRatio:  cfg.Obs.TracingSamplingRatio,
			Environment:    cfg.AppEnv,
		})
		if err != nil {
			logger.Error().Err(err).Msg("initialise tracing")
			tracingEnabled = false
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Error().Err(err).Msg("shutdown tracer")
				}
			}()
		}
	}

	redisClient := newRedis(cfg, logger)
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error().Err(err).Msg("close redis")
			}
		}()
	}

	fileSource := catalog.FileSource{Path: cfg.ProductsFile}
	var source catalog.Provider = fileSource
	var limiter ratelimit.Limiter = ratelimit.StoreLimiter{Store: memory.NewStore(), Prefix: "ratelimit:"}
	if redisClient != nil {
		source = catalog.CachedSource{
			Source: fileSource,
			Cache:  catalog.NewCache(redisClient, cfg.CatalogCacheTTL),
			Logger: logger,
		}
		limiter = ratelimit.RedisLimiter{Client: redisClient, Prefix: "ratelimit:"}
	}

	shop := session.New(session.Config{
		Source:  source,
		TaxRate: cfg.TaxRate,
		Vendor:  cfg.VendorName,
		Logger:  &logger,
	})
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		_ = shop.LoadCatalog(ctx)
	}()

	var httpMetrics *obs.HTTPMetrics
	if cfg.Obs.EnablePrometheus {
		httpMetrics = obs.NewHTTPMetrics(cfg.Obs.MetricsNamespace, obs.ParseBucketsCSV(cfg.Obs.HistogramBuckets), nil)
	}

	handler := newRouter(routerDeps{
		Config:  cfg,
		Logger:  logger,
		Catalog: catalog.NewHandler(catalog.HandlerConfig{Source: source, Logger: &logger}),
		Session: session.NewHandler(session.HandlerConfig{Session: shop, Logger: &logger}),
		Health: health.Handler{
			Checker: readinessChecker{catalog: fileSource, redis: redisClient},
		},
		Metrics: httpMetrics,
		Tracing: tracingEnabled,
		Limiter: limiter,
		Idem:    common.Idem{R: redisClient, TTL: cfg.IdempotencyTTL},
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server starting")
		health.SetReady(true)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server exited unexpectedly")
		}
	case <-ctx.Done():
		health.SetReady(false)
		logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("graceful shutdown")
		}
	}
}

func newRedis(cfg *config.Config, logger zerolog.Logger) *redis.Client {
	if cfg.RedisURL == "" {
		logger.Info().Msg("redis disabled: catalog cache off, in-memory rate limiting")
		return nil
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse redis url")
	}
	client := redis.NewClient(opts)
	if err := redisotel.InstrumentTracing(client); err != nil {
		logger.Error().Err(err).Msg("instrument redis tracing")
	}
	if cfg.Obs.EnablePrometheus {
		if err := redisotel.InstrumentMetrics(client); err != nil {
			logger.Error().Err(err).Msg("instrument redis metrics")
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Msg("ping redis")
	}
	return client
}

type catalogPinger interface {
	Ping(ctx context.Context) error
}

type readinessChecker struct {
	catalog catalogPinger
	redis   *redis.Client
}

func (c readinessChecker) PingCatalog(ctx context.Context, timeout time.Duration) error {
	if c.catalog == nil {
		return errors.New("catalog not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.catalog.Ping(ctx)
}

func (c readinessChecker) PingRedis(ctx context.Context, timeout time.Duration) error {
	if c.redis == nil {
		return health.ErrDisabled
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.redis.Ping(ctx).Err()
}
