package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-kasir/internal/analytics"
	"github.com/noah-isme/backend-kasir/internal/app"
	"github.com/noah-isme/backend-kasir/internal/auth"
	"github.com/noah-isme/backend-kasir/internal/cache"
	"github.com/noah-isme/backend-kasir/internal/common"
	"github.com/noah-isme/backend-kasir/internal/config"
	dbgen "github.com/noah-isme/backend-kasir/internal/db/gen"
	"github.com/noah-isme/backend-kasir/internal/events"
	"github.com/noah-isme/backend-kasir/internal/giftcard"
	"github.com/noah-isme/backend-kasir/internal/health"
	kasirmw "github.com/noah-isme/backend-kasir/internal/http/middleware"
	"github.com/noah-isme/backend-kasir/internal/obs"
	"github.com/noah-isme/backend-kasir/internal/order"
	"github.com/noah-isme/backend-kasir/internal/ratelimit"
	"github.com/noah-isme/backend-kasir/internal/security"
	"github.com/noah-isme/backend-kasir/internal/tax"
)

const maxRequestBody = 1 << 20

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := obs.NewLogger(cfg.ObsLogFormat, cfg.ObsLogLevel).With().Str("env", cfg.AppEnv).Logger()
	obs.MustRegisterDomainMetrics(cfg.ObsMetricsNamespace, nil)

	if cfg.ObsEnableTracing {
		shutdown, err := obs.InitTracer(context.Background(), obs.TracingConfig{
			ServiceName:   "kasir-api",
			Component:     "api",
			Endpoint:      cfg.ObsOTLPEndpoint,
			Exporter:      cfg.ObsTracingExporter,
			SamplingRatio: cfg.ObsSamplingRatio,
			Environment:   cfg.AppEnv,
		})
		if err != nil {
			logger.Error().Err(err).Msg("initialise tracing")
			cfg.ObsEnableTracing = false
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Error().Err(err).Msg("shutdown tracer")
				}
			}()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.AutoMigrate {
		if err := app.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			logger.Fatal().Err(err).Msg("run migrations")
		}
	}

	startCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := app.OpenPostgres(startCtx, cfg.DatabaseURL, "kasir-api")
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer pool.Close()
	queries := dbgen.New(pool)

	redisClient, err := app.OpenRedis(startCtx, cfg.RedisURL, cfg.ObsEnablePrometheus, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("open redis")
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("close redis")
		}
	}()

	taskRedis, err := app.TaskRedis(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("task redis")
	}
	taskClient := asynq.NewClient(taskRedis)
	defer func() {
		if err := taskClient.Close(); err != nil {
			logger.Error().Err(err).Msg("close task client")
		}
	}()

	bus := &events.Bus{
		Store: queries,
		Notifiers: []events.Notifier{
			events.ReceiptNotifier{Client: taskClient, Enabled: cfg.ReceiptsEnabled, Queue: events.QueueReceipts, MaxRetry: 5},
		},
	}

	taxCatalog := &tax.Catalog{Q: queries, Cache: cache.New(redisClient, cfg.TaxCacheTTL), Logger: logger}
	orderSvc := &order.Service{
		Q:      queries,
		Tx:     order.PgTransactor{Pool: pool, Q: queries},
		Taxes:  taxCatalog,
		Events: bus,
		Logger: logger.With().Str("component", "order").Logger(),
	}
	orderHandler := &order.Handler{Svc: orderSvc, Logger: logger}

	giftcardHandler := &giftcard.Handler{Svc: &giftcard.Service{Q: queries}, Logger: logger}

	analyticsSvc := &analytics.Service{
		Q:            queries,
		Cache:        cache.New(redisClient, cfg.AnalyticsCacheTTL),
		Logger:       logger,
		DefaultRange: 30,
	}
	analyticsHandler := &analytics.Handler{Svc: analyticsSvc, Logger: logger}

	authMiddleware := auth.Middleware{Verifier: auth.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)}
	idem := common.Idem{R: redisClient, TTL: cfg.IdempotencyTTL}

	orderLimiter, err := ratelimit.NewRedisLimiter(redisClient, cfg.RateLimitOrders, "kasir:rl:orders")
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise rate limiter")
	}
	limit := ratelimit.Handler{
		Limiter: orderLimiter,
		Key:     ratelimit.BusinessKey,
		OnError: func(err error) { logger.Warn().Err(err).Msg("rate limiter store failed") },
	}

	var httpMetrics *obs.HTTPMetrics
	if cfg.ObsEnablePrometheus {
		httpMetrics = obs.NewHTTPMetrics(cfg.ObsMetricsNamespace, obs.ParseBuckets(cfg.ObsMetricsBuckets), nil)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(obs.RouteSpans)
	if httpMetrics != nil {
		r.Use(obs.HTTPObs{Metrics: httpMetrics}.Middleware)
	}
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins(cfg),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key"},
		ExposedHeaders: []string{"X-Total-Count", "X-RateLimit-Remaining", "Retry-After"},
		MaxAge:         300,
	}))
	r.Use(security.Headers{EnableHSTS: cfg.AppEnv == "production"}.Middleware)

	if cfg.ObsEnablePrometheus {
		r.Handle("/metrics", promhttp.Handler())
	}

	healthHandler := health.Handler{
		Checker:      health.Deps{Pool: pool, Redis: redisClient},
		DBTimeout:    500 * time.Millisecond,
		RedisTimeout: 300 * time.Millisecond,
	}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	r.Route("/api/v1", func(v chi.Router) {
		v.Use(security.BodyLimit{Max: maxRequestBody}.Middleware)
		v.Use(authMiddleware.RequireAuth)
		v.Use(kasirmw.RequireBusiness)

		v.Route("/orders", func(o chi.Router) {
			o.With(limit.Middleware).Post("/preview", orderHandler.Preview)
			o.With(limit.Middleware, idem.Middleware).Post("/", orderHandler.Create)
			o.Get("/", orderHandler.List)
			o.Get("/{id}", orderHandler.Get)
		})

		v.Get("/giftcards/{id}", giftcardHandler.Get)

		v.Group(func(admin chi.Router) {
			admin.Use(auth.RequireRole("owner", "admin"))
			admin.Post("/admin/giftcards", giftcardHandler.Create)
			admin.Patch("/admin/giftcards/{id}", giftcardHandler.Patch)
			admin.Get("/reports/sales", analyticsHandler.Sales)
		})
	})

	var handler http.Handler = r
	if cfg.ObsEnableTracing {
		handler = obs.HTTPHandler(r, "kasir-api")
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server exited unexpectedly")
		}
	}()

	<-ctx.Done()
	drain(srv, logger)
}

func drain(srv *http.Server, logger zerolog.Logger) {
	health.SetReady(false)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown")
		return
	}
	logger.Info().Msg("server stopped")
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}
