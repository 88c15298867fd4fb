package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/twmb/franz-go/pkg/kgo"
	"golang.org/x/sync/errgroup"

	"aegis/internal/adminauth"
	"aegis/internal/audit"
	"aegis/internal/events"
	jwttoken "aegis/internal/jwt_token"
	"aegis/internal/nlp"
	"aegis/internal/platform/config"
	"aegis/internal/platform/httpserver"
	"aegis/internal/platform/logger"
	platformmetrics "aegis/internal/platform/metrics"
	"aegis/internal/platform/middleware"
	platformredis "aegis/internal/platform/redis"
	"aegis/internal/resolution"
	"aegis/internal/screening"
	"aegis/internal/screening/cache"
	"aegis/internal/screening/handler"
	screeningmetrics "aegis/internal/screening/metrics"
	"aegis/internal/screening/service"
	screeningstore "aegis/internal/screening/store"
	"aegis/internal/thresholds"
	thresholdshandler "aegis/internal/thresholds/handler"
	thresholdsstore "aegis/internal/thresholds/store"
	"aegis/internal/webhooks"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Profile and threshold storage: Postgres when configured, in-memory
	// otherwise (dev and tests).
	var (
		profileStore   screening.Store
		thresholdStore thresholds.Store
		pool           *pgxpool.Pool
		outboxDB       *sql.DB
	)
	if cfg.PostgresURL != "" {
		var err error
		pool, err = pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			log.Error("postgres pool init failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		profileStore = screeningstore.NewPostgres(pool)
		thresholdStore = thresholdsstore.NewPostgres(pool)

		outboxDB, err = sql.Open("postgres", cfg.PostgresURL)
		if err != nil {
			log.Error("outbox db init failed", "error", err)
			os.Exit(1)
		}
		defer outboxDB.Close()
	} else {
		log.Warn("no postgres configured, using in-memory stores")
		profileStore = screeningstore.NewMemoryStore()
		thresholdStore = thresholdsstore.NewMemoryStore()
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis init failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		profileStore = cache.New(profileStore, redisClient.Client, log)
	}

	auditor := audit.NewSlogRecorder(log)

	thresholdService, err := thresholds.New(thresholdStore,
		thresholds.WithLogger(log),
		thresholds.WithAudit(auditor),
	)
	if err != nil {
		log.Error("threshold service init failed", "error", err)
		os.Exit(1)
	}

	if cfg.NLP.BaseURL == "" {
		log.Error("AEGIS_NLP_URL is required")
		os.Exit(1)
	}
	analyzer := nlp.NewClient(cfg.NLP.BaseURL, cfg.NLP.Engine,
		nlp.WithRetryPolicy(cfg.NLP.MaxAttempts, cfg.NLP.BaseDelay))

	serviceOpts := []service.Option{
		service.WithThresholds(thresholdService),
		service.WithLogger(log),
		service.WithMetrics(screeningmetrics.New()),
		service.WithParallelism(cfg.Parallelism),
	}
	if cfg.ResolutionURL != "" {
		serviceOpts = append(serviceOpts, service.WithResolver(resolution.NewClient(cfg.ResolutionURL)))
	}

	// Risk-updated events fan out to the Kafka outbox and webhook receivers.
	var publishers []events.Publisher
	if outboxDB != nil {
		publishers = append(publishers, events.NewOutboxPublisher(outboxDB))
	}
	if cfg.Webhook.URL != "" {
		publishers = append(publishers, webhooks.NewDispatcher(
			[]webhooks.Endpoint{{
				ID:     "default",
				URL:    cfg.Webhook.URL,
				Secret: cfg.Webhook.Secret,
				Active: true,
			}},
			webhooks.WithLogger(log),
			webhooks.WithRetryPolicy(cfg.Webhook.MaxAttempts, cfg.Webhook.BaseDelay, 10*time.Second),
		))
	}
	if len(publishers) > 0 {
		serviceOpts = append(serviceOpts, service.WithPublisher(events.Fanout(publishers...)))
	}

	scoringService, err := service.New(profileStore, analyzer, serviceOpts...)
	if err != nil {
		log.Error("scoring service init failed", "error", err)
		os.Exit(1)
	}

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, "aegis", "aegis-admin")

	httpMetrics := platformmetrics.New()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RequestTime)
	router.Use(httpMetrics.Middleware)

	// Scoring endpoints get per-client throttling when Redis is available.
	var limiterClient *redis.Client
	if redisClient != nil {
		limiterClient = redisClient.Client
	}
	rateLimiter := middleware.NewRateLimiter(limiterClient, log,
		middleware.WithLimit(cfg.RateLimit),
		middleware.WithWindow(cfg.RateWindow),
	)
	router.Group(func(r chi.Router) {
		r.Use(rateLimiter.Limit("screening"))
		handler.NewHandler(scoringService, log).RegisterRoutes(r)
	})

	adminauth.NewHandler(jwtService, cfg.AdminKeyHash, log, auditor).RegisterRoutes(router)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(jwttoken.NewJWTServiceAdapter(jwtService), log))
		thresholdshandler.NewHandler(thresholdService, log).RegisterRoutes(r)
	})

	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	srv := httpserver.New(cfg.Addr, router)

	group, groupCtx := errgroup.WithContext(ctx)

	// Outbox relay: moves pending events to Kafka.
	if outboxDB != nil && len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := kgo.NewClient(
			kgo.SeedBrokers(cfg.Kafka.Brokers...),
			kgo.AllowAutoTopicCreation(),
		)
		if err != nil {
			log.Error("kafka client init failed", "error", err)
			os.Exit(1)
		}
		defer kafkaClient.Close()

		relay := events.NewRelay(outboxDB, kafkaClient, log)
		if err := relay.EnsureTopic(ctx, 3, 1); err != nil {
			log.Warn("topic creation failed, continuing", "error", err)
		}
		group.Go(func() error {
			return relay.Run(groupCtx)
		})
	}

	group.Go(func() error {
		log.Info("starting aegis", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
