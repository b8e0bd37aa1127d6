package main

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sunsetmark/palyingwithedgar-sub001/internal/draft"
	"github.com/sunsetmark/palyingwithedgar-sub001/internal/filing/adapters/edgar"
	"github.com/sunsetmark/palyingwithedgar-sub001/internal/filing/handler"
	filingmetrics "github.com/sunsetmark/palyingwithedgar-sub001/internal/filing/metrics"
	"github.com/sunsetmark/palyingwithedgar-sub001/internal/filing/ports"
	"github.com/sunsetmark/palyingwithedgar-sub001/internal/filing/service"
	"github.com/sunsetmark/palyingwithedgar-sub001/internal/filing/session"
	jwttoken "github.com/sunsetmark/palyingwithedgar-sub001/internal/jwt_token"
	"github.com/sunsetmark/palyingwithedgar-sub001/internal/platform/config"
	"github.com/sunsetmark/palyingwithedgar-sub001/internal/platform/httpserver"
	"github.com/sunsetmark/palyingwithedgar-sub001/internal/platform/logger"
	"github.com/sunsetmark/palyingwithedgar-sub001/internal/platform/metrics"
	"github.com/sunsetmark/palyingwithedgar-sub001/internal/platform/middleware"
	platformredis "github.com/sunsetmark/palyingwithedgar-sub001/internal/platform/redis"
	"github.com/sunsetmark/palyingwithedgar-sub001/pkg/platform/audit"
	auditkafka "github.com/sunsetmark/palyingwithedgar-sub001/pkg/platform/audit/kafka"
	"github.com/sunsetmark/palyingwithedgar-sub001/pkg/platform/audit/publisher"
	auditmemory "github.com/sunsetmark/palyingwithedgar-sub001/pkg/platform/audit/store/memory"
)

// main wires configuration, storage, collaborators, and the HTTP surface.
// Every external dependency is optional: with a bare environment the server
// runs fully in memory, which is the development and test posture.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx := context.Background()

	platformMetrics := metrics.New()
	filingMetrics := filingmetrics.New()

	// Draft storage: postgres when a DSN is configured, redis as the
	// short-lived fallback, memory otherwise. A configured key seals
	// payloads at rest in the persistent stores.
	var draftOpts []draft.Option
	if cfg.DraftEncryptionKey != "" {
		key, err := hex.DecodeString(cfg.DraftEncryptionKey)
		if err != nil || len(key) != draft.EncryptionKeySize {
			log.Error("draft encryption key must be hex-encoded and 32 bytes")
			os.Exit(1)
		}
		draftOpts = append(draftOpts, draft.WithEncryptionKey(key))
		log.Info("draft encryption at rest enabled")
	}

	var drafts ports.DraftStore
	var closers []func()

	switch {
	case cfg.PostgresDSN != "":
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			log.Error("failed to open postgres", "error", err)
			os.Exit(1)
		}
		if err := db.PingContext(ctx); err != nil {
			log.Error("failed to ping postgres", "error", err)
			os.Exit(1)
		}
		store, err := draft.NewPostgresStore(db, draftOpts...)
		if err != nil {
			log.Error("failed to build postgres draft store", "error", err)
			os.Exit(1)
		}
		drafts = store
		closers = append(closers, func() { _ = db.Close() })
		log.Info("draft store: postgres")
	case cfg.Redis.URL != "":
		redisClient, err := platformredis.New(cfg.Redis)
		if err != nil {
			log.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		store, err := draft.NewRedisStore(redisClient.Client, cfg.Redis.DraftTTL, draftOpts...)
		if err != nil {
			log.Error("failed to build redis draft store", "error", err)
			os.Exit(1)
		}
		drafts = store
		closers = append(closers, func() { _ = redisClient.Close() })
		log.Info("draft store: redis", "ttl", cfg.Redis.DraftTTL)
	default:
		drafts = draft.NewInMemoryStore()
		log.Info("draft store: memory")
	}

	// Audit trail: Kafka when brokers are configured, in-memory otherwise.
	var auditStore audit.Store
	if len(cfg.KafkaBrokers) > 0 {
		kafkaStore, err := auditkafka.New(ctx, cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Error("failed to connect to kafka", "error", err)
			os.Exit(1)
		}
		auditStore = kafkaStore
		closers = append(closers, kafkaStore.Close)
		log.Info("audit store: kafka", "topic", cfg.KafkaTopic)
	} else {
		auditStore = auditmemory.NewInMemoryStore()
		log.Info("audit store: memory")
	}
	auditPublisher := publisher.NewPublisher(auditStore,
		publisher.WithAsyncBuffer(256),
		publisher.WithLogger(log),
	)
	closers = append(closers, auditPublisher.Close)

	sessions := session.NewManager()

	opts := []service.Option{
		service.WithMetrics(filingMetrics),
		service.WithAudit(auditPublisher),
	}
	if cfg.EntityLookupURL != "" {
		opts = append(opts, service.WithEntityLookup(edgar.NewClient(cfg.EntityLookupURL)))
	}
	if cfg.RemoteValidatorURL != "" {
		opts = append(opts, service.WithRemoteValidator(edgar.NewClient(cfg.RemoteValidatorURL)))
	}
	if cfg.SubmissionURL != "" {
		opts = append(opts, service.WithSubmitter(edgar.NewClient(cfg.SubmissionURL)))
	}

	svc, err := service.New(sessions, drafts, log, opts...)
	if err != nil {
		log.Error("failed to construct filing service", "error", err)
		os.Exit(1)
	}

	var jwtValidator middleware.JWTValidator
	if cfg.JWTSigningKey != "" {
		jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, "filing-core")
		jwtValidator = jwttoken.NewJWTServiceAdapter(jwtService)
		log.Info("jwt authentication enabled")
	}

	router := chi.NewRouter()
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.Handler())
	handler.New(svc, log, platformMetrics, jwtValidator).Register(router)

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting filing core", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	for i := len(closers) - 1; i >= 0; i-- {
		closers[i]()
	}
}
