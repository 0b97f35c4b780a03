// Package app собирает витрину: хранилище, сервисы, фоновые воркеры и
// служебный HTTP-сервер.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	healthcheck "github.com/gamestorelab/gamestore/internal/health"
	"github.com/gamestorelab/gamestore/internal/service/idempotency"
	"github.com/gamestorelab/gamestore/internal/storage/postgres"
	"github.com/gamestorelab/gamestore/internal/version"
)

func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	healthHandler := healthcheck.NewHandler(version.GetVersion())

	var (
		deps  *Dependencies
		store *postgres.Store
	)
	if cfg.PostgresDSN != "" {
		var err error
		store, err = postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		if cfg.MigrateOnStart {
			if err := store.MigrateUp(ctx, 0); err != nil {
				return err
			}
		}
		deps = NewPostgresDependencies(store, logger)
		healthHandler.RegisterChecker("postgres", healthcheck.NewSimpleChecker("postgres", func() error {
			return store.Ping(context.Background())
		}))
		logger.Info("postgres storage initialized")
	} else {
		deps = NewMemoryDependencies(logger)
		logger.Warn("postgres DSN is empty, using in-memory storage")
	}

	kafkaProducer, _ := initKafkaProducer(cfg.KafkaBrokers, logger)
	defer closeKafka(kafkaProducer, logger)

	services := NewServices(deps, eventPublisherOrNil(kafkaProducer))
	healthHandler.RegisterChecker("services", healthcheck.NewSimpleChecker("services", func() error {
		if services == nil || services.Checkout == nil {
			return errors.New("services are not initialized")
		}
		return nil
	}))
	logger.Info("storefront services initialized")

	cleanupWorker := idempotency.NewCleanupWorker(
		deps.Idempotency,
		idempotency.WithLogger(logger.WithField("component", "idempotency-cleanup")),
		idempotency.WithInterval(cfg.IdempotencyCleanupInterval),
	)
	go cleanupWorker.Run(ctx)

	opsSrv := startOpsServer(ctx, cfg.OpsAddr, logger, healthHandler)

	<-ctx.Done()
	logger.Info("получен сигнал остановки, останавливаем сервис")
	shutdownHTTP(opsSrv, logger)

	return ctx.Err()
}

// startOpsServer запускает служебный HTTP-сервер: метрики и health-пробы.
func startOpsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/livez, %s/readyz", addr, addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("ops server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("ops server shutdown with error")
	}
}
