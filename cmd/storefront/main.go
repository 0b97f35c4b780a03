package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/gamestorelab/gamestore/internal/app"
)

// setupLogger настраивает формат и уровень логирования для сервиса.
func setupLogger() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)
	if v := os.Getenv("GAMESTORE_LOG_LEVEL"); v != "" {
		if level, err := log.ParseLevel(v); err == nil {
			log.SetLevel(level)
		}
	}
}

// readConfig формирует конфигурацию приложения, позволяя переопределить
// настройки через переменные окружения.
func readConfig() app.Config {
	cfg := app.DefaultConfig()
	if v := os.Getenv("GAMESTORE_OPS_ADDR"); v != "" {
		cfg.OpsAddr = v
	}
	if v := os.Getenv("GAMESTORE_POSTGRES_DSN"); v != "" {
		cfg.PostgresDSN = v
	}
	if v := os.Getenv("GAMESTORE_MIGRATE_ON_START"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.MigrateOnStart = b
		}
	}
	if v := os.Getenv("GAMESTORE_KAFKA_BROKERS"); v != "" {
		cfg.KafkaBrokers = v
	}
	if v := os.Getenv("GAMESTORE_IDEMPOTENCY_CLEANUP_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.IdempotencyCleanupInterval = d
		}
	}
	return cfg
}

func main() {
	setupLogger()
	cfg := readConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"ops_addr":      cfg.OpsAddr,
		"postgres":      cfg.PostgresDSN != "",
		"kafka_brokers": cfg.KafkaBrokers,
	}).Info("запускаем витрину игрового магазина")

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("сервис остановлен")
}
