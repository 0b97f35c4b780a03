package app

import "time"

// Config описывает настройки запуска приложения.
type Config struct {
	// OpsAddr — адрес служебного HTTP-сервера (/metrics, /healthz, /livez, /readyz).
	OpsAddr string
	// PostgresDSN — строка подключения к PostgreSQL. Пустое значение
	// переключает хранилище на in-memory (локальная разработка).
	PostgresDSN string
	// MigrateOnStart применяет up-миграции при старте с PostgreSQL.
	MigrateOnStart bool
	// KafkaBrokers — брокеры через запятую; пусто отключает публикацию событий.
	KafkaBrokers string
	// IdempotencyCleanupInterval — период чистки протухших idempotency-ключей.
	IdempotencyCleanupInterval time.Duration
}

// DefaultConfig возвращает базовые настройки.
func DefaultConfig() Config {
	return Config{
		OpsAddr:                    ":9090",
		MigrateOnStart:             true,
		IdempotencyCleanupInterval: 5 * time.Minute,
	}
}
