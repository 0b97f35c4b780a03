package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	pingTimeout = 5 * time.Second

	poolMaxOpenConns    = 25
	poolMaxIdleConns    = 25
	poolConnMaxLifetime = 30 * time.Minute
	poolConnMaxIdleTime = 5 * time.Minute
)

// Store держит общий пул подключений к PostgreSQL для всех репозиториев витрины.
type Store struct {
	db *sql.DB
}

// Open открывает пул подключений и убеждается, что база отвечает.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}
	db.SetMaxOpenConns(poolMaxOpenConns)
	db.SetMaxIdleConns(poolMaxIdleConns)
	db.SetConnMaxLifetime(poolConnMaxLifetime)
	db.SetConnMaxIdleTime(poolConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &Store{db: db}, nil
}

// DB возвращает raw SQL DB: репозитории строят запросы на нём напрямую.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Ping проверяет доступность базы, обслуживает health-проверки.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("postgres store is not initialized")
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return s.db.PingContext(pingCtx)
}

// Close закрывает пул подключений.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
