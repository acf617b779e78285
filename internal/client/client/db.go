package client

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/dmitrijs2005/genzclient/internal/client/config"
	"github.com/dmitrijs2005/genzclient/internal/client/migrations"
	"github.com/dmitrijs2005/genzclient/internal/client/repositories/metadata"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	_ "modernc.org/sqlite"
)

// Store is an open durable backend.
type Store struct {
	Metadata metadata.Repository
	closer   io.Closer
}

func (s *Store) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// InitDatabase opens the SQLite database at dsn and migrates it.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %q: %w", dsn, err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// OpenStore opens the backend selected by cfg.Store. An empty value means
// sqlite.
func OpenStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.Store {
	case "", config.StoreSQLite:
		db, err := InitDatabase(ctx, cfg.SQLiteDSN)
		if err != nil {
			return nil, err
		}
		return &Store{Metadata: metadata.NewSQLiteRepository(db), closer: db}, nil

	case config.StoreRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddr, err)
		}
		return &Store{Metadata: metadata.NewRedisRepository(rdb, cfg.RedisPrefix), closer: rdb}, nil
	}
	return nil, fmt.Errorf("unknown store %q", cfg.Store)
}
