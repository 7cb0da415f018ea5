package store

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"jobnotify-engine/internal/config"
)

// SQLitePath resolves the configured sqlite file against the data dir.
func SQLitePath(cfg config.Config) string {
	p := cfg.Store.SQLitePath
	if p == "" {
		p = "jobnotify.db"
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(cfg.App.DataDir, p)
}

// OpenKV opens the backend named by cfg.Store.Backend. dsn overrides the
// configured redis/postgres URL when non-empty (e.g. after a password was injected).
func OpenKV(ctx context.Context, cfg config.Config, dsn string) (KV, error) {
	switch cfg.Store.Backend {
	case "", config.BackendSQLite:
		path := SQLitePath(cfg)
		db, err := Open(path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", path, err)
		}
		if err := Migrate(db.Pool); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate sqlite: %w", err)
		}
		log.Printf("[store] sqlite ready at %s", path)
		return db, nil

	case config.BackendRedis:
		if dsn == "" {
			dsn = cfg.Store.RedisURL
		}
		rdb, err := NewRedisClient(ctx, dsn)
		if err != nil {
			return nil, err
		}
		log.Printf("[store] redis ready at %s", rdb.Options().Addr)
		return NewRedisKV(rdb), nil

	case config.BackendPostgres:
		if dsn == "" {
			dsn = cfg.Store.DatabaseURL
		}
		pool, err := NewPostgresPool(ctx, dsn)
		if err != nil {
			return nil, err
		}
		kv, err := NewPostgresKV(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		log.Printf("[store] postgres ready")
		return kv, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
