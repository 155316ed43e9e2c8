package main

import (
	"context"
	"database/sql"
	"time"

	"medguide/internal/database"
	"medguide/internal/repository"
	"medguide/internal/store"

	"go.uber.org/zap"
)

const backendMemory = "memory"

// openStore connects to the configured database.
func openStore() (*sql.DB, *repository.Repositories, database.Dialect, error) {
	db, dialect, err := database.Open(&cfg.Database)
	if err != nil {
		return nil, nil, "", err
	}
	return db, repository.NewSQLRepositories(db, dialect), dialect, nil
}

// openStoreOrMemory never fails: when the database is unreachable the
// returned repositories live in process memory and db is nil.
func openStoreOrMemory(ctx context.Context) (*sql.DB, *repository.Repositories, string) {
	db, repos, dialect, err := openStore()
	if err != nil {
		logger.Warn("database unavailable, falling back to in-memory store",
			zap.String("driver", cfg.Database.Driver),
			zap.Error(err),
		)
		return nil, repository.NewMemoryStore().Repositories(), backendMemory
	}
	if err := database.Migrate(ctx, db, dialect); err != nil {
		logger.Warn("schema creation failed, continuing", zap.Error(err))
	}
	logger.Info("database connected", zap.String("driver", string(dialect)))
	return db, repos, string(dialect)
}

// openCache returns nil when Redis is disabled or unreachable.
func openCache(ctx context.Context) *store.RedisKV {
	if !cfg.Redis.Enabled {
		return nil
	}
	kv := store.NewRedisKV(store.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB))
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := kv.Ping(pingCtx); err != nil {
		logger.Warn("redis unavailable, catalog cache disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		_ = kv.Close()
		return nil
	}
	logger.Info("catalog cache enabled", zap.String("addr", cfg.Redis.Addr), zap.Duration("ttl", cfg.Cache.TTL))
	return kv
}
