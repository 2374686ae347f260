package app

import (
	"context"
	"fmt"

	"pg-connect/internal/config"
	"pg-connect/internal/db"
	"pg-connect/internal/repository/inmemory"
	pgslots "pg-connect/internal/repository/postgres/slots"
	redisslots "pg-connect/internal/repository/redis"
	s3slots "pg-connect/internal/repository/s3"
	"pg-connect/internal/repository/sqlite"
	"pg-connect/internal/store"
	"pg-connect/migrations"
	"pg-connect/pkg/logger"
)

// OpenBackend selects the slot backend named by STORE_DRIVER.
func OpenBackend(ctx context.Context, cfg config.Config, log logger.Logger) (store.Backend, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		log.Warn("store: using in-memory backend, data is lost on exit")
		return inmemory.NewSlotBackend(), nil

	case config.StoreDriverSQLite:
		log.Info("store: opening sqlite", "path", cfg.Store.SQLitePath)
		return sqlite.NewSlotBackend(cfg.Store.SQLitePath)

	case config.StoreDriverPostgres:
		gormDB, err := db.NewPostgres(cfg.DB, log)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(gormDB, migrations.Files, log); err != nil {
			if sqlDB, dbErr := gormDB.DB(); dbErr == nil {
				_ = sqlDB.Close()
			}
			return nil, fmt.Errorf("migrate: %w", err)
		}
		return pgslots.NewPostgres(gormDB), nil

	case config.StoreDriverS3:
		log.Info("store: using s3", "bucket", cfg.Store.S3.Bucket, "prefix", cfg.Store.S3.Prefix)
		return s3slots.New(ctx, s3Config(cfg.Store.S3))

	case config.StoreDriverRedis:
		log.Info("store: using redis", "addr", cfg.Store.Redis.Addr, "db", cfg.Store.Redis.DB)
		return redisslots.New(ctx, redisslots.Config{
			Addr:     cfg.Store.Redis.Addr,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
		})

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func s3Config(cfg config.S3Config) s3slots.Config {
	return s3slots.Config{
		Bucket:          cfg.Bucket,
		Region:          cfg.Region,
		Endpoint:        cfg.Endpoint,
		PathStyle:       cfg.PathStyle,
		Prefix:          cfg.Prefix,
		AccessKeyID:     cfg.AccessKeyID,
		SecretAccessKey: cfg.SecretAccessKey,
	}
}
