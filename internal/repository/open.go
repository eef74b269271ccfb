package repository

import (
	"context"
	"fmt"
	"time"

	"renove/internal/config"
	"renove/internal/infra"

	"github.com/rs/zerolog/log"
)

const readyProbeEvery = 500 * time.Millisecond

// Open builds the configured driver, waits until it answers (bounded by
// READY_TIMEOUT_SECONDS) and returns it behind the circuit breaker. The
// returned func releases the driver's connections.
func Open(ctx context.Context, cfg *config.Config) (*GuardedStore, func(), error) {
	var (
		inner   Store
		closeFn = func() {}
		migrate func(context.Context) error
	)

	switch cfg.StorageDriver {
	case config.DriverMemory:
		log.Warn().Msg("usando almacenamiento en memoria: los datos se pierden al reiniciar")
		inner = NewMemoryStore()

	case config.DriverRedis:
		rdb, err := infra.NewRedis(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("redis: %w", err)
		}
		inner = NewRedisStore(rdb)
		closeFn = func() { _ = rdb.Close() }

	case config.DriverPostgres:
		db, err := infra.NewDatabase(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres: %w", err)
		}
		inner = NewPostgresStore(db)
		closeFn = func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		migrate = func(ctx context.Context) error { return infra.ApplySchema(db.WithContext(ctx)) }

	default:
		return nil, nil, fmt.Errorf("driver %q no soportado", cfg.StorageDriver)
	}

	readyCtx, cancel := context.WithTimeout(ctx, cfg.ReadyTimeout())
	defer cancel()
	if err := <-infra.AwaitReady(readyCtx, cfg.StorageDriver, inner.Ping, readyProbeEvery); err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("%s no respondió en %s: %w", cfg.StorageDriver, cfg.ReadyTimeout(), err)
	}

	if migrate != nil {
		if err := migrate(ctx); err != nil {
			closeFn()
			return nil, nil, err
		}
	}

	return NewGuardedStore(inner, infra.NewCircuitBreaker(infra.DefaultCBConfig())), closeFn, nil
}
