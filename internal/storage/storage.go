package storage

import (
	"context"
	"fmt"

	"github.com/marcelsud/bookshelf-api/book"
	"github.com/marcelsud/bookshelf-api/book/memory"
	"github.com/marcelsud/bookshelf-api/book/postgres"
	"github.com/marcelsud/bookshelf-api/book/redis"
	"github.com/marcelsud/bookshelf-api/config"
)

// Open builds the book repository selected by STORE_BACKEND.
// The postgres backend creates its table when missing.
func Open(ctx context.Context, cfg *config.Config) (book.Repository, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return memory.NewRepository(), nil
	case config.BackendRedis:
		repo, err := redis.NewRepository(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("opening redis store: %w", err)
		}
		return repo, nil
	case config.BackendPostgres:
		repo, err := postgres.NewRepository(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("opening postgres store: %w", err)
		}
		if err := repo.CreateTable(ctx); err != nil {
			repo.Close(ctx)
			return nil, fmt.Errorf("preparing postgres store: %w", err)
		}
		return repo, nil
	}
	return nil, fmt.Errorf("unknown store backend: %s", cfg.StoreBackend)
}
