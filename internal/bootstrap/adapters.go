package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/beanfield/storefront-gateway/config"
	"github.com/beanfield/storefront-gateway/internal/adapters/backend"
	memoryadapter "github.com/beanfield/storefront-gateway/internal/adapters/memory"
	postgresadapter "github.com/beanfield/storefront-gateway/internal/adapters/postgres"
	redisadapter "github.com/beanfield/storefront-gateway/internal/adapters/redis"
	"github.com/beanfield/storefront-gateway/internal/ports"
)

// AdapterContainer holds the infrastructure adapters behind the services:
// the commerce backend client, the credential store, and the catalog cache.
type AdapterContainer struct {
	Backend     *backend.Client
	Store       ports.CredentialStore
	Cache       ports.CatalogCache
	RedisClient redis.UniversalClient
	PgxPool     *pgxpool.Pool

	// Ready answers the /readyz probe against whichever store is active.
	Ready ReadinessPinger
}

// ReadinessPinger checks a dependency. Matches the router's probe interface.
type ReadinessPinger interface {
	Ping(ctx context.Context) error
}

// redisPinger adapts the go-redis client to the readiness probe.
type redisPinger struct {
	client redis.UniversalClient
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// BuildAdapters connects to the configured infrastructure. The session store
// driver decides which backend is dialed; the catalog cache rides on Redis
// whenever a Redis client exists, regardless of the session driver.
func BuildAdapters(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (*AdapterContainer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	backendClient, err := backend.NewClient(backend.ClientConfig{
		BaseURL: cfg.Backend.URL,
		Timeout: cfg.Backend.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("create backend client: %w", err)
	}

	container := &AdapterContainer{Backend: backendClient}

	switch cfg.Session.Driver {
	case config.SessionStoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.URI,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if pingErr := client.Ping(ctx).Err(); pingErr != nil {
			return nil, fmt.Errorf("ping redis: %w", pingErr)
		}
		container.RedisClient = client
		container.Store = redisadapter.NewCredentialStore(client, cfg.Session.TTL)
		container.Ready = redisPinger{client: client}

	case config.SessionStorePostgres:
		pool, poolErr := pgxpool.New(ctx, cfg.Postgres.DSN())
		if poolErr != nil {
			return nil, fmt.Errorf("create pgx pool: %w", poolErr)
		}
		if pingErr := pool.Ping(ctx); pingErr != nil {
			pool.Close()
			return nil, fmt.Errorf("ping postgres: %w", pingErr)
		}
		container.PgxPool = pool
		store := postgresadapter.NewCredentialStore(pool, cfg.Session.TTL)
		if schemaErr := store.EnsureSchema(ctx); schemaErr != nil {
			pool.Close()
			return nil, fmt.Errorf("ensure session schema: %w", schemaErr)
		}
		container.Store = store
		container.Ready = pool

	case config.SessionStoreMemory:
		logger.Warn("using in-memory session store; sessions do not survive restarts")
		container.Store = memoryadapter.NewCredentialStore()

	default:
		return nil, fmt.Errorf("unknown session store driver: %q", cfg.Session.Driver)
	}

	// The catalog cache is optional and Redis-only. When sessions live in
	// Postgres a dedicated cache client is dialed; a dead cache just means
	// every catalog read hits the backend.
	if cfg.Cache.Enabled {
		container.Cache = buildCatalogCache(ctx, cfg, container.RedisClient, logger)
	}

	return container, nil
}

func buildCatalogCache(
	ctx context.Context,
	cfg *config.AppConfig,
	existing redis.UniversalClient,
	logger *slog.Logger,
) ports.CatalogCache {
	client := existing
	if client == nil {
		candidate := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.URI,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := candidate.Ping(ctx).Err(); err != nil {
			logger.Warn("catalog cache disabled: redis unreachable", "error", err)
			return nil
		}
		client = candidate
	}
	return redisadapter.NewCatalogCache(client)
}

// Close releases adapter connections. Safe to call on a partially built
// container.
func (c *AdapterContainer) Close() {
	if c == nil {
		return
	}
	if c.RedisClient != nil {
		_ = c.RedisClient.Close()
	}
	if c.PgxPool != nil {
		c.PgxPool.Close()
	}
}

var _ ReadinessPinger = (*pgxpool.Pool)(nil)
