package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/etude-leroux/site-api/internal/config"
	"github.com/etude-leroux/site-api/internal/repositories"
	"github.com/etude-leroux/site-api/internal/seeding"
	"github.com/etude-leroux/site-api/internal/services"
	"github.com/etude-leroux/site-api/internal/utils"
)

const (
	maxRetries     = 5
	connectTimeout = 5 * time.Second
	initialBackoff = 500 * time.Millisecond
)

// App holds the database pool, repositories and services.
type App struct {
	Config *config.Config
	DB     *pgxpool.Pool

	PropertyRepo repositories.PropertyRepository
	ImageRepo    repositories.PropertyImageRepository
	TypeRepo     repositories.PropertyTypeRepository

	PropertyService services.PropertyService
	ContactService  services.ContactService
	RateLimiter     services.RateLimiterService

	redisClient *redis.Client
}

func NewApp(cfg *config.Config) (*App, error) {
	utils.Logger.Info("Initializing etude-api App")

	var (
		dbPool  *pgxpool.Pool
		err     error
		backoff = initialBackoff
	)

	for i := 1; i <= maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		dbPool, err = newDBPool(ctx, cfg.DBUrl)
		cancel()
		if err == nil {
			utils.Logger.Infof("etude-api connected to DB on attempt %d", i)
			break
		}

		utils.Logger.WithError(err).Warnf(
			"Failed DB connect on attempt %d/%d. Retrying in %v...",
			i, maxRetries, backoff,
		)

		if i == maxRetries {
			return nil, fmt.Errorf("unable to connect after %d attempts: %w", maxRetries, err)
		}
		time.Sleep(backoff)
		backoff *= 2
	}

	if err := seeding.EnsurePropertyTypes(dbPool); err != nil {
		// Non-fatal: the site can serve whatever types already exist.
		utils.Logger.WithError(err).Warn("Failed to seed property types")
	}

	imageRepo := repositories.NewPropertyImageRepository(dbPool)
	propertyRepo := repositories.NewPropertyRepository(dbPool, imageRepo)
	typeRepo := repositories.NewPropertyTypeRepository(dbPool)

	limiter, redisClient, err := newRateLimiter(cfg)
	if err != nil {
		dbPool.Close()
		return nil, err
	}

	return &App{
		Config:          cfg,
		DB:              dbPool,
		PropertyRepo:    propertyRepo,
		ImageRepo:       imageRepo,
		TypeRepo:        typeRepo,
		PropertyService: services.NewPropertyService(propertyRepo, typeRepo),
		ContactService:  services.NewContactService(cfg),
		RateLimiter:     limiter,
		redisClient:     redisClient,
	}, nil
}

func (a *App) Close() {
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			utils.Logger.WithError(err).Warn("Failed to close Redis client")
		}
	}
	if a.DB != nil {
		a.DB.Close()
		utils.Logger.Info("etude-api DB connection closed.")
	}
}

func newDBPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	cfg.MaxConnIdleTime = 2 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second
	return pgxpool.ConnectConfig(ctx, cfg)
}

// newRateLimiter picks the ledger backend: Redis when configured, else
// process memory.
func newRateLimiter(cfg *config.Config) (services.RateLimiterService, *redis.Client, error) {
	if cfg.RedisURL == "" {
		utils.Logger.Info("Rate limit ledger: in-memory")
		return services.NewMemoryRateLimiter(services.ContactLimitPerWindow, services.ContactWindow), nil, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}

	utils.Logger.Info("Rate limit ledger: Redis")
	return services.NewRedisRateLimiter(client, services.ContactLimitPerWindow, services.ContactWindow), client, nil
}
