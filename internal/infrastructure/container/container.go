// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	draftapp "github.com/denizsemerci/egeli-betty/internal/application/draft"
	recipeapp "github.com/denizsemerci/egeli-betty/internal/application/recipe"
	uploadapp "github.com/denizsemerci/egeli-betty/internal/application/upload"
	userapp "github.com/denizsemerci/egeli-betty/internal/application/user"
	"github.com/denizsemerci/egeli-betty/internal/infrastructure/cache"
	"github.com/denizsemerci/egeli-betty/internal/infrastructure/config"
	"github.com/denizsemerci/egeli-betty/internal/infrastructure/http/server"
	"github.com/denizsemerci/egeli-betty/internal/infrastructure/imaging"
	"github.com/denizsemerci/egeli-betty/internal/infrastructure/monitoring"
	"github.com/denizsemerci/egeli-betty/internal/infrastructure/persistence/database"
	gormrepo "github.com/denizsemerci/egeli-betty/internal/infrastructure/persistence/gorm"
	"github.com/denizsemerci/egeli-betty/internal/infrastructure/persistence/memory"
	"github.com/denizsemerci/egeli-betty/internal/infrastructure/security"
	"github.com/denizsemerci/egeli-betty/internal/infrastructure/storage"
	"github.com/denizsemerci/egeli-betty/internal/ports/inbound"
	"github.com/denizsemerci/egeli-betty/internal/ports/outbound"
	"github.com/denizsemerci/egeli-betty/pkg/healthcheck"
	"github.com/denizsemerci/egeli-betty/pkg/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	StorageModule,
	RepositoryModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// DatabaseModule provides the GORM connection
var DatabaseModule = fx.Provide(
	database.New,
)

// CacheModule provides the cache repository. Redis when enabled, otherwise
// the in-process fallback; either way the catalog keeps working.
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) outbound.CacheRepository {
		if cfg.Redis.Enabled {
			client, err := cache.NewRedisClient(cfg, log)
			if err == nil {
				return cache.NewRedisRepository(client, log)
			}
			log.Warn("Redis unavailable, falling back to in-memory cache", zap.Error(err))
		}
		return memory.NewCacheRepository()
	},
)

// StorageModule provides the image store and processor
var StorageModule = fx.Provide(
	storage.New,
	imaging.NewProcessor,
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormrepo.NewRecipeRepository,
	gormrepo.NewDraftRepository,
	gormrepo.NewUserRepository,
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	security.NewTokenService,
	monitoring.NewMetrics,

	func(
		recipeRepo outbound.RecipeRepository,
		cacheRepo outbound.CacheRepository,
		cfg *config.Config,
		metrics *monitoring.Metrics,
		log *zap.Logger,
	) inbound.RecipeService {
		return recipeapp.NewService(recipeRepo, cacheRepo, cfg.Redis.CacheTTL, metrics, log)
	},

	func(
		draftRepo outbound.DraftRepository,
		recipeRepo outbound.RecipeRepository,
		cacheRepo outbound.CacheRepository,
		fileStorage outbound.FileStorage,
		processor *imaging.Processor,
		log *zap.Logger,
	) inbound.DraftService {
		return draftapp.NewService(draftRepo, recipeRepo, cacheRepo, fileStorage, processor, log)
	},

	func(
		userRepo outbound.UserRepository,
		tokens *security.TokenService,
		log *zap.Logger,
	) inbound.UserService {
		return userapp.NewService(userRepo, tokens, log)
	},

	func(
		processor *imaging.Processor,
		fileStorage outbound.FileStorage,
		log *zap.Logger,
	) inbound.UploadService {
		return uploadapp.NewService(processor, fileStorage, log)
	},
)

// HTTPModule provides the HTTP server and its health report
var HTTPModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger, db *gorm.DB, cacheRepo outbound.CacheRepository) *healthcheck.HealthCheck {
		hc := healthcheck.New(cfg.App.Version, log)
		hc.Register("database", healthcheck.Database(db))
		hc.Register("cache", healthcheck.CheckerFunc(func(ctx context.Context) healthcheck.Check {
			probe := cache.KeyPrefix + "healthcheck"
			if err := cacheRepo.Set(ctx, probe, []byte("ok"), time.Minute); err != nil {
				return healthcheck.Check{Status: healthcheck.StatusDegraded, Message: err.Error()}
			}
			return healthcheck.Check{Status: healthcheck.StatusHealthy}
		}))
		return hc
	},
	server.New,
)

// LifecycleModule registers startup and shutdown hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks seeds the admin account, starts the HTTP server
// and tears everything down on stop.
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	srv *server.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting Egeli Betty",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			if err := database.SeedAdmin(ctx, db, cfg, log); err != nil {
				return err
			}

			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("HTTP server failed", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down Egeli Betty")

			if err := srv.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			if sqlDB, err := db.DB(); err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			_ = log.Sync()
			return nil
		},
	})
}
