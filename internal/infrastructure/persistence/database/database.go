// Package database opens and configures the GORM connection for the
// configured driver. Postgres is the production driver; sqlite serves
// local development and tests.
package database

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/denizsemerci/egeli-betty/internal/domain/user"
	"github.com/denizsemerci/egeli-betty/internal/infrastructure/config"
	gormModels "github.com/denizsemerci/egeli-betty/internal/infrastructure/persistence/gorm"
	"github.com/denizsemerci/egeli-betty/internal/infrastructure/persistence/migrations"
)

// New opens the database connection, configures the pool and verifies
// connectivity with a ping.
func New(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.GetDSN())
	default:
		dialector = postgres.Open(cfg.GetDSN())
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 newGormLogger(cfg),
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Postgres deployments run versioned migrations; sqlite keeps the
	// schema in sync through GORM auto-migration.
	if cfg.Database.Driver != "sqlite" {
		migrator, err := migrations.New(sqlDB, log)
		if err != nil {
			return nil, err
		}
		if err := migrator.Up(); err != nil {
			return nil, err
		}
	} else if cfg.Database.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			return nil, err
		}
	}

	log.Info("Database connection established",
		zap.String("driver", cfg.Database.Driver),
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
	)

	return db, nil
}

// AutoMigrate creates or updates the schema for all models.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&gormModels.RecipeModel{},
		&gormModels.DraftModel{},
		&gormModels.UserModel{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// SeedAdmin creates the admin account when the users table is empty.
// The seed password comes from configuration and is bcrypt-hashed before
// it is stored.
func SeedAdmin(ctx context.Context, db *gorm.DB, cfg *config.Config, log *zap.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&gormModels.UserModel{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	if cfg.Auth.SeedAdminPassword == "" {
		log.Warn("No seed admin password configured, skipping admin seed")
		return nil
	}

	admin, err := user.New(
		cfg.Auth.SeedAdminUsername,
		cfg.Auth.SeedAdminUsername,
		cfg.Auth.SeedAdminEmail,
		cfg.Auth.SeedAdminPassword,
	)
	if err != nil {
		return fmt.Errorf("failed to build seed admin: %w", err)
	}

	if err := db.WithContext(ctx).Create(gormModels.UserToModel(admin)).Error; err != nil {
		return fmt.Errorf("failed to create seed admin: %w", err)
	}

	log.Info("Seeded admin account", zap.String("username", admin.Username()))
	return nil
}

func newGormLogger(cfg *config.Config) logger.Interface {
	level := logger.Warn
	if cfg.App.Debug {
		level = logger.Info
	}
	return logger.Default.LogMode(level)
}
