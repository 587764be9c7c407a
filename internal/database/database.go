// Package database opens the configured backing store and applies its
// schema. PostgreSQL and SQLite go through GORM with embedded SQL
// migrations; MongoDB gets its indexes ensured on startup.
package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/piyush-pb/Personal-Finance-Tracker/internal/config"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/logger"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/store"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/store/mongostore"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/store/sqlstore"
)

//go:embed migrations
var migrationsFS embed.FS

const connectTimeout = 10 * time.Second

// Manager handles database operations
type Manager struct {
	cfg   *config.Config
	db    *gorm.DB
	mongo *mongo.Database
}

// NewManager connects to the store selected by cfg.StoreDriver.
func NewManager(ctx context.Context, cfg *config.Config) (*Manager, error) {
	m := &Manager{cfg: cfg}

	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db, err := gorm.Open(postgres.New(postgres.Config{
			DSN:                  cfg.PostgresDSN(),
			PreferSimpleProtocol: true,
		}), gormConfig(cfg))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying DB: %w", err)
		}
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
		m.db = db

	case config.DriverSQLite:
		db, err := gorm.Open(sqlite.Open(cfg.SQLitePath+"?_foreign_keys=on&_busy_timeout=5000"), gormConfig(cfg))
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		m.db = db

	case config.DriverMongo:
		ctx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
		}
		m.mongo = client.Database(cfg.MongoDatabase)

	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}

	return m, nil
}

func gormConfig(cfg *config.Config) *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormLogLevel(cfg.Env)),
	}
}

// gormLogLevel keeps GORM's stdout logger quiet outside development so
// expected not-found lookups do not bypass the zap logger.
func gormLogLevel(env string) gormlogger.LogLevel {
	if env == "development" {
		return gormlogger.Warn
	}
	return gormlogger.Silent
}

// Stores returns the store adapters for the opened backend.
func (m *Manager) Stores() store.Stores {
	if m.mongo != nil {
		return mongostore.New(m.mongo)
	}
	return sqlstore.New(m.db)
}

// Migrate brings the schema up to date: SQL migrations for GORM backends,
// index creation for MongoDB.
func (m *Manager) Migrate(ctx context.Context) error {
	if m.mongo != nil {
		logger.Get().Info("Ensuring MongoDB indexes...")
		if err := mongostore.EnsureIndexes(ctx, m.mongo); err != nil {
			return fmt.Errorf("failed to ensure indexes: %w", err)
		}
		return nil
	}
	return m.RunMigrations()
}

// RunMigrations applies pending embedded SQL migrations.
func (m *Manager) RunMigrations() error {
	logger.Get().Info("Running database migrations...")

	mig, err := NewMigrator(m.cfg)
	if err != nil {
		return err
	}
	defer func() {
		srcErr, dbErr := mig.Close()
		if srcErr != nil {
			logger.Get().Warnf("migrate source close error: %v", srcErr)
		}
		if dbErr != nil {
			logger.Get().Warnf("migrate database close error: %v", dbErr)
		}
	}()

	if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Get().Info("Database migrations completed successfully")
	return nil
}

// NewMigrator builds a migrate instance over the embedded migrations for
// the configured SQL driver. It opens its own connection, which Close on the
// returned instance releases.
func NewMigrator(cfg *config.Config) (*migrate.Migrate, error) {
	var dir, url string
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		dir, url = "migrations/postgres", cfg.PostgresURL()
	case config.DriverSQLite:
		dir, url = "migrations/sqlite", "sqlite3://"+cfg.SQLitePath
	default:
		return nil, fmt.Errorf("store driver %q has no SQL migrations", cfg.StoreDriver)
	}

	src, err := iofs.New(migrationsFS, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	mig, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return mig, nil
}

// Close releases the connection pool or client.
func (m *Manager) Close(ctx context.Context) error {
	if m.mongo != nil {
		return m.mongo.Client().Disconnect(ctx)
	}
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
