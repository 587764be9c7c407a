package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	gormlogger "gorm.io/gorm/logger"

	"github.com/piyush-pb/Personal-Finance-Tracker/internal/config"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/logger"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/models"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/store"
)

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		StoreDriver: config.DriverSQLite,
		SQLitePath:  filepath.Join(t.TempDir(), "finance.db"),
	}
}

func TestManager_SQLiteMigrations(t *testing.T) {
	logger.Init("test")
	ctx := context.Background()

	m, err := NewManager(ctx, sqliteConfig(t))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	defer m.Close(ctx)

	if err := m.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	// Applying again is a no-op.
	if err := m.Migrate(ctx); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}

	stores := m.Stores()
	if err := stores.Health.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	tx, err := stores.Transactions.Create(ctx, models.TransactionFields{
		Amount:      9.99,
		Date:        time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Description: "Coffee",
		Category:    models.CategoryFood,
	})
	if err != nil {
		t.Fatalf("Create transaction: %v", err)
	}
	if _, err := stores.Transactions.Get(ctx, tx.ID); err != nil {
		t.Errorf("Get transaction: %v", err)
	}

	fields := models.BudgetFields{Category: models.CategoryFood, Month: "2024-01", Amount: 200}
	if _, err := stores.Budgets.Create(ctx, fields); err != nil {
		t.Fatalf("Create budget: %v", err)
	}
	if _, err := stores.Budgets.Create(ctx, fields); !errors.Is(err, store.ErrDuplicate) {
		t.Errorf("expected migrated unique index to reject duplicate budget, got %v", err)
	}
}

func TestNewMigrator_Version(t *testing.T) {
	logger.Init("test")
	cfg := sqliteConfig(t)

	mig, err := NewMigrator(cfg)
	if err != nil {
		t.Fatalf("NewMigrator: %v", err)
	}
	defer mig.Close()

	if err := mig.Up(); err != nil {
		t.Fatalf("Up: %v", err)
	}
	version, dirty, err := mig.Version()
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if version != 2 || dirty {
		t.Errorf("expected version 2 clean, got %d dirty=%v", version, dirty)
	}

	if err := mig.Steps(-1); err != nil {
		t.Fatalf("Steps(-1): %v", err)
	}
	if version, _, _ := mig.Version(); version != 1 {
		t.Errorf("expected version 1 after rollback, got %d", version)
	}
}

func TestNewMigrator_RejectsMongo(t *testing.T) {
	if _, err := NewMigrator(&config.Config{StoreDriver: config.DriverMongo}); err == nil {
		t.Error("expected an error for a driver without SQL migrations")
	}
}

func TestNewManager_UnknownDriver(t *testing.T) {
	if _, err := NewManager(context.Background(), &config.Config{StoreDriver: "mysql"}); err == nil {
		t.Error("expected an error for an unknown driver")
	}
}

func TestGormLogLevel(t *testing.T) {
	tests := []struct {
		env  string
		want gormlogger.LogLevel
	}{
		{"development", gormlogger.Warn},
		{"production", gormlogger.Silent},
		{"test", gormlogger.Silent},
		{"", gormlogger.Silent},
	}

	for _, tt := range tests {
		if got := gormLogLevel(tt.env); got != tt.want {
			t.Errorf("gormLogLevel(%q) = %v, want %v", tt.env, got, tt.want)
		}
	}
}

func TestGormConfig(t *testing.T) {
	gc := gormConfig(&config.Config{Env: "production"})
	if !gc.TranslateError {
		t.Error("expected TranslateError to be enabled")
	}
	if gc.Logger == nil {
		t.Error("expected an explicit logger")
	}
}
