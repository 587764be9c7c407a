// Package sqlstore implements the store contracts on GORM, backed by
// PostgreSQL in production and SQLite for local runs and tests.
package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/piyush-pb/Personal-Finance-Tracker/internal/store"
)

// New returns the stores backed by db. db should be opened with
// gorm.Config{TranslateError: true} so unique violations surface as
// gorm.ErrDuplicatedKey.
func New(db *gorm.DB) store.Stores {
	return store.Stores{
		Transactions: &transactionStore{db: db},
		Budgets:      &budgetStore{db: db},
		Health:       &pinger{db: db},
	}
}

type pinger struct {
	db *gorm.DB
}

// Ping checks the underlying connection pool.
func (p *pinger) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// translate maps GORM errors onto the store sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return store.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return store.ErrDuplicate
	}
	return err
}
