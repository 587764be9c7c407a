// Package store defines the persistence contracts for transactions and
// budgets. Adapters live in sub-packages; the rest of the application only
// sees these interfaces and the domain types from package models.
package store

import (
	"context"
	"errors"

	"github.com/piyush-pb/Personal-Finance-Tracker/internal/models"
)

var (
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("store: record not found")

	// ErrInvalidID is returned when an id cannot identify any record in the
	// store, e.g. a malformed UUID or ObjectID.
	ErrInvalidID = errors.New("store: invalid id")

	// ErrDuplicate is returned when a budget for the same category and
	// month already exists.
	ErrDuplicate = errors.New("store: duplicate record")
)

// BudgetFilter narrows a budget listing. Empty fields do not filter.
type BudgetFilter struct {
	Month string
}

// TransactionStore persists transactions.
type TransactionStore interface {
	// List returns every transaction, newest date first.
	List(ctx context.Context) ([]models.Transaction, error)
	Get(ctx context.Context, id string) (*models.Transaction, error)
	Create(ctx context.Context, fields models.TransactionFields) (*models.Transaction, error)
	Update(ctx context.Context, id string, fields models.TransactionFields) (*models.Transaction, error)
	Delete(ctx context.Context, id string) error
}

// BudgetStore persists budgets.
type BudgetStore interface {
	// List returns the budgets matching filter in insertion order.
	List(ctx context.Context, filter BudgetFilter) ([]models.Budget, error)
	Get(ctx context.Context, id string) (*models.Budget, error)
	Create(ctx context.Context, fields models.BudgetFields) (*models.Budget, error)
	Update(ctx context.Context, id string, fields models.BudgetFields) (*models.Budget, error)
	Delete(ctx context.Context, id string) error
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Stores bundles the adapters opened for one backend.
type Stores struct {
	Transactions TransactionStore
	Budgets      BudgetStore
	Health       Pinger
}
