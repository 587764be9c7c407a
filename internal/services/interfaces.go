package services

import (
	"context"

	"github.com/piyush-pb/Personal-Finance-Tracker/internal/models"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/validator"
)

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	CreateTransaction(ctx context.Context, in validator.TransactionInput) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, in validator.TransactionInput) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	ListBudgets(ctx context.Context, month string) ([]models.Budget, error)
	CreateBudget(ctx context.Context, in validator.BudgetInput) (*models.Budget, error)
	UpdateBudget(ctx context.Context, id string, in validator.BudgetInput) (*models.Budget, error)
	DeleteBudget(ctx context.Context, id string) error
}
