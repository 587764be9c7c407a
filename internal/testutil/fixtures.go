package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/piyush-pb/Personal-Finance-Tracker/internal/models"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/store"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Day returns midnight UTC of the given calendar day.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CreateTestTransaction stores a transaction with a unique description.
func CreateTestTransaction(t *testing.T, s store.TransactionStore, category models.Category, amount float64, date time.Time) *models.Transaction {
	t.Helper()

	tx, err := s.Create(context.Background(), models.TransactionFields{
		Amount:      amount,
		Date:        date,
		Description: fmt.Sprintf("Test transaction %d", nextID()),
		Category:    category,
	})
	if err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestBudget stores a budget for category and month.
func CreateTestBudget(t *testing.T, s store.BudgetStore, category models.Category, month string, amount float64) *models.Budget {
	t.Helper()

	b, err := s.Create(context.Background(), models.BudgetFields{
		Category: category,
		Month:    month,
		Amount:   amount,
	})
	if err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return b
}
