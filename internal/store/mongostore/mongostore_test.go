package mongostore_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/piyush-pb/Personal-Finance-Tracker/internal/models"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/store"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/store/mongostore"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/testutil"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/uuid"
)

// setupStores connects to the server named by MONGODB_URI and returns
// stores over a throwaway database. Tests skip when the variable is unset.
func setupStores(t *testing.T) store.Stores {
	t.Helper()

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		t.Skip("MONGODB_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("failed to connect to MongoDB: %v", err)
	}

	db := client.Database("finance_test_" + uuid.New()[:8])
	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		t.Fatalf("failed to create indexes: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	return mongostore.New(db)
}

func TestTransactionStore(t *testing.T) {
	stores := setupStores(t)
	ctx := context.Background()

	older := testutil.CreateTestTransaction(t, stores.Transactions, models.CategoryFood, 10, testutil.Day(2024, time.January, 1))
	newer := testutil.CreateTestTransaction(t, stores.Transactions, models.CategoryUtilities, 20, testutil.Day(2024, time.February, 1))

	txs, err := stores.Transactions.List(ctx)
	testutil.AssertNoError(t, err)
	if len(txs) != 2 || txs[0].ID != newer.ID || txs[1].ID != older.ID {
		t.Fatalf("expected newest first, got %+v", txs)
	}

	updated, err := stores.Transactions.Update(ctx, older.ID, models.TransactionFields{
		Amount:      15,
		Date:        testutil.Day(2024, time.January, 2),
		Description: "Lunch",
		Category:    models.CategoryFood,
	})
	testutil.AssertNoError(t, err)
	if updated.Amount != 15 || updated.Description != "Lunch" {
		t.Errorf("unexpected update result: %+v", updated)
	}

	testutil.AssertNoError(t, stores.Transactions.Delete(ctx, older.ID))
	if _, err := stores.Transactions.Get(ctx, older.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := stores.Transactions.Get(ctx, "nope"); !errors.Is(err, store.ErrInvalidID) {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}
}

func TestBudgetStore(t *testing.T) {
	stores := setupStores(t)
	ctx := context.Background()

	testutil.CreateTestBudget(t, stores.Budgets, models.CategoryFood, "2024-01", 300)
	testutil.CreateTestBudget(t, stores.Budgets, models.CategoryFood, "2024-02", 300)

	jan, err := stores.Budgets.List(ctx, store.BudgetFilter{Month: "2024-01"})
	testutil.AssertNoError(t, err)
	if len(jan) != 1 {
		t.Errorf("expected 1 budget for 2024-01, got %d", len(jan))
	}

	_, err = stores.Budgets.Create(ctx, models.BudgetFields{Category: models.CategoryFood, Month: "2024-01", Amount: 1})
	if !errors.Is(err, store.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}

	testutil.AssertNoError(t, stores.Health.Ping(ctx))
}
