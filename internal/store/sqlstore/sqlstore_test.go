package sqlstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/piyush-pb/Personal-Finance-Tracker/internal/models"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/store"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/testutil"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/uuid"
)

func TestTransactionStore_CreateAndGet(t *testing.T) {
	stores := testutil.SetupTestStores(t)
	ctx := context.Background()

	created, err := stores.Transactions.Create(ctx, models.TransactionFields{
		Amount:      42.5,
		Date:        testutil.Day(2024, time.January, 5),
		Description: "Groceries",
		Category:    models.CategoryFood,
	})
	testutil.AssertNoError(t, err)

	if !uuid.IsValid(created.ID) {
		t.Fatalf("expected a UUID id, got %q", created.ID)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("timestamps should be set on create")
	}

	got, err := stores.Transactions.Get(ctx, created.ID)
	testutil.AssertNoError(t, err)
	if got.Description != "Groceries" || got.Category != models.CategoryFood || got.Amount != 42.5 {
		t.Errorf("unexpected transaction: %+v", got)
	}
	if !got.Date.Equal(testutil.Day(2024, time.January, 5)) {
		t.Errorf("expected date 2024-01-05, got %v", got.Date)
	}
}

func TestTransactionStore_ListNewestFirst(t *testing.T) {
	stores := testutil.SetupTestStores(t)
	ctx := context.Background()

	testutil.CreateTestTransaction(t, stores.Transactions, models.CategoryFood, 1, testutil.Day(2024, time.January, 1))
	testutil.CreateTestTransaction(t, stores.Transactions, models.CategoryFood, 2, testutil.Day(2024, time.March, 1))
	testutil.CreateTestTransaction(t, stores.Transactions, models.CategoryFood, 3, testutil.Day(2024, time.February, 1))

	txs, err := stores.Transactions.List(ctx)
	testutil.AssertNoError(t, err)
	if len(txs) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(txs))
	}
	for i, want := range []float64{2, 3, 1} {
		if txs[i].Amount != want {
			t.Errorf("position %d: expected amount %v, got %v", i, want, txs[i].Amount)
		}
	}
}

func TestTransactionStore_ListEmpty(t *testing.T) {
	stores := testutil.SetupTestStores(t)

	txs, err := stores.Transactions.List(context.Background())
	testutil.AssertNoError(t, err)
	if txs == nil || len(txs) != 0 {
		t.Errorf("expected an empty, non-nil slice, got %#v", txs)
	}
}

func TestTransactionStore_Update(t *testing.T) {
	stores := testutil.SetupTestStores(t)
	ctx := context.Background()

	tx := testutil.CreateTestTransaction(t, stores.Transactions, models.CategoryFood, 10, testutil.Day(2024, time.January, 1))

	updated, err := stores.Transactions.Update(ctx, tx.ID, models.TransactionFields{
		Amount:      25,
		Date:        testutil.Day(2024, time.February, 2),
		Description: "Taxi",
		Category:    models.CategoryTransport,
	})
	testutil.AssertNoError(t, err)
	if updated.ID != tx.ID {
		t.Errorf("id changed on update: %s -> %s", tx.ID, updated.ID)
	}
	if updated.Amount != 25 || updated.Description != "Taxi" || updated.Category != models.CategoryTransport {
		t.Errorf("unexpected updated transaction: %+v", updated)
	}
	if !updated.CreatedAt.Equal(tx.CreatedAt) {
		t.Errorf("created_at should not change on update")
	}

	t.Run("unknown id", func(t *testing.T) {
		_, err := stores.Transactions.Update(ctx, uuid.New(), models.TransactionFields{Amount: 1, Description: "x", Category: models.CategoryOther})
		if !errors.Is(err, store.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := stores.Transactions.Update(ctx, "not-an-id", models.TransactionFields{})
		if !errors.Is(err, store.ErrInvalidID) {
			t.Errorf("expected ErrInvalidID, got %v", err)
		}
	})
}

func TestTransactionStore_Delete(t *testing.T) {
	stores := testutil.SetupTestStores(t)
	ctx := context.Background()

	tx := testutil.CreateTestTransaction(t, stores.Transactions, models.CategoryFood, 10, testutil.Day(2024, time.January, 1))

	testutil.AssertNoError(t, stores.Transactions.Delete(ctx, tx.ID))

	if _, err := stores.Transactions.Get(ctx, tx.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := stores.Transactions.Delete(ctx, tx.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
	if err := stores.Transactions.Delete(ctx, "123"); !errors.Is(err, store.ErrInvalidID) {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}
}

func TestBudgetStore_ListFiltersByMonth(t *testing.T) {
	stores := testutil.SetupTestStores(t)
	ctx := context.Background()

	first := testutil.CreateTestBudget(t, stores.Budgets, models.CategoryFood, "2024-01", 300)
	testutil.CreateTestBudget(t, stores.Budgets, models.CategoryFood, "2024-02", 350)
	second := testutil.CreateTestBudget(t, stores.Budgets, models.CategoryUtilities, "2024-01", 500)

	all, err := stores.Budgets.List(ctx, store.BudgetFilter{})
	testutil.AssertNoError(t, err)
	if len(all) != 3 {
		t.Errorf("expected 3 budgets, got %d", len(all))
	}

	jan, err := stores.Budgets.List(ctx, store.BudgetFilter{Month: "2024-01"})
	testutil.AssertNoError(t, err)
	if len(jan) != 2 {
		t.Fatalf("expected 2 budgets for 2024-01, got %d", len(jan))
	}
	if jan[0].ID != first.ID || jan[1].ID != second.ID {
		t.Errorf("budgets should be listed in insertion order")
	}

	none, err := stores.Budgets.List(ctx, store.BudgetFilter{Month: "2030-01"})
	testutil.AssertNoError(t, err)
	if len(none) != 0 {
		t.Errorf("expected no budgets, got %d", len(none))
	}
}

func TestBudgetStore_Duplicate(t *testing.T) {
	stores := testutil.SetupTestStores(t)
	ctx := context.Background()

	testutil.CreateTestBudget(t, stores.Budgets, models.CategoryFood, "2024-01", 300)

	_, err := stores.Budgets.Create(ctx, models.BudgetFields{Category: models.CategoryFood, Month: "2024-01", Amount: 400})
	if !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	other := testutil.CreateTestBudget(t, stores.Budgets, models.CategoryFood, "2024-02", 300)
	_, err = stores.Budgets.Update(ctx, other.ID, models.BudgetFields{Category: models.CategoryFood, Month: "2024-01", Amount: 1})
	if !errors.Is(err, store.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate when updating onto an existing pair, got %v", err)
	}
}

func TestBudgetStore_UpdateAndDelete(t *testing.T) {
	stores := testutil.SetupTestStores(t)
	ctx := context.Background()

	b := testutil.CreateTestBudget(t, stores.Budgets, models.CategoryFood, "2024-01", 300)

	updated, err := stores.Budgets.Update(ctx, b.ID, models.BudgetFields{Category: models.CategoryFood, Month: "2024-01", Amount: 450})
	testutil.AssertNoError(t, err)
	if updated.Amount != 450 {
		t.Errorf("expected amount 450, got %v", updated.Amount)
	}

	got, err := stores.Budgets.Get(ctx, b.ID)
	testutil.AssertNoError(t, err)
	if got.Amount != 450 {
		t.Errorf("expected stored amount 450, got %v", got.Amount)
	}

	testutil.AssertNoError(t, stores.Budgets.Delete(ctx, b.ID))
	if err := stores.Budgets.Delete(ctx, b.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
	if _, err := stores.Budgets.Get(ctx, "zzz"); !errors.Is(err, store.ErrInvalidID) {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}
}

func TestPing(t *testing.T) {
	stores := testutil.SetupTestStores(t)
	testutil.AssertNoError(t, stores.Health.Ping(context.Background()))
}
