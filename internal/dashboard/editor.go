package dashboard

import (
	"context"
	"errors"

	apperrors "github.com/piyush-pb/Personal-Finance-Tracker/internal/errors"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/models"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/telemetry"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/validator"
)

// newItemKey is the Busy key of a record that has no id yet.
const newItemKey = "new"

// ErrNoBudget is returned when deleting a budget that does not exist.
var ErrNoBudget = errors.New("dashboard: no budget for category and month")

// TransactionEditor adds, edits and deletes transactions. Input is
// validated locally and never sent when invalid.
type TransactionEditor struct {
	api    API
	events telemetry.Sink
	Busy   Busy
}

// NewTransactionEditor creates a TransactionEditor.
func NewTransactionEditor(api API, events telemetry.Sink) *TransactionEditor {
	if events == nil {
		events = telemetry.Nop{}
	}
	return &TransactionEditor{api: api, events: events}
}

// Add creates a transaction.
func (e *TransactionEditor) Add(ctx context.Context, in validator.TransactionInput) (*models.Transaction, error) {
	if _, fieldErrs := validator.ValidateTransaction(in); len(fieldErrs) > 0 {
		return nil, apperrors.WithFields(apperrors.ErrInvalidInput, fieldErrs)
	}

	done, err := e.Busy.Begin(newItemKey, Saving)
	if err != nil {
		return nil, err
	}
	defer done()

	tx, err := e.api.CreateTransaction(ctx, in)
	if err != nil {
		return nil, err
	}
	e.events.Capture(ctx, telemetry.NewEvent(telemetry.EventTransactionAdded, map[string]interface{}{
		"amount":   tx.Amount,
		"category": tx.Category,
	}))
	return tx, nil
}

// Update replaces the transaction with the given id.
func (e *TransactionEditor) Update(ctx context.Context, id string, in validator.TransactionInput) (*models.Transaction, error) {
	if id == "" {
		return nil, apperrors.ErrMissingTransactionID
	}
	if _, fieldErrs := validator.ValidateTransaction(in); len(fieldErrs) > 0 {
		return nil, apperrors.WithFields(apperrors.ErrInvalidInput, fieldErrs)
	}

	done, err := e.Busy.Begin(id, Saving)
	if err != nil {
		return nil, err
	}
	defer done()

	tx, err := e.api.UpdateTransaction(ctx, id, in)
	if err != nil {
		return nil, err
	}
	e.events.Capture(ctx, telemetry.NewEvent(telemetry.EventTransactionUpdated, map[string]interface{}{
		"amount":   tx.Amount,
		"category": tx.Category,
	}))
	return tx, nil
}

// Delete removes the transaction with the given id.
func (e *TransactionEditor) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.ErrMissingTransactionID
	}

	done, err := e.Busy.Begin(id, Deleting)
	if err != nil {
		return err
	}
	defer done()

	if err := e.api.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	e.events.Capture(ctx, telemetry.NewEvent(telemetry.EventTransactionDeleted, nil))
	return nil
}

// BudgetEditor sets and clears the budget of a category in a month.
type BudgetEditor struct {
	api    API
	events telemetry.Sink
	Busy   Busy
}

// NewBudgetEditor creates a BudgetEditor.
func NewBudgetEditor(api API, events telemetry.Sink) *BudgetEditor {
	if events == nil {
		events = telemetry.Nop{}
	}
	return &BudgetEditor{api: api, events: events}
}

// BudgetKey is the Busy key of a category's budget in month.
func BudgetKey(category models.Category, month string) string {
	return string(category) + "/" + month
}

// Save sets the budget of category in month to amount, updating the
// existing budget when there is one and creating it otherwise.
func (e *BudgetEditor) Save(ctx context.Context, category models.Category, month string, amount float64) (*models.Budget, error) {
	in := validator.BudgetInput{Category: string(category), Month: month, Amount: amount}
	if _, fieldErrs := validator.ValidateBudget(in); len(fieldErrs) > 0 {
		return nil, apperrors.WithFields(apperrors.ErrInvalidInput, fieldErrs)
	}

	done, err := e.Busy.Begin(BudgetKey(category, month), Saving)
	if err != nil {
		return nil, err
	}
	defer done()

	existing, err := e.find(ctx, category, month)
	if err != nil {
		return nil, err
	}

	var (
		b     *models.Budget
		event = telemetry.EventBudgetUpdated
	)
	if existing != nil {
		b, err = e.api.UpdateBudget(ctx, existing.ID, in)
	} else {
		b, err = e.api.CreateBudget(ctx, in)
		event = telemetry.EventBudgetAdded
	}
	if err != nil {
		return nil, err
	}

	e.events.Capture(ctx, telemetry.NewEvent(event, map[string]interface{}{
		"category": b.Category,
		"month":    b.Month,
		"amount":   b.Amount,
	}))
	return b, nil
}

// Delete removes the budget of category in month.
func (e *BudgetEditor) Delete(ctx context.Context, category models.Category, month string) error {
	done, err := e.Busy.Begin(BudgetKey(category, month), Deleting)
	if err != nil {
		return err
	}
	defer done()

	existing, err := e.find(ctx, category, month)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNoBudget
	}
	if err := e.api.DeleteBudget(ctx, existing.ID); err != nil {
		return err
	}

	e.events.Capture(ctx, telemetry.NewEvent(telemetry.EventBudgetDeleted, map[string]interface{}{
		"category": category,
		"month":    month,
	}))
	return nil
}

func (e *BudgetEditor) find(ctx context.Context, category models.Category, month string) (*models.Budget, error) {
	budgets, err := e.api.ListBudgets(ctx, month)
	if err != nil {
		return nil, err
	}
	for i := range budgets {
		if budgets[i].Category == category && budgets[i].Month == month {
			return &budgets[i], nil
		}
	}
	return nil, nil
}
