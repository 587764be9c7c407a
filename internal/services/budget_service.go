package services

import (
	"context"

	apperrors "github.com/piyush-pb/Personal-Finance-Tracker/internal/errors"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/models"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/store"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/validator"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	store store.BudgetStore
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(s store.BudgetStore) BudgetServicer {
	return &budgetService{store: s}
}

// ListBudgets returns budgets, restricted to month when it is non-empty.
func (s *budgetService) ListBudgets(ctx context.Context, month string) ([]models.Budget, error) {
	if month != "" && !validator.IsMonthKey(month) {
		return nil, apperrors.WithFields(apperrors.ErrInvalidInput, []apperrors.FieldError{
			{Field: "month", Message: "Month must be in YYYY-MM format"},
		})
	}

	budgets, err := s.store.List(ctx, store.BudgetFilter{Month: month})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// CreateBudget validates in and stores a new budget. A second budget for
// the same category and month is rejected with ErrDuplicateBudget.
func (s *budgetService) CreateBudget(ctx context.Context, in validator.BudgetInput) (*models.Budget, error) {
	fields, fieldErrs := validator.ValidateBudget(in)
	if len(fieldErrs) > 0 {
		return nil, apperrors.WithFields(apperrors.ErrInvalidInput, fieldErrs)
	}

	b, err := s.store.Create(ctx, fields)
	if err != nil {
		return nil, mapStoreError(err, apperrors.ErrBudgetNotFound)
	}
	return b, nil
}

// UpdateBudget replaces every field of the budget with in.
func (s *budgetService) UpdateBudget(ctx context.Context, id string, in validator.BudgetInput) (*models.Budget, error) {
	if id == "" {
		return nil, apperrors.ErrMissingBudgetID
	}

	fields, fieldErrs := validator.ValidateBudget(in)
	if len(fieldErrs) > 0 {
		return nil, apperrors.WithFields(apperrors.ErrInvalidInput, fieldErrs)
	}

	b, err := s.store.Update(ctx, id, fields)
	if err != nil {
		return nil, mapStoreError(err, apperrors.ErrBudgetNotFound)
	}
	return b, nil
}

// DeleteBudget removes a budget permanently.
func (s *budgetService) DeleteBudget(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.ErrMissingBudgetID
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return mapStoreError(err, apperrors.ErrBudgetNotFound)
	}
	return nil
}
