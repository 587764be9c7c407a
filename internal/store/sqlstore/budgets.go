package sqlstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/piyush-pb/Personal-Finance-Tracker/internal/models"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/store"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/uuid"
)

type budgetStore struct {
	db *gorm.DB
}

func (s *budgetStore) List(ctx context.Context, filter store.BudgetFilter) ([]models.Budget, error) {
	q := s.db.WithContext(ctx).Model(&BudgetRow{})
	if filter.Month != "" {
		q = q.Where("month = ?", filter.Month)
	}

	var rows []BudgetRow
	if err := q.Order("created_at ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	budgets := make([]models.Budget, len(rows))
	for i := range rows {
		budgets[i] = rows[i].toModel()
	}
	return budgets, nil
}

func (s *budgetStore) Get(ctx context.Context, id string) (*models.Budget, error) {
	if !uuid.IsValid(id) {
		return nil, store.ErrInvalidID
	}

	var row BudgetRow
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	b := row.toModel()
	return &b, nil
}

func (s *budgetStore) Create(ctx context.Context, fields models.BudgetFields) (*models.Budget, error) {
	row := newBudgetRow(fields)
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, translate(err)
	}
	b := row.toModel()
	return &b, nil
}

func (s *budgetStore) Update(ctx context.Context, id string, fields models.BudgetFields) (*models.Budget, error) {
	if !uuid.IsValid(id) {
		return nil, store.ErrInvalidID
	}

	var row BudgetRow
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&BudgetRow{}).Where("id = ?", id).Updates(map[string]interface{}{
			"category": string(fields.Category),
			"month":    fields.Month,
			"amount":   fields.Amount,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&row, "id = ?", id).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	b := row.toModel()
	return &b, nil
}

func (s *budgetStore) Delete(ctx context.Context, id string) error {
	if !uuid.IsValid(id) {
		return store.ErrInvalidID
	}

	res := s.db.WithContext(ctx).Delete(&BudgetRow{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
