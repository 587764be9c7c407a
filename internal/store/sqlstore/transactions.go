package sqlstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/piyush-pb/Personal-Finance-Tracker/internal/models"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/store"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/uuid"
)

type transactionStore struct {
	db *gorm.DB
}

func (s *transactionStore) List(ctx context.Context) ([]models.Transaction, error) {
	var rows []TransactionRow
	if err := s.db.WithContext(ctx).
		Order("date DESC").
		Order("id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	txs := make([]models.Transaction, len(rows))
	for i := range rows {
		txs[i] = rows[i].toModel()
	}
	return txs, nil
}

func (s *transactionStore) Get(ctx context.Context, id string) (*models.Transaction, error) {
	if !uuid.IsValid(id) {
		return nil, store.ErrInvalidID
	}

	var row TransactionRow
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	tx := row.toModel()
	return &tx, nil
}

func (s *transactionStore) Create(ctx context.Context, fields models.TransactionFields) (*models.Transaction, error) {
	row := newTransactionRow(fields)
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, translate(err)
	}
	tx := row.toModel()
	return &tx, nil
}

// Update replaces every mutable field of the transaction in one statement
// and returns the stored result.
func (s *transactionStore) Update(ctx context.Context, id string, fields models.TransactionFields) (*models.Transaction, error) {
	if !uuid.IsValid(id) {
		return nil, store.ErrInvalidID
	}

	var row TransactionRow
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		next := newTransactionRow(fields)
		res := tx.Model(&TransactionRow{}).Where("id = ?", id).Updates(map[string]interface{}{
			"amount":      next.Amount,
			"date":        next.Date,
			"description": next.Description,
			"category":    next.Category,
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
	updated := row.toModel()
	return &updated, nil
}

func (s *transactionStore) Delete(ctx context.Context, id string) error {
	if !uuid.IsValid(id) {
		return store.ErrInvalidID
	}

	res := s.db.WithContext(ctx).Delete(&TransactionRow{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
