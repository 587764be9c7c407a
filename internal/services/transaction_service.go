package services

import (
	"context"

	apperrors "github.com/piyush-pb/Personal-Finance-Tracker/internal/errors"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/models"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/store"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/validator"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	store store.TransactionStore
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(s store.TransactionStore) TransactionServicer {
	return &transactionService{store: s}
}

// ListTransactions returns every transaction, newest first.
func (s *transactionService) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	txs, err := s.store.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return txs, nil
}

// CreateTransaction validates in and stores a new transaction.
func (s *transactionService) CreateTransaction(ctx context.Context, in validator.TransactionInput) (*models.Transaction, error) {
	fields, fieldErrs := validator.ValidateTransaction(in)
	if len(fieldErrs) > 0 {
		return nil, apperrors.WithFields(apperrors.ErrInvalidInput, fieldErrs)
	}

	tx, err := s.store.Create(ctx, fields)
	if err != nil {
		return nil, mapStoreError(err, apperrors.ErrTransactionNotFound)
	}
	return tx, nil
}

// UpdateTransaction replaces every field of the transaction with in.
func (s *transactionService) UpdateTransaction(ctx context.Context, id string, in validator.TransactionInput) (*models.Transaction, error) {
	if id == "" {
		return nil, apperrors.ErrMissingTransactionID
	}

	fields, fieldErrs := validator.ValidateTransaction(in)
	if len(fieldErrs) > 0 {
		return nil, apperrors.WithFields(apperrors.ErrInvalidInput, fieldErrs)
	}

	tx, err := s.store.Update(ctx, id, fields)
	if err != nil {
		return nil, mapStoreError(err, apperrors.ErrTransactionNotFound)
	}
	return tx, nil
}

// DeleteTransaction removes a transaction permanently.
func (s *transactionService) DeleteTransaction(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.ErrMissingTransactionID
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return mapStoreError(err, apperrors.ErrTransactionNotFound)
	}
	return nil
}
