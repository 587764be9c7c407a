package services

import (
	"errors"

	apperrors "github.com/piyush-pb/Personal-Finance-Tracker/internal/errors"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/store"
)

// mapStoreError translates a store failure into the API error taxonomy.
// notFound is the entity-specific 404 sentinel.
func mapStoreError(err error, notFound *apperrors.AppError) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return notFound
	case errors.Is(err, store.ErrInvalidID):
		return apperrors.ErrInvalidID
	case errors.Is(err, store.ErrDuplicate):
		return apperrors.ErrDuplicateBudget
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
