package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/piyush-pb/Personal-Finance-Tracker/internal/errors"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/models"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/services"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/telemetry"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/validator"
)

// --- mock transaction service ---

type mockTransactionService struct {
	listFn   func(ctx context.Context) ([]models.Transaction, error)
	createFn func(ctx context.Context, in validator.TransactionInput) (*models.Transaction, error)
	updateFn func(ctx context.Context, id string, in validator.TransactionInput) (*models.Transaction, error)
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockTransactionService) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []models.Transaction{}, nil
}

func (m *mockTransactionService) CreateTransaction(ctx context.Context, in validator.TransactionInput) (*models.Transaction, error) {
	if m.createFn != nil {
		return m.createFn(ctx, in)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) UpdateTransaction(ctx context.Context, id string, in validator.TransactionInput) (*models.Transaction, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, in)
	}
	return &models.Transaction{ID: id}, nil
}

func (m *mockTransactionService) DeleteTransaction(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	r := gin.New()
	r.GET("/transactions", handler.GetTransactions)
	r.POST("/transactions", handler.CreateTransaction)
	r.PUT("/transactions", handler.UpdateTransaction)
	r.DELETE("/transactions", handler.DeleteTransaction)
	return r
}

func TestTransactionHandler_GetTransactions(t *testing.T) {
	t.Run("returns bare array", func(t *testing.T) {
		svc := &mockTransactionService{
			listFn: func(context.Context) ([]models.Transaction, error) {
				return []models.Transaction{
					{ID: "b", TransactionFields: models.TransactionFields{Amount: 20, Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Description: "Bus", Category: models.CategoryTransport}},
					{ID: "a", TransactionFields: models.TransactionFields{Amount: 10, Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Description: "Bread", Category: models.CategoryFood}},
				}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc, telemetry.Nop{}))

		rec := doRequest(r, "GET", "/transactions", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		items := parseJSONArray(t, rec)
		if len(items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(items))
		}
		if items[0]["id"] != "b" || items[0]["category"] != "Transport" {
			t.Errorf("unexpected first item: %v", items[0])
		}
		if items[0]["date"] != "2024-02-01T00:00:00Z" {
			t.Errorf("expected RFC 3339 date, got %v", items[0]["date"])
		}
	})

	t.Run("returns empty array not null", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, telemetry.Nop{}))
		rec := doRequest(r, "GET", "/transactions", "")
		if rec.Body.String() != "[]" {
			t.Errorf("expected [], got %s", rec.Body.String())
		}
	})

	t.Run("returns 500 on store failure", func(t *testing.T) {
		svc := &mockTransactionService{
			listFn: func(context.Context) ([]models.Transaction, error) {
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, errors.New("db down"))
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc, telemetry.Nop{}))
		rec := doRequest(r, "GET", "/transactions", "")
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INTERNAL_ERROR")
	})
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("returns 201 and emits event", func(t *testing.T) {
		var got validator.TransactionInput
		svc := &mockTransactionService{
			createFn: func(_ context.Context, in validator.TransactionInput) (*models.Transaction, error) {
				got = in
				return &models.Transaction{ID: "tx-1", TransactionFields: models.TransactionFields{Amount: in.Amount, Description: in.Description, Category: models.Category(in.Category)}}, nil
			},
		}
		sink := &recordingSink{}
		r := setupTransactionRouter(NewTransactionHandler(svc, sink))

		rec := doRequest(r, "POST", "/transactions", `{"amount":12.5,"date":"2024-01-05","description":"Lunch","category":"Food"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Amount != 12.5 || got.Date != "2024-01-05" || got.Category != "Food" {
			t.Errorf("service received %+v", got)
		}
		result := parseJSON(t, rec)
		if result["id"] != "tx-1" {
			t.Errorf("expected id tx-1, got %v", result["id"])
		}
		if names := sink.names(); len(names) != 1 || names[0] != telemetry.EventTransactionAdded {
			t.Errorf("expected transaction_added event, got %v", names)
		}
	})

	t.Run("returns 400 with field errors", func(t *testing.T) {
		svc := &mockTransactionService{
			createFn: func(_ context.Context, in validator.TransactionInput) (*models.Transaction, error) {
				_, fieldErrs := validator.ValidateTransaction(in)
				return nil, apperrors.WithFields(apperrors.ErrInvalidInput, fieldErrs)
			},
		}
		sink := &recordingSink{}
		r := setupTransactionRouter(NewTransactionHandler(svc, sink))

		rec := doRequest(r, "POST", "/transactions", `{"amount":-5,"date":"2024-01-05","description":"Lunch"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		assertErrorCode(t, result, "INVALID_INPUT")
		assertErrorField(t, result, "amount")
		if len(sink.names()) != 0 {
			t.Error("no event should be emitted on failure")
		}
	})

	t.Run("returns 400 on malformed JSON", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, telemetry.Nop{}))
		rec := doRequest(r, "POST", "/transactions", `{"amount":"lots"`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestTransactionHandler_UpdateTransaction(t *testing.T) {
	t.Run("passes id from body", func(t *testing.T) {
		var gotID string
		svc := &mockTransactionService{
			updateFn: func(_ context.Context, id string, in validator.TransactionInput) (*models.Transaction, error) {
				gotID = id
				return &models.Transaction{ID: id, TransactionFields: models.TransactionFields{Amount: in.Amount}}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc, telemetry.Nop{}))

		rec := doRequest(r, "PUT", "/transactions", `{"id":"abc","amount":3,"date":"2024-01-05","description":"Tea"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotID != "abc" {
			t.Errorf("expected id abc, got %q", gotID)
		}
	})

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"missing id", apperrors.ErrMissingTransactionID, http.StatusBadRequest, "MISSING_ID"},
		{"invalid id", apperrors.ErrInvalidID, http.StatusBadRequest, "INVALID_ID"},
		{"not found", apperrors.ErrTransactionNotFound, http.StatusNotFound, "TRANSACTION_NOT_FOUND"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockTransactionService{
				updateFn: func(context.Context, string, validator.TransactionInput) (*models.Transaction, error) {
					return nil, tt.err
				},
			}
			r := setupTransactionRouter(NewTransactionHandler(svc, telemetry.Nop{}))
			rec := doRequest(r, "PUT", "/transactions", `{"amount":3,"date":"2024-01-05","description":"Tea"}`)
			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rec.Code)
			}
			assertErrorCode(t, parseJSON(t, rec), tt.code)
		})
	}
}

func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	t.Run("returns success", func(t *testing.T) {
		var gotID string
		svc := &mockTransactionService{
			deleteFn: func(_ context.Context, id string) error {
				gotID = id
				return nil
			},
		}
		sink := &recordingSink{}
		r := setupTransactionRouter(NewTransactionHandler(svc, sink))

		rec := doRequest(r, "DELETE", "/transactions?id=xyz", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if parseJSON(t, rec)["success"] != true {
			t.Errorf("expected success true, got %s", rec.Body.String())
		}
		if gotID != "xyz" {
			t.Errorf("expected id xyz, got %q", gotID)
		}
		if names := sink.names(); len(names) != 1 || names[0] != telemetry.EventTransactionDeleted {
			t.Errorf("expected transaction_deleted event, got %v", names)
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockTransactionService{
			deleteFn: func(context.Context, string) error { return apperrors.ErrTransactionNotFound },
		}
		r := setupTransactionRouter(NewTransactionHandler(svc, telemetry.Nop{}))
		rec := doRequest(r, "DELETE", "/transactions?id=gone", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
