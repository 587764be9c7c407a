// Package client provides an HTTP client for the finance API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	apperrors "github.com/piyush-pb/Personal-Finance-Tracker/internal/errors"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/models"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/validator"
)

const (
	transactionsPath = "/api/v1/transactions"
	budgetsPath      = "/api/v1/budgets"
	healthPath       = "/api/health"

	contentType    = "application/json"
	defaultTimeout = 30 * time.Second
)

// APIError is a non-2xx response from the API.
type APIError struct {
	Status  int
	Code    string
	Message string
	Fields  []apperrors.FieldError
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return fmt.Sprintf("%s (%d): %s [%s]", e.Code, e.Status, e.Message, strings.Join(parts, "; "))
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsConflict reports whether err is a 409 from the API.
func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	// RetryMax is the number of retries after the first attempt. Zero means
	// every call is made exactly once.
	RetryMax int
	Logger   *zap.SugaredLogger
}

// Client talks to the finance API.
type Client struct {
	baseURL string
	http    *retryablehttp.Client
}

// New creates a Client.
func New(opts Options) *Client {
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient = opts.HTTPClient
	rc.RetryMax = opts.RetryMax
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.Logger = nil
	if opts.Logger != nil {
		rc.Logger = &retryLogger{logger: opts.Logger}
	}

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    rc,
	}
}

type updateTransactionRequest struct {
	ID string `json:"id"`
	validator.TransactionInput
}

type updateBudgetRequest struct {
	ID string `json:"id"`
	validator.BudgetInput
}

// ListTransactions fetches every transaction, newest first.
func (c *Client) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := c.do(ctx, http.MethodGet, transactionsPath, nil, &txs); err != nil {
		return nil, errors.Wrap(err, "listing transactions")
	}
	return txs, nil
}

// CreateTransaction stores a new transaction.
func (c *Client) CreateTransaction(ctx context.Context, in validator.TransactionInput) (*models.Transaction, error) {
	var tx models.Transaction
	if err := c.do(ctx, http.MethodPost, transactionsPath, in, &tx); err != nil {
		return nil, errors.Wrap(err, "creating transaction")
	}
	return &tx, nil
}

// UpdateTransaction replaces the transaction with the given id.
func (c *Client) UpdateTransaction(ctx context.Context, id string, in validator.TransactionInput) (*models.Transaction, error) {
	var tx models.Transaction
	body := updateTransactionRequest{ID: id, TransactionInput: in}
	if err := c.do(ctx, http.MethodPut, transactionsPath, body, &tx); err != nil {
		return nil, errors.Wrapf(err, "updating transaction %s", id)
	}
	return &tx, nil
}

// DeleteTransaction removes the transaction with the given id.
func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	path := transactionsPath + "?" + url.Values{"id": {id}}.Encode()
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return errors.Wrapf(err, "deleting transaction %s", id)
	}
	return nil
}

// ListBudgets fetches budgets, only those of month when it is not empty.
func (c *Client) ListBudgets(ctx context.Context, month string) ([]models.Budget, error) {
	path := budgetsPath
	if month != "" {
		path += "?" + url.Values{"month": {month}}.Encode()
	}
	var budgets []models.Budget
	if err := c.do(ctx, http.MethodGet, path, nil, &budgets); err != nil {
		return nil, errors.Wrap(err, "listing budgets")
	}
	return budgets, nil
}

// CreateBudget stores a new budget.
func (c *Client) CreateBudget(ctx context.Context, in validator.BudgetInput) (*models.Budget, error) {
	var b models.Budget
	if err := c.do(ctx, http.MethodPost, budgetsPath, in, &b); err != nil {
		return nil, errors.Wrap(err, "creating budget")
	}
	return &b, nil
}

// UpdateBudget replaces the budget with the given id.
func (c *Client) UpdateBudget(ctx context.Context, id string, in validator.BudgetInput) (*models.Budget, error) {
	var b models.Budget
	body := updateBudgetRequest{ID: id, BudgetInput: in}
	if err := c.do(ctx, http.MethodPut, budgetsPath, body, &b); err != nil {
		return nil, errors.Wrapf(err, "updating budget %s", id)
	}
	return &b, nil
}

// DeleteBudget removes the budget with the given id.
func (c *Client) DeleteBudget(ctx context.Context, id string) error {
	path := budgetsPath + "?" + url.Values{"id": {id}}.Encode()
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return errors.Wrapf(err, "deleting budget %s", id)
	}
	return nil
}

// Health checks that the API and its store are up.
func (c *Client) Health(ctx context.Context) error {
	return errors.Wrap(c.do(ctx, http.MethodGet, healthPath, nil, nil), "health check")
}

// do sends body as JSON when it is not nil and decodes a 2xx response into
// result when result is not nil.
func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to marshal request")
		}
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Accept", contentType)
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if resp == nil {
		return errors.Wrap(err, "request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp.StatusCode, respBody)
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return errors.Wrap(err, "failed to parse response")
		}
	}
	return nil
}

func decodeAPIError(status int, body []byte) *APIError {
	var errResp struct {
		Error struct {
			Code    string                 `json:"code"`
			Message string                 `json:"message"`
			Fields  []apperrors.FieldError `json:"fields"`
		} `json:"error"`
	}
	_ = json.Unmarshal(body, &errResp)

	apiErr := &APIError{
		Status:  status,
		Code:    errResp.Error.Code,
		Message: errResp.Error.Message,
		Fields:  errResp.Error.Fields,
	}
	if apiErr.Code == "" {
		apiErr.Code = "HTTP_ERROR"
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}

// retryLogger adapts a zap logger to retryablehttp.
type retryLogger struct {
	logger *zap.SugaredLogger
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Errorw(msg, keysAndValues...)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Infow(msg, keysAndValues...)
}

func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warnw(msg, keysAndValues...)
}
