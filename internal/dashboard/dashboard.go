// Package dashboard drives the finance dashboard: it loads data through the
// API client, derives the insight panels and performs edits.
package dashboard

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/piyush-pb/Personal-Finance-Tracker/internal/insights"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/models"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/telemetry"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/validator"
)

// API defines the finance API operations the dashboard needs.
type API interface {
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	CreateTransaction(ctx context.Context, in validator.TransactionInput) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, in validator.TransactionInput) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	ListBudgets(ctx context.Context, month string) ([]models.Budget, error)
	CreateBudget(ctx context.Context, in validator.BudgetInput) (*models.Budget, error)
	UpdateBudget(ctx context.Context, id string, in validator.BudgetInput) (*models.Budget, error)
	DeleteBudget(ctx context.Context, id string) error
}

// View is one load of the dashboard.
type View struct {
	Month        string
	Transactions Panel[[]models.Transaction]
	Budgets      Panel[[]models.Budget]
	Summary      Panel[insights.Summary]
	Monthly      Panel[[]insights.MonthTotal]
	Categories   Panel[[]insights.CategoryTotal]
	Insights     Panel[[]insights.BudgetComparison]
}

// Dashboard loads views.
type Dashboard struct {
	api    API
	events telemetry.Sink
	logger *zap.SugaredLogger
	now    func() time.Time
}

// New creates a Dashboard.
func New(api API, events telemetry.Sink, logger *zap.SugaredLogger) *Dashboard {
	if events == nil {
		events = telemetry.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Dashboard{api: api, events: events, logger: logger, now: time.Now}
}

// CurrentMonth returns the month key of today.
func (d *Dashboard) CurrentMonth() string {
	return d.now().Format(models.MonthLayout)
}

// Load fetches transactions and the budgets of month concurrently and
// derives every panel. An empty month means the current one. A failed fetch
// only fails the panels built from it.
func (d *Dashboard) Load(ctx context.Context, month string) *View {
	if month == "" {
		month = d.CurrentMonth()
	}
	view := &View{Month: month}

	var (
		txs     []models.Transaction
		budgets []models.Budget
		txErr   error
		budErr  error
	)

	var g errgroup.Group
	g.Go(func() error {
		txs, txErr = d.api.ListTransactions(ctx)
		return txErr
	})
	g.Go(func() error {
		budgets, budErr = d.api.ListBudgets(ctx, month)
		return budErr
	})
	if err := g.Wait(); err != nil {
		d.logger.Warnw("dashboard load incomplete", "month", month, "error", err)
	}

	view.Transactions.Resolve(txs, txErr)
	view.Budgets.Resolve(budgets, budErr)

	if txErr != nil {
		view.Summary.Resolve(insights.Summary{}, txErr)
		view.Monthly.Resolve(nil, txErr)
		view.Categories.Resolve(nil, txErr)
	} else {
		view.Summary.Resolve(insights.Summarize(txs), nil)
		view.Monthly.Resolve(insights.MonthlyTotals(txs), nil)
		view.Categories.Resolve(insights.NonZero(insights.CategoryTotals(txs)), nil)
	}

	switch {
	case txErr != nil:
		view.Insights.Resolve(nil, txErr)
	case budErr != nil:
		view.Insights.Resolve(nil, budErr)
	default:
		view.Insights.Resolve(insights.BudgetVsActual(txs, budgets, month), nil)
	}

	d.events.Capture(ctx, telemetry.NewEvent(telemetry.EventDashboardViewed, map[string]interface{}{
		"month":        month,
		"transactions": len(txs),
		"budgets":      len(budgets),
	}))

	return view
}
