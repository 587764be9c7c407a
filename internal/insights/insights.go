// Package insights derives the dashboard's aggregate views from fetched
// transactions and budgets. Every function is pure and recomputes from its
// inputs.
package insights

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/piyush-pb/Personal-Finance-Tracker/internal/models"
)

// Status is the budget health of one category in one month.
type Status string

const (
	StatusNoBudget    Status = "No budget"
	StatusOverBudget  Status = "Over budget"
	StatusNearBudget  Status = "Near budget"
	StatusUnderBudget Status = "Under budget"
)

// nearThreshold is the share of a budget at which spending counts as near.
var nearThreshold = decimal.RequireFromString("0.9")

// MonthTotal is the spending of one YYYY-MM month.
type MonthTotal struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

// CategoryTotal is the spending in one category.
type CategoryTotal struct {
	Category models.Category `json:"category"`
	Total    float64         `json:"total"`
}

// BudgetComparison pairs a category's budget with what was actually spent.
type BudgetComparison struct {
	Category models.Category `json:"category"`
	Budget   float64         `json:"budget"`
	Actual   float64         `json:"actual"`
	Status   Status          `json:"status"`
}

// Summary is the dashboard headline.
type Summary struct {
	Total         float64              `json:"total"`
	TopCategories []CategoryTotal      `json:"top_categories"`
	Recent        []models.Transaction `json:"recent"`
}

// SummaryLimit is how many top categories and recent transactions a
// Summary carries.
const SummaryLimit = 3

// MonthlyTotals sums transactions per month, ordered by month key.
func MonthlyTotals(txs []models.Transaction) []MonthTotal {
	sums := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		key := tx.MonthKey()
		sums[key] = sums[key].Add(decimal.NewFromFloat(tx.Amount))
	}

	months := make([]string, 0, len(sums))
	for m := range sums {
		months = append(months, m)
	}
	sort.Strings(months)

	out := make([]MonthTotal, len(months))
	for i, m := range months {
		out[i] = MonthTotal{Month: m, Total: sums[m].InexactFloat64()}
	}
	return out
}

// CategoryTotals sums all transactions per category. The result has one
// entry for every category in display order, zeros included.
func CategoryTotals(txs []models.Transaction) []CategoryTotal {
	sums := sumByCategory(txs)
	out := make([]CategoryTotal, len(models.Categories))
	for i, c := range models.Categories {
		out[i] = CategoryTotal{Category: c, Total: sums[c].InexactFloat64()}
	}
	return out
}

// NonZero drops categories with no spending.
func NonZero(totals []CategoryTotal) []CategoryTotal {
	out := make([]CategoryTotal, 0, len(totals))
	for _, t := range totals {
		if t.Total != 0 {
			out = append(out, t)
		}
	}
	return out
}

// BudgetVsActual compares each category's budget for month with that
// month's spending. Categories without a budget report a zero budget.
func BudgetVsActual(txs []models.Transaction, budgets []models.Budget, month string) []BudgetComparison {
	actual := make(map[models.Category]decimal.Decimal)
	for _, tx := range txs {
		if tx.MonthKey() == month {
			actual[tx.Category] = actual[tx.Category].Add(decimal.NewFromFloat(tx.Amount))
		}
	}

	limit := make(map[models.Category]decimal.Decimal)
	for _, b := range budgets {
		if b.Month != month {
			continue
		}
		if _, seen := limit[b.Category]; !seen {
			limit[b.Category] = decimal.NewFromFloat(b.Amount)
		}
	}

	out := make([]BudgetComparison, len(models.Categories))
	for i, c := range models.Categories {
		out[i] = BudgetComparison{
			Category: c,
			Budget:   limit[c].InexactFloat64(),
			Actual:   actual[c].InexactFloat64(),
			Status:   classify(actual[c], limit[c]),
		}
	}
	return out
}

// Classify rates actual spending against budget. A zero budget is always
// StatusNoBudget; spending at or above 90% of the budget is near.
func Classify(actual, budget float64) Status {
	return classify(decimal.NewFromFloat(actual), decimal.NewFromFloat(budget))
}

func classify(actual, budget decimal.Decimal) Status {
	switch {
	case budget.IsZero():
		return StatusNoBudget
	case actual.GreaterThan(budget):
		return StatusOverBudget
	case actual.GreaterThanOrEqual(budget.Mul(nearThreshold)):
		return StatusNearBudget
	default:
		return StatusUnderBudget
	}
}

// TopCategories returns up to n categories with spending, largest first.
// Ties keep display order.
func TopCategories(txs []models.Transaction, n int) []CategoryTotal {
	totals := NonZero(CategoryTotals(txs))
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total > totals[j].Total
	})
	if n >= 0 && len(totals) > n {
		totals = totals[:n]
	}
	return totals
}

// RecentTransactions returns up to n transactions, newest date first. The
// input slice is not modified.
func RecentTransactions(txs []models.Transaction, n int) []models.Transaction {
	sorted := make([]models.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Total sums every transaction.
func Total(txs []models.Transaction) float64 {
	sum := decimal.Zero
	for _, tx := range txs {
		sum = sum.Add(decimal.NewFromFloat(tx.Amount))
	}
	return sum.InexactFloat64()
}

// Summarize builds the dashboard headline.
func Summarize(txs []models.Transaction) Summary {
	return Summary{
		Total:         Total(txs),
		TopCategories: TopCategories(txs, SummaryLimit),
		Recent:        RecentTransactions(txs, SummaryLimit),
	}
}

func sumByCategory(txs []models.Transaction) map[models.Category]decimal.Decimal {
	sums := make(map[models.Category]decimal.Decimal)
	for _, tx := range txs {
		sums[tx.Category] = sums[tx.Category].Add(decimal.NewFromFloat(tx.Amount))
	}
	return sums
}
