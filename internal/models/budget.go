package models

import "time"

// BudgetFields holds the user-editable fields of a budget.
type BudgetFields struct {
	Category Category `json:"category"`
	Month    string   `json:"month"`
	Amount   float64  `json:"amount"`
}

// Budget is a spending ceiling for one category in one month.
type Budget struct {
	ID string `json:"id"`
	BudgetFields
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
