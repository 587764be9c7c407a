package models

import "time"

// MonthLayout formats a time as a month key (YYYY-MM).
const MonthLayout = "2006-01"

// TransactionFields holds the user-editable fields of a transaction. An
// update replaces all four.
type TransactionFields struct {
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
}

// Transaction is a stored spending record.
type Transaction struct {
	ID string `json:"id"`
	TransactionFields
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MonthKey returns the YYYY-MM key of the transaction date.
func (t Transaction) MonthKey() string {
	return t.Date.Format(MonthLayout)
}
