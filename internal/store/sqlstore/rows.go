package sqlstore

import (
	"time"

	"gorm.io/gorm"

	"github.com/piyush-pb/Personal-Finance-Tracker/internal/models"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/uuid"
)

// Base contains common columns for all tables
type Base struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}

// TransactionRow is the GORM schema of the transactions table.
type TransactionRow struct {
	Base
	Amount      float64   `gorm:"not null"`
	Date        time.Time `gorm:"not null;index"`
	Description string    `gorm:"not null"`
	Category    string    `gorm:"type:varchar(32);not null;default:Other"`
}

// TableName pins the table name used by migrations.
func (TransactionRow) TableName() string { return "transactions" }

func newTransactionRow(f models.TransactionFields) *TransactionRow {
	return &TransactionRow{
		Amount:      f.Amount,
		Date:        f.Date.UTC(),
		Description: f.Description,
		Category:    string(f.Category),
	}
}

func (r *TransactionRow) toModel() models.Transaction {
	return models.Transaction{
		ID: r.ID,
		TransactionFields: models.TransactionFields{
			Amount:      r.Amount,
			Date:        r.Date.UTC(),
			Description: r.Description,
			Category:    models.Category(r.Category),
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// BudgetRow is the GORM schema of the budgets table.
type BudgetRow struct {
	Base
	Category string  `gorm:"type:varchar(32);not null;uniqueIndex:idx_budgets_category_month"`
	Month    string  `gorm:"type:varchar(7);not null;index;uniqueIndex:idx_budgets_category_month"`
	Amount   float64 `gorm:"not null"`
}

// TableName pins the table name used by migrations.
func (BudgetRow) TableName() string { return "budgets" }

func newBudgetRow(f models.BudgetFields) *BudgetRow {
	return &BudgetRow{
		Category: string(f.Category),
		Month:    f.Month,
		Amount:   f.Amount,
	}
}

func (r *BudgetRow) toModel() models.Budget {
	return models.Budget{
		ID: r.ID,
		BudgetFields: models.BudgetFields{
			Category: models.Category(r.Category),
			Month:    r.Month,
			Amount:   r.Amount,
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Models lists every row type, for AutoMigrate in tests and local SQLite.
func Models() []interface{} {
	return []interface{}{&TransactionRow{}, &BudgetRow{}}
}
