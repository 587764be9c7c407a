package mongostore

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/piyush-pb/Personal-Finance-Tracker/internal/models"
)

type transactionDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Amount      float64            `bson:"amount"`
	Date        time.Time          `bson:"date"`
	Description string             `bson:"description"`
	Category    string             `bson:"category"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d *transactionDoc) toModel() models.Transaction {
	return models.Transaction{
		ID: d.ID.Hex(),
		TransactionFields: models.TransactionFields{
			Amount:      d.Amount,
			Date:        d.Date.UTC(),
			Description: d.Description,
			Category:    models.Category(d.Category),
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type budgetDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Category  string             `bson:"category"`
	Month     string             `bson:"month"`
	Amount    float64            `bson:"amount"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d *budgetDoc) toModel() models.Budget {
	return models.Budget{
		ID: d.ID.Hex(),
		BudgetFields: models.BudgetFields{
			Category: models.Category(d.Category),
			Month:    d.Month,
			Amount:   d.Amount,
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// now truncates to milliseconds, the resolution BSON dates keep.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
