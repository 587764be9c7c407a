// Package mongostore implements the store contracts on MongoDB. Records
// use ObjectID identifiers and live in the "transactions" and "budgets"
// collections.
package mongostore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/piyush-pb/Personal-Finance-Tracker/internal/store"
)

const (
	transactionsCollection = "transactions"
	budgetsCollection      = "budgets"
)

// New returns the stores backed by db.
func New(db *mongo.Database) store.Stores {
	return store.Stores{
		Transactions: &transactionStore{coll: db.Collection(transactionsCollection)},
		Budgets:      &budgetStore{coll: db.Collection(budgetsCollection)},
		Health:       &pinger{client: db.Client()},
	}
}

// EnsureIndexes creates the indexes the stores rely on, including the
// unique (category, month) index on budgets. It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(transactionsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(budgetsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "category", Value: 1}, {Key: "month", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_budgets_category_month"),
		},
		{
			Keys: bson.D{{Key: "month", Value: 1}},
		},
	})
	return err
}

type pinger struct {
	client *mongo.Client
}

func (p *pinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx, readpref.Primary())
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, store.ErrInvalidID
	}
	return oid, nil
}

// translate maps driver errors onto the store sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return store.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return store.ErrDuplicate
	}
	return err
}
