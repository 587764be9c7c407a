package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/piyush-pb/Personal-Finance-Tracker/internal/models"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/store"
)

type budgetStore struct {
	coll *mongo.Collection
}

func (s *budgetStore) List(ctx context.Context, filter store.BudgetFilter) ([]models.Budget, error) {
	query := bson.M{}
	if filter.Month != "" {
		query["month"] = filter.Month
	}

	// ObjectIDs lead with their creation second, so _id order is insertion order.
	cur, err := s.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}

	var docs []budgetDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	budgets := make([]models.Budget, len(docs))
	for i := range docs {
		budgets[i] = docs[i].toModel()
	}
	return budgets, nil
}

func (s *budgetStore) Get(ctx context.Context, id string) (*models.Budget, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc budgetDoc
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	b := doc.toModel()
	return &b, nil
}

func (s *budgetStore) Create(ctx context.Context, fields models.BudgetFields) (*models.Budget, error) {
	ts := now()
	doc := budgetDoc{
		Category:  string(fields.Category),
		Month:     fields.Month,
		Amount:    fields.Amount,
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	res, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, translate(err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)

	b := doc.toModel()
	return &b, nil
}

func (s *budgetStore) Update(ctx context.Context, id string, fields models.BudgetFields) (*models.Budget, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"category":  string(fields.Category),
		"month":     fields.Month,
		"amount":    fields.Amount,
		"updatedAt": now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc budgetDoc
	if err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	b := doc.toModel()
	return &b, nil
}

func (s *budgetStore) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
