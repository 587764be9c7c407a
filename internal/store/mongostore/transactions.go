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

type transactionStore struct {
	coll *mongo.Collection
}

func (s *transactionStore) List(ctx context.Context) ([]models.Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}

	var docs []transactionDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	txs := make([]models.Transaction, len(docs))
	for i := range docs {
		txs[i] = docs[i].toModel()
	}
	return txs, nil
}

func (s *transactionStore) Get(ctx context.Context, id string) (*models.Transaction, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc transactionDoc
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	tx := doc.toModel()
	return &tx, nil
}

func (s *transactionStore) Create(ctx context.Context, fields models.TransactionFields) (*models.Transaction, error) {
	ts := now()
	doc := transactionDoc{
		Amount:      fields.Amount,
		Date:        fields.Date.UTC(),
		Description: fields.Description,
		Category:    string(fields.Category),
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	res, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, translate(err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)

	tx := doc.toModel()
	return &tx, nil
}

// Update replaces the mutable fields in a single atomic findAndModify and
// returns the document as stored afterwards.
func (s *transactionStore) Update(ctx context.Context, id string, fields models.TransactionFields) (*models.Transaction, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"amount":      fields.Amount,
		"date":        fields.Date.UTC(),
		"description": fields.Description,
		"category":    string(fields.Category),
		"updatedAt":   now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc transactionDoc
	if err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	tx := doc.toModel()
	return &tx, nil
}

func (s *transactionStore) Delete(ctx context.Context, id string) error {
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
