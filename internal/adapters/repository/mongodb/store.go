// Package mongodb persists questions and users in two MongoDB collections.
// All operations are single-document; there are no multi-document
// transactions and no internal retries.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	collectionQuestions = "questions"
	collectionUsers     = "users"
	collectionCounters  = "counters"
)

// Store is a typed accessor over the named collections. Repositories are
// built on these primitives; connectivity failures surface wrapped to the
// caller.
type Store struct {
	db *mongo.Database
}

func NewStore(db *mongo.Database) *Store {
	return &Store{db: db}
}

// FindByID decodes the document with the given _id into out and reports
// whether it was found. Absence is not an error.
func (s *Store) FindByID(ctx context.Context, collection string, id, out any) (bool, error) {
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find in %s: %w", collection, err)
	}
	return true, nil
}

func (s *Store) Insert(ctx context.Context, collection string, doc any) error {
	if _, err := s.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert into %s: %w", collection, err)
	}
	return nil
}

// PushField appends value to the array field and reports whether a document
// matched.
func (s *Store) PushField(ctx context.Context, collection string, id any, field string, value any) (bool, error) {
	res, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$push": bson.M{field: value}})
	if err != nil {
		return false, fmt.Errorf("push to %s.%s: %w", collection, field, err)
	}
	return res.MatchedCount > 0, nil
}

// IncrementField atomically adds delta to a numeric field and reports
// whether a document matched.
func (s *Store) IncrementField(ctx context.Context, collection string, id any, field string, delta int64) (bool, error) {
	res, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{field: delta}})
	if err != nil {
		return false, fmt.Errorf("increment %s.%s: %w", collection, field, err)
	}
	return res.MatchedCount > 0, nil
}

// NextSequence atomically increments the named counter document and returns
// the new value. Sequences start at 1 and never repeat, which keeps question
// numbering gapless even under concurrent posts.
func (s *Store) NextSequence(ctx context.Context, name string) (int64, error) {
	var doc struct {
		Value int64 `bson:"value"`
	}
	err := s.db.Collection(collectionCounters).FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"value": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("next sequence %s: %w", name, err)
	}
	return doc.Value, nil
}

// AddToSet appends value to the array field only when it is absent from
// every field named in absentFrom, in a single conditional update. It
// reports whether the condition matched a document.
func (s *Store) AddToSet(ctx context.Context, collection string, id any, field string, value any, absentFrom ...string) (bool, error) {
	filter := bson.M{"_id": id}
	for _, f := range absentFrom {
		filter[f] = bson.M{"$ne": value}
	}
	res, err := s.db.Collection(collection).UpdateOne(ctx, filter, bson.M{"$addToSet": bson.M{field: value}})
	if err != nil {
		return false, fmt.Errorf("add to set %s.%s: %w", collection, field, err)
	}
	return res.MatchedCount > 0, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, nil)
}
