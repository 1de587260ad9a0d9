// Package mongostore implements docstore.Collection on MongoDB.
//
// Documents use string ids (ObjectID hex) so the rest of the app never
// handles driver types. Timestamps come from a shared docstore.Clock.
package mongostore

import (
	"context"
	"errors"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/jawahirullah/portal/internal/app/system/docstore"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is a docstore.Collection backed by one MongoDB collection.
type Collection[T any] struct {
	c     *mongo.Collection
	clock *docstore.Clock
}

// New returns the named collection of db. A nil clock gets a fresh one.
func New[T any](db *mongo.Database, name string, clock *docstore.Clock) *Collection[T] {
	if clock == nil {
		clock = docstore.NewClock(nil)
	}
	return &Collection[T]{c: db.Collection(name), clock: clock}
}

var _ docstore.Collection[struct{}] = (*Collection[struct{}])(nil)

func (s *Collection[T]) Create(ctx context.Context, doc T) (string, error) {
	m, err := toDoc(doc)
	if err != nil {
		return "", docstore.Wrap(docstore.CodeInvalidArgument, "create", err)
	}
	docstore.StripManaged(m)

	id := primitive.NewObjectID().Hex()
	now := s.clock.Now()
	m["_id"] = id
	m["created_at"] = now
	m["updated_at"] = now

	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return "", classify("create", err)
	}
	return id, nil
}

func (s *Collection[T]) GetByID(ctx context.Context, id string) (*T, error) {
	var out T
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, classify("get", err)
	}
	return &out, nil
}

func (s *Collection[T]) GetAll(ctx context.Context, opts docstore.ListOptions) ([]T, error) {
	opts = opts.Normalize()
	dir := -1
	if opts.Direction == docstore.Asc {
		dir = 1
	}
	fo := options.Find().SetSort(bson.D{{Key: opts.OrderBy, Value: dir}, {Key: "_id", Value: dir}})
	if opts.Limit > 0 {
		fo.SetLimit(opts.Limit)
	}
	return s.find(ctx, "list", bson.M{}, fo)
}

func (s *Collection[T]) GetByStatus(ctx context.Context, status string) ([]T, error) {
	fo := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	return s.find(ctx, "list by status", bson.M{"status": status}, fo)
}

func (s *Collection[T]) Update(ctx context.Context, id string, patch docstore.Patch) error {
	set := bson.M{}
	for k, v := range patch {
		set[k] = v
	}
	docstore.StripManaged(set)
	set["updated_at"] = s.clock.Now()

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return classify("update", err)
	}
	if res.MatchedCount == 0 {
		return docstore.NewError(docstore.CodeNotFound, "update", "no document with id "+id)
	}
	return nil
}

func (s *Collection[T]) Increment(ctx context.Context, id, field string, by int64) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{field: by}})
	if err != nil {
		return classify("increment", err)
	}
	if res.MatchedCount == 0 {
		return docstore.NewError(docstore.CodeNotFound, "increment", "no document with id "+id)
	}
	return nil
}

func (s *Collection[T]) Delete(ctx context.Context, id string) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return classify("delete", err)
	}
	if res.DeletedCount == 0 {
		return docstore.NewError(docstore.CodeNotFound, "delete", "no document with id "+id)
	}
	return nil
}

// Search is an exact-prefix range query on one field.
func (s *Collection[T]) Search(ctx context.Context, field, prefix string) ([]T, error) {
	filter := bson.M{field: bson.M{"$gte": prefix, "$lte": docstore.SearchUpperBound(prefix)}}
	fo := options.Find().SetSort(bson.D{{Key: field, Value: 1}, {Key: "_id", Value: 1}})
	return s.find(ctx, "search", filter, fo)
}

func (s *Collection[T]) Count(ctx context.Context, filter map[string]any) (int64, error) {
	if filter == nil {
		filter = map[string]any{}
	}
	n, err := s.c.CountDocuments(ctx, bson.M(filter))
	if err != nil {
		return 0, classify("count", err)
	}
	return n, nil
}

func (s *Collection[T]) find(ctx context.Context, op string, filter bson.M, fo *options.FindOptions) ([]T, error) {
	cur, err := s.c.Find(ctx, filter, fo)
	if err != nil {
		return nil, classify(op, err)
	}
	defer cur.Close(ctx)

	out := make([]T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, classify(op, err)
	}
	return out, nil
}

func toDoc(v any) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// MongoDB server error codes the store maps to its own codes.
const (
	codeUnauthorized          = 13
	codeAuthFailed            = 18
	codeValidationFailed      = 121
	codeHostUnreachable       = 6
	codeNotPrimary            = 10107
	codeInterruptedAtShutdown = 11600
)

// classify maps a driver error to a coded store error.
func classify(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return docstore.Wrap(docstore.CodeNotFound, op, err)
	case wafflemongo.IsDup(err):
		return docstore.Wrap(docstore.CodeAlreadyExists, op, err)
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		errors.Is(err, mongo.ErrClientDisconnected),
		mongo.IsNetworkError(err),
		mongo.IsTimeout(err):
		return docstore.Wrap(docstore.CodeUnavailable, op, err)
	}

	var se mongo.ServerError
	if errors.As(err, &se) {
		switch {
		case se.HasErrorCode(codeUnauthorized), se.HasErrorCode(codeAuthFailed):
			return docstore.Wrap(docstore.CodePermissionDenied, op, err)
		case se.HasErrorCode(codeValidationFailed):
			return docstore.Wrap(docstore.CodeInvalidArgument, op, err)
		case se.HasErrorCode(codeHostUnreachable), se.HasErrorCode(codeNotPrimary), se.HasErrorCode(codeInterruptedAtShutdown):
			return docstore.Wrap(docstore.CodeUnavailable, op, err)
		}
	}
	return docstore.Wrap(docstore.CodeUnknown, op, err)
}
