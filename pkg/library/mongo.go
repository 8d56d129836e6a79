package library

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/plateforge/plateforge/pkg/errors"
)

const (
	mongoDatabase   = "plateforge"
	mongoCollection = "plates"

	// mongoTimeout bounds connection setup and teardown.
	mongoTimeout = 5 * time.Second
)

// MongoStore persists designs in a MongoDB collection, one document
// per design, upserted by name.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and prepares the plates collection.
// The URI uses the standard mongodb:// scheme.
func NewMongoStore(ctx context.Context, uri string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connecting to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connecting to mongodb")
	}

	coll := client.Database(mongoDatabase).Collection(mongoCollection)
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := coll.Indexes().CreateOne(ctx, index); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeStore, err, "ensuring name index")
	}

	return &MongoStore{client: client, coll: coll}, nil
}

func (s *MongoStore) Save(ctx context.Context, e *Entry) error {
	if err := errors.ValidateDesignName(e.Name); err != nil {
		return err
	}

	now := time.Now().UTC()
	var prev Entry
	err := s.coll.FindOne(ctx, bson.M{"name": e.Name}).Decode(&prev)
	switch {
	case err == nil:
		// Mongo forbids changing _id on replace.
		e.ID = prev.ID
		e.CreatedAt = prev.CreatedAt
	case err == mongo.ErrNoDocuments:
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		e.CreatedAt = now
	default:
		return errors.Wrap(errors.ErrCodeStore, err, "lookup design %q", e.Name)
	}
	e.UpdatedAt = now

	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"name": e.Name}, e, opts); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "save design %q", e.Name)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, name string) (*Entry, error) {
	if err := errors.ValidateDesignName(name); err != nil {
		return nil, err
	}

	var e Entry
	err := s.coll.FindOne(ctx, bson.M{"name": name}).Decode(&e)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeDesignNotFound, "design %q not found", name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "load design %q", name)
	}
	return &e, nil
}

func (s *MongoStore) List(ctx context.Context) ([]*Entry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list designs")
	}

	var entries []*Entry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "decode designs")
	}
	return entries, nil
}

func (s *MongoStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateDesignName(name); err != nil {
		return err
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete design %q", name)
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeDesignNotFound, "design %q not found", name)
	}
	return nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
