package store

import (
	"context"
	stderrors "errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/buildinfo"
	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/errors"
)

// MongoCollection is the collection holding blueprint documents.
const MongoCollection = "blueprints"

// DefaultMongoDatabase is used when no database name is configured.
const DefaultMongoDatabase = "hellion"

// MongoStore keeps each blueprint as one Mongo document keyed by id. The
// blueprint JSON is stored verbatim in the "document" field.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type mongoRecord struct {
	ID        string    `bson:"_id"`
	Document  []byte    `bson:"document"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewMongoStore connects to uri and uses the given database.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	if database == "" {
		database = DefaultMongoDatabase
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetAppName(buildinfo.UserAgent()))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "ping mongo")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(MongoCollection),
	}, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) ([]byte, error) {
	var rec mongoRecord
	err := withRetry(ctx, func() error {
		err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
		switch {
		case err == nil:
			return nil
		case stderrors.Is(err, mongo.ErrNoDocuments):
			return ErrNotFound
		case mongo.IsNetworkError(err) || mongo.IsTimeout(err):
			return Retryable(err)
		default:
			return err
		}
	})
	if err != nil {
		if err == ErrNotFound {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "mongo find %s", id)
	}
	return rec.Document, nil
}

func (s *MongoStore) Put(ctx context.Context, id string, data []byte) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	rec := mongoRecord{ID: id, Document: data, UpdatedAt: time.Now().UTC()}
	err := withRetry(ctx, func() error {
		_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": id}, rec, options.Replace().SetUpsert(true))
		if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
			return Retryable(err)
		}
		return err
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "mongo replace %s", id)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "mongo delete %s", id)
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1}).SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "mongo find")
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var rec struct {
			ID string `bson:"_id"`
		}
		if err := cur.Decode(&rec); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "mongo decode")
		}
		ids = append(ids, rec.ID)
	}
	if err := cur.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "mongo cursor")
	}
	return ids, nil
}

func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
