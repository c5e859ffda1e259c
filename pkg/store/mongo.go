package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/davidblanc347/parodesign/pkg/errors"
)

const turnsCollection = "turns"

// MongoStore persists transcripts in MongoDB for multi-instance server
// deployments.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig configures the MongoDB connection.
type MongoConfig struct {
	URI      string // e.g. "mongodb://localhost:27017"
	Database string
}

// NewMongoStore connects to MongoDB, verifies the connection, and ensures
// the session/seq index used by List and Latest.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "ping mongodb")
	}

	coll := client.Database(cfg.Database).Collection(turnsCollection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "session_id", Value: 1}, {Key: "seq", Value: 1}},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create transcript index")
	}

	return &MongoStore{client: client, coll: coll}, nil
}

// Append stores one turn.
func (s *MongoStore) Append(ctx context.Context, turn *Turn) error {
	if _, err := s.coll.InsertOne(ctx, turn); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "append turn")
	}
	return nil
}

// List returns all turns for a session ordered by Seq ascending.
func (s *MongoStore) List(ctx context.Context, sessionID string) ([]Turn, error) {
	cur, err := s.coll.Find(ctx,
		bson.M{"session_id": sessionID},
		options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}),
	)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list turns")
	}
	defer cur.Close(ctx)

	turns := []Turn{}
	if err := cur.All(ctx, &turns); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode turns")
	}
	return turns, nil
}

// Latest returns the turn with the highest Seq for a session.
func (s *MongoStore) Latest(ctx context.Context, sessionID string) (*Turn, error) {
	var turn Turn
	err := s.coll.FindOne(ctx,
		bson.M{"session_id": sessionID},
		options.FindOne().SetSort(bson.D{{Key: "seq", Value: -1}}),
	).Decode(&turn)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "find latest turn")
	}
	return &turn, nil
}

// Clear removes all turns for a session.
func (s *MongoStore) Clear(ctx context.Context, sessionID string) error {
	if _, err := s.coll.DeleteMany(ctx, bson.M{"session_id": sessionID}); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "clear session")
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
