package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/threatforge/threatforge/pkg/model"
)

// modelsCollection is the collection models are stored in.
const modelsCollection = "models"

// modelDocument is the persisted shape of one model.
type modelDocument struct {
	ID       string      `bson:"_id"`
	Name     string      `bson:"name"`
	Modified time.Time   `bson:"modified"`
	Graph    model.Graph `bson:"graph"`
}

// MongoStore persists models in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB at uri and uses the given database. The
// connection is verified with a ping before returning.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(modelsCollection),
	}, nil
}

// Save stores the graph under id, replacing any previous version.
func (s *MongoStore) Save(ctx context.Context, id string, g model.Graph) error {
	doc := modelDocument{
		ID:       id,
		Name:     g.Metadata.Name,
		Modified: time.Now().UTC(),
		Graph:    g,
	}
	opts := options.Replace().SetUpsert(true)
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": id}, doc, opts)
	return err
}

// Get returns the graph stored under id.
func (s *MongoStore) Get(ctx context.Context, id string) (model.Graph, error) {
	var doc modelDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Graph{}, ErrNotFound
	}
	if err != nil {
		return model.Graph{}, err
	}
	return doc.Graph, nil
}

// List returns summaries of all stored models, newest first.
func (s *MongoStore) List(ctx context.Context) ([]Summary, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1, "name": 1, "modified": 1}).
		SetSort(bson.M{"modified": -1})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	summaries := []Summary{}
	if err := cur.All(ctx, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

// Delete removes the model under id.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
