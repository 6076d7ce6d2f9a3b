package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const documentsCollection = "documents"

// MongoStore maps the document tree onto a single collection. Each record is
// {_id: full path, parent: collection path, data: body}.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *zap.Logger
}

type mongoEnvelope struct {
	ID     string   `bson:"_id"`
	Parent string   `bson:"parent"`
	Data   bson.Raw `bson:"data"`
}

func NewMongoStore(ctx context.Context, uri, dbName string, logger *zap.Logger) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Set a timeout for the ping operation
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	logger.Info("connected to MongoDB", zap.String("database", dbName))

	store := &MongoStore{
		client:     client,
		collection: client.Database(dbName).Collection(documentsCollection),
		logger:     logger,
	}
	store.logTopology(ctx)

	if err := store.CreateIndexes(ctx); err != nil {
		logger.Warn("failed to create document indexes", zap.Error(err))
	}
	return store, nil
}

// logTopology reports whether the server is part of a replica set.
func (s *MongoStore) logTopology(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var result bson.M
	// Use the newer "hello" command instead of deprecated "isMaster"
	if err := s.client.Database("admin").RunCommand(ctx, bson.M{"hello": 1}).Decode(&result); err != nil {
		s.logger.Warn("error checking replica set", zap.Error(err))
		return
	}

	if setName, exists := result["setName"]; exists {
		s.logger.Info("part of replica set", zap.Any("set_name", setName))
		return
	}
	s.logger.Info("not part of a replica set")
}

func (s *MongoStore) CreateIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		// LISTING: every List call filters on parent and sorts on _id
		{
			Keys: bson.D{
				{Key: "parent", Value: 1},
				{Key: "_id", Value: 1},
			},
			Options: options.Index().SetName("idx_parent_id"),
		},
		// ACTIVITIES / ANNOUNCEMENTS: recent-first views on root collections
		{
			Keys: bson.D{
				{Key: "parent", Value: 1},
				{Key: "data.timestamp", Value: -1},
			},
			Options: options.Index().SetName("idx_parent_timestamp").SetSparse(true),
		},
	}

	if _, err := s.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create document indexes: %w", err)
	}

	s.logger.Debug("document indexes created")
	return nil
}

func (s *MongoStore) Get(ctx context.Context, path string, dst any) error {
	if err := ValidateDocumentPath(path); err != nil {
		return err
	}

	var env mongoEnvelope
	err := s.collection.FindOne(ctx, bson.M{"_id": normalize(path)}).Decode(&env)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return bson.Unmarshal(env.Data, dst)
}

func (s *MongoStore) Exists(ctx context.Context, path string) (bool, error) {
	if err := ValidateDocumentPath(path); err != nil {
		return false, err
	}

	count, err := s.collection.CountDocuments(ctx, bson.M{"_id": normalize(path)}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *MongoStore) Set(ctx context.Context, path string, doc any) error {
	if err := ValidateDocumentPath(path); err != nil {
		return err
	}
	id := normalize(path)

	replacement := bson.M{
		"_id":    id,
		"parent": ParentCollection(id),
		"data":   doc,
	}
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": id}, replacement, options.Replace().SetUpsert(true))
	return err
}

func (s *MongoStore) Merge(ctx context.Context, path string, fields map[string]any) error {
	if err := ValidateDocumentPath(path); err != nil {
		return err
	}
	id := normalize(path)

	set := bson.M{"parent": ParentCollection(id)}
	for field, value := range fields {
		set["data."+field] = value
	}

	_, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}, options.Update().SetUpsert(true))
	return err
}

func (s *MongoStore) List(ctx context.Context, collection string) ([]Document, error) {
	if err := ValidateCollectionPath(collection); err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := s.collection.Find(ctx, bson.M{"parent": normalize(collection)}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []Document
	for cursor.Next(ctx) {
		var env mongoEnvelope
		if err := cursor.Decode(&env); err != nil {
			return nil, err
		}
		raw := make(bson.Raw, len(env.Data))
		copy(raw, env.Data)
		docs = append(docs, NewDocument(env.ID, func(dst any) error {
			return bson.Unmarshal(raw, dst)
		}))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *MongoStore) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}
	return nil
}
