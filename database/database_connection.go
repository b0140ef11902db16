package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Connect opens a client, pings the primary and returns a handle to the
// application database.
func Connect(ctx context.Context, uri, databaseName string) (*mongo.Database, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client.Database(databaseName), nil
}

// EnsureIndexes creates the unique indexes the application relies on.
// Uniqueness of email per principal kind is enforced here, not by the
// pre-insert existence checks in the handlers: a race between two
// concurrent creates is decided by the index, and the duplicate-key write
// error is the authoritative signal.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := func(keys bson.D) mongo.IndexModel {
		return mongo.IndexModel{Keys: keys, Options: options.Index().SetUnique(true)}
	}

	indexes := map[string][]mongo.IndexModel{
		"admins":      {unique(bson.D{{Key: "email", Value: 1}})},
		"clients":     {unique(bson.D{{Key: "email", Value: 1}})},
		"newsletters": {unique(bson.D{{Key: "email", Value: 1}})},
		"equipments": {
			unique(bson.D{{Key: "serialId", Value: 1}}),
			unique(bson.D{{Key: "slug", Value: 1}}),
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", collection, err)
		}
	}
	return nil
}
