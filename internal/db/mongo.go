package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

const defaultMongoDatabase = "todo"

// Mongo holds the shared client and the database the repositories use.
type Mongo struct {
	client   *mongo.Client
	database *mongo.Database
}

// NewMongo connects to uri and verifies the primary is reachable.
// When database is empty the name from the URI path is used, then "todo".
func NewMongo(ctx context.Context, uri, database string) (*Mongo, error) {
	name, err := databaseName(uri, database)
	if err != nil {
		return nil, err
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &Mongo{client: client, database: client.Database(name)}, nil
}

func databaseName(uri, override string) (string, error) {
	if override != "" {
		return override, nil
	}
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return "", fmt.Errorf("parse mongo uri: %w", err)
	}
	if cs.Database != "" {
		return cs.Database, nil
	}
	return defaultMongoDatabase, nil
}

// Database returns the handle repositories are built from.
func (m *Mongo) Database() *mongo.Database {
	return m.database
}

// Ping checks the primary is reachable.
func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
