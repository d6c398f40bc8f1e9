package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/gamescorehub/backend/internal/config"
)

// Mongo owns the document-store client for the process lifetime.
// It is constructed once on startup and injected into the repositories.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials the document store and verifies the connection with a ping.
func Connect(ctx context.Context, cfg *config.Config) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURL))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &Mongo{
		client: client,
		db:     client.Database(cfg.MongoDatabase),
	}, nil
}

// Users returns the users collection handle.
func (m *Mongo) Users() *mongo.Collection {
	return m.db.Collection("users")
}

// Games returns the games collection handle.
func (m *Mongo) Games() *mongo.Collection {
	return m.db.Collection("games")
}

// Close disconnects the client. Called on shutdown.
func (m *Mongo) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}
