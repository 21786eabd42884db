package db

import (
	"context"
	"time"

	"github.com/doctorchannel/apiserver/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	defaultConnectTimeout = 10 * time.Second
	defaultPingTimeout    = 5 * time.Second
	defaultMaxPoolSize    = 25
)

// Open connects to MongoDB and returns the configured database handle.
func Open(ctx context.Context, cfg config.Config) (*mongo.Database, error) {
	opts := options.Client().
		ApplyURI(cfg.Mongo.URI).
		SetConnectTimeout(defaultConnectTimeout).
		SetMaxPoolSize(defaultMaxPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return client.Database(cfg.Mongo.Database), nil
}

// Close disconnects the client backing the database handle.
func Close(db *mongo.Database) error {
	if db == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), defaultPingTimeout)
	defer cancel()
	return db.Client().Disconnect(ctx)
}
