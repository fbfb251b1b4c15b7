package db

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Pool wraps the driver client so the rest of the service depends on an
// explicit handle with a lifecycle instead of a package-level singleton.
type Pool struct {
	client *mongo.Client
	db     *mongo.Database
}

func Connect(ctx context.Context, uri, dbName string) (*Pool, error) {
	if uri == "" {
		return nil, errors.New("mongodb uri is required")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return &Pool{
		client: client,
		db:     client.Database(dbName),
	}, nil
}

func (p *Pool) Database() *mongo.Database {
	return p.db
}

func (p *Pool) Collection(name string) *mongo.Collection {
	return p.db.Collection(name)
}

// Disconnect drains the pool. Call it on shutdown.
func (p *Pool) Disconnect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return p.client.Disconnect(ctx)
}
