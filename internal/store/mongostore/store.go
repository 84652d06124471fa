// Package mongostore persists products and carts as MongoDB documents in the
// Products and Carts collections.
package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Config struct {
	URI                string
	Database           string
	ProductsCollection string
	CartsCollection    string
}

// Store owns the client connection shared by both repositories.
type Store struct {
	client   *mongo.Client
	Products *ProductRepository
	Carts    *CartRepository
}

func Connect(ctx context.Context, cfg Config) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return &Store{
		client:   client,
		Products: NewProductRepository(db.Collection(cfg.ProductsCollection)),
		Carts:    NewCartRepository(db.Collection(cfg.CartsCollection)),
	}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
