package mongo

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/tadeyina/stayhaven/pkg/config"
	"github.com/tadeyina/stayhaven/pkg/retry"
)

// Client represents a MongoDB database client
type Client struct {
	client   *mongo.Client
	database *mongo.Database
}

// NewClient creates a new MongoDB client with exponential backoff retry
func NewClient(cfg *config.MongoConfig) (*Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(25).
		SetMinPoolSize(2))
	if err != nil {
		return nil, fmt.Errorf("failed to open MongoDB connection: %w", err)
	}

	// Test the connection with retry
	retryConfig := retry.DefaultConfig()
	err = retry.DoWithLog(
		context.Background(),
		retryConfig,
		"MongoDB",
		func() error {
			pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer pingCancel()
			return client.Ping(pingCtx, readpref.Primary())
		},
		func(attempt int, err error, nextDelay time.Duration) {
			log.Printf("MongoDB connection attempt %d failed: %v. Retrying in %v...", attempt, err, nextDelay)
		},
	)

	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to connect to MongoDB after retries: %w", err)
	}

	log.Println("Successfully connected to MongoDB")
	return &Client{
		client:   client,
		database: client.Database(cfg.Database),
	}, nil
}

// Database returns the configured database handle
func (c *Client) Database() *mongo.Database {
	return c.database
}

// Collection returns a collection handle in the configured database
func (c *Client) Collection(name string) *mongo.Collection {
	return c.database.Collection(name)
}

// Close closes the database connection
func (c *Client) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.client.Disconnect(ctx)
}

// Ping verifies the connection to the database
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}
