// Command indexer rebuilds the Typesense listings collection from MongoDB.
// Run it after standing up a fresh search node or when the schema changes.
package main

import (
	"context"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/tadeyina/stayhaven/internal/adapters/search"
	"github.com/tadeyina/stayhaven/internal/domain/entities"
	mongoclient "github.com/tadeyina/stayhaven/internal/infrastructure/clients/mongo"
	typesenseclient "github.com/tadeyina/stayhaven/internal/infrastructure/clients/typesense"
	"github.com/tadeyina/stayhaven/internal/infrastructure/observability"
	"github.com/tadeyina/stayhaven/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}

	observability.InitLogger("stayhaven-indexer", os.Getenv("APP_ENV"))
	logger := observability.GetLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	mongoClient, err := mongoclient.NewClient(&cfg.Mongo)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize MongoDB client")
	}
	defer mongoClient.Close()

	typesenseClient, err := typesenseclient.NewClient(&cfg.Typesense)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize Typesense client")
	}

	adapter := search.NewTypesenseAdapter(typesenseClient)
	if err := adapter.InitSchema(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to ensure search schema")
	}

	cursor, err := mongoClient.Collection("listings").Find(ctx, bson.M{})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to query listings")
	}
	defer cursor.Close(ctx)

	indexed, failed := 0, 0
	for cursor.Next(ctx) {
		listing := &entities.Listing{}
		if err := cursor.Decode(listing); err != nil {
			logger.Error().Err(err).Msg("failed to decode listing")
			failed++
			continue
		}
		if err := adapter.IndexListing(ctx, listing); err != nil {
			logger.Error().Err(err).Str("listing_id", listing.ID).Msg("failed to index listing")
			failed++
			continue
		}
		indexed++
	}
	if err := cursor.Err(); err != nil {
		logger.Fatal().Err(err).Msg("cursor error while indexing")
	}

	logger.Info().Int("indexed", indexed).Int("failed", failed).Msg("reindex complete")
}
