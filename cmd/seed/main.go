// Command seed populates MongoDB with demo users and listings for local
// development.
package main

import (
	"context"
	"os"
	"time"

	"github.com/tadeyina/stayhaven/internal/adapters/database"
	"github.com/tadeyina/stayhaven/internal/domain/entities"
	mongoclient "github.com/tadeyina/stayhaven/internal/infrastructure/clients/mongo"
	"github.com/tadeyina/stayhaven/internal/infrastructure/observability"
	"github.com/tadeyina/stayhaven/pkg/config"
)

func strPtr(s string) *string { return &s }

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}

	observability.InitLogger("stayhaven-seed", os.Getenv("APP_ENV"))
	logger := observability.GetLogger()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	mongoClient, err := mongoclient.NewClient(&cfg.Mongo)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize MongoDB client")
	}
	defer mongoClient.Close()

	users := database.NewUserAdapter(mongoClient)
	listings := database.NewListingAdapter(mongoClient)

	demoUsers := []*entities.User{
		{
			ID:       "user-hana",
			Name:     "Hana Okafor",
			Avatar:   "https://avatars.stayhaven.dev/hana.png",
			Contact:  "hana@example.com",
			WalletID: strPtr("acct_seed_hana"),
		},
		{
			ID:      "user-tom",
			Name:    "Tom Iwata",
			Avatar:  "https://avatars.stayhaven.dev/tom.png",
			Contact: "tom@example.com",
		},
	}

	demoListings := []*entities.Listing{
		{
			ID:          "listing-harbour-flat",
			Title:       "Harbour flat with a balcony",
			Description: "Two bright rooms over the water, ten minutes from the old town.",
			Image:       "https://images.stayhaven.dev/harbour-flat.jpg",
			HostID:      "user-hana",
			Type:        entities.ListingTypeApartment,
			Address:     "1 Dock Road",
			Country:     "Portugal",
			Admin:       "Lisboa",
			City:        "Lisbon",
			NumOfGuests: 2,
			Price:       12500,
		},
		{
			ID:          "listing-cedar-house",
			Title:       "Cedar house at the forest edge",
			Description: "Quiet three-bedroom house with a wood stove and a long porch.",
			Image:       "https://images.stayhaven.dev/cedar-house.jpg",
			HostID:      "user-hana",
			Type:        entities.ListingTypeHouse,
			Address:     "44 Pine Hollow",
			Country:     "Canada",
			Admin:       "British Columbia",
			City:        "Squamish",
			NumOfGuests: 6,
			Price:       28000,
		},
	}

	for _, u := range demoUsers {
		if err := users.Create(ctx, u); err != nil {
			logger.Error().Err(err).Str("user_id", u.ID).Msg("failed to seed user")
			continue
		}
		logger.Info().Str("user_id", u.ID).Msg("seeded user")
	}

	for _, l := range demoListings {
		if err := listings.Create(ctx, l); err != nil {
			logger.Error().Err(err).Str("listing_id", l.ID).Msg("failed to seed listing")
			continue
		}
		if err := users.AppendListing(ctx, l.HostID, l.ID); err != nil {
			logger.Error().Err(err).Str("listing_id", l.ID).Msg("failed to attach listing to host")
		}
		logger.Info().Str("listing_id", l.ID).Msg("seeded listing")
	}

	logger.Info().Msg("seed complete")
}
