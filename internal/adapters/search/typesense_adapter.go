package search

import (
	"context"
	"fmt"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/tadeyina/stayhaven/internal/domain/entities"
	tsclient "github.com/tadeyina/stayhaven/internal/infrastructure/clients/typesense"
)

// TypesenseAdapter indexes listings for location search
type TypesenseAdapter struct {
	client *tsclient.Client
}

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the listings collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	return a.client.InitSchema(ctx)
}

// IndexListing upserts a listing document into the search collection
func (a *TypesenseAdapter) IndexListing(ctx context.Context, listing *entities.Listing) error {
	document := map[string]interface{}{
		"id":            listing.ID,
		"title":         listing.Title,
		"address":       listing.Address,
		"city":          listing.City,
		"admin":         listing.Admin,
		"country":       listing.Country,
		"listing_type":  string(listing.Type),
		"price":         listing.Price,
		"num_of_guests": listing.NumOfGuests,
		"created_at":    listing.CreatedAt.Unix(),
	}

	_, err := a.client.Client().Collection(tsclient.ListingsCollection).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index listing %s: %w", listing.ID, err)
	}
	return nil
}

// SearchIDs returns the IDs of listings matching a free-form location query,
// newest first, together with the total match count. Full records come from
// the primary store; the search index only ranks.
func (a *TypesenseAdapter) SearchIDs(ctx context.Context, location string, limit, offset int) ([]string, int64, error) {
	if limit <= 0 {
		limit = 10
	}

	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(location),
		QueryBy: pointer.String("city,admin,country,address,title"),
		SortBy:  pointer.String("created_at:desc"),
		Page:    pointer.Int(offset/limit + 1),
		PerPage: pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(tsclient.ListingsCollection).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search listings: %w", err)
	}

	var total int64
	if result.Found != nil {
		total = int64(*result.Found)
	}

	ids := []string{}
	if result.Hits == nil {
		return ids, total, nil
	}
	for _, hit := range *result.Hits {
		doc := *hit.Document
		if id, ok := doc["id"].(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, total, nil
}
