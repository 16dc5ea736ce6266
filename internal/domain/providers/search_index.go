package providers

import (
	"context"

	"github.com/tadeyina/stayhaven/internal/domain/entities"
)

// SearchIndex maintains the location search index over listings
type SearchIndex interface {
	// IndexListing upserts a listing document into the search index
	IndexListing(ctx context.Context, listing *entities.Listing) error

	// SearchIDs returns listing ids ranked by relevance for a free-text
	// location query, together with the total match count
	SearchIDs(ctx context.Context, location string, limit, offset int) ([]string, int64, error)
}
