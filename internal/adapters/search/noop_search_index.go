package search

import (
	"context"

	"github.com/tadeyina/stayhaven/internal/domain/entities"
	"github.com/tadeyina/stayhaven/internal/domain/providers"
	apperrors "github.com/tadeyina/stayhaven/pkg/errors"
)

// NoopSearchIndex stands in when Typesense is unavailable. Indexing is
// silently skipped; searches report the index as down so callers fall back
// to the primary store.
type NoopSearchIndex struct{}

func NewNoopSearchIndex() providers.SearchIndex {
	return NoopSearchIndex{}
}

func (NoopSearchIndex) IndexListing(context.Context, *entities.Listing) error {
	return nil
}

func (NoopSearchIndex) SearchIDs(context.Context, string, int, int) ([]string, int64, error) {
	return nil, 0, apperrors.NewExternalError("search index not configured", nil)
}
