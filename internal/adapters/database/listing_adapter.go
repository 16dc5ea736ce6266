package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tadeyina/stayhaven/internal/domain/entities"
	"github.com/tadeyina/stayhaven/internal/domain/repositories"
	mongoclient "github.com/tadeyina/stayhaven/internal/infrastructure/clients/mongo"
	apperrors "github.com/tadeyina/stayhaven/pkg/errors"
)

const listingsCollection = "listings"

// ListingAdapter implements the ListingRepository interface
type ListingAdapter struct {
	client *mongoclient.Client
}

// NewListingAdapter creates a new listing adapter
func NewListingAdapter(client *mongoclient.Client) repositories.ListingRepository {
	return &ListingAdapter{client: client}
}

func (a *ListingAdapter) collection() *mongo.Collection {
	return a.client.Collection(listingsCollection)
}

// Create persists a new listing
func (a *ListingAdapter) Create(ctx context.Context, listing *entities.Listing) error {
	now := time.Now().UTC()
	listing.CreatedAt = now
	listing.UpdatedAt = now
	if listing.BookingsIndex == nil {
		listing.BookingsIndex = entities.BookingsIndex{}
	}
	if listing.BookingIDs == nil {
		listing.BookingIDs = []string{}
	}

	if _, err := a.collection().InsertOne(ctx, listing); err != nil {
		return apperrors.NewInternalError("failed to create listing", err)
	}
	return nil
}

// GetByID retrieves a listing by ID
func (a *ListingAdapter) GetByID(ctx context.Context, id string) (*entities.Listing, error) {
	listing := &entities.Listing{}
	err := a.collection().FindOne(ctx, bson.M{"_id": id}).Decode(listing)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("listing with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get listing", err)
	}
	return listing, nil
}

// GetByIDs retrieves multiple listings by ID
func (a *ListingAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.Listing, error) {
	if len(ids) == 0 {
		return []*entities.Listing{}, nil
	}

	cursor, err := a.collection().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query listings", err)
	}

	var listings []*entities.Listing
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, apperrors.NewInternalError("failed to decode listings", err)
	}
	return listings, nil
}

func listingFilterQuery(filter repositories.ListingFilter) bson.M {
	query := bson.M{}
	if filter.Location != "" {
		pattern := primitive.Regex{Pattern: fmt.Sprintf("^%s$", filter.Location), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"city": pattern},
			bson.M{"admin": pattern},
			bson.M{"country": pattern},
		}
	}
	return query
}

// List retrieves listings with pagination, optionally filtered by location
func (a *ListingAdapter) List(ctx context.Context, filter repositories.ListingFilter) ([]*entities.Listing, error) {
	query := listingFilterQuery(filter)

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(filter.Limit)).
		SetSkip(int64(filter.Offset))

	cursor, err := a.collection().Find(ctx, query, opts)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query listings", err)
	}

	var listings []*entities.Listing
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, apperrors.NewInternalError("failed to decode listings", err)
	}
	return listings, nil
}

// Count reports how many listings match the filter
func (a *ListingAdapter) Count(ctx context.Context, filter repositories.ListingFilter) (int64, error) {
	count, err := a.collection().CountDocuments(ctx, listingFilterQuery(filter))
	if err != nil {
		return 0, apperrors.NewInternalError("failed to count listings", err)
	}
	return count, nil
}

// ListByHost retrieves the listings a host owns
func (a *ListingAdapter) ListByHost(ctx context.Context, hostID string) ([]*entities.Listing, error) {
	cursor, err := a.collection().Find(ctx, bson.M{"host": hostID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query host listings", err)
	}

	var listings []*entities.Listing
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, apperrors.NewInternalError("failed to decode host listings", err)
	}
	return listings, nil
}

// CommitBooking appends the booking reference and replaces the bookings
// index in a single conditional update. The filter matches the index
// version the caller read; 0 matched documents means another writer got
// there first (or the listing vanished) and nothing was written.
func (a *ListingAdapter) CommitBooking(ctx context.Context, commit repositories.BookingCommit) error {
	res, err := a.collection().UpdateOne(ctx,
		bson.M{"_id": commit.ListingID, "indexVersion": commit.ExpectedVersion},
		bson.M{
			"$set":  bson.M{"bookingsIndex": commit.Index, "updatedAt": time.Now().UTC()},
			"$inc":  bson.M{"indexVersion": 1},
			"$push": bson.M{"bookings": commit.BookingID},
		})
	if err != nil {
		return apperrors.NewInternalError("failed to commit booking to listing", err)
	}

	if res.MatchedCount == 0 {
		count, err := a.collection().CountDocuments(ctx, bson.M{"_id": commit.ListingID})
		if err == nil && count == 0 {
			return apperrors.NewNotFoundError(fmt.Sprintf("listing with id %s not found", commit.ListingID))
		}
		return apperrors.NewConflictError("listing bookings index changed concurrently")
	}
	return nil
}
