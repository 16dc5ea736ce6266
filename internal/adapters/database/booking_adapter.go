package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tadeyina/stayhaven/internal/domain/entities"
	"github.com/tadeyina/stayhaven/internal/domain/repositories"
	mongoclient "github.com/tadeyina/stayhaven/internal/infrastructure/clients/mongo"
	apperrors "github.com/tadeyina/stayhaven/pkg/errors"
)

const bookingsCollection = "bookings"

// BookingAdapter implements the BookingRepository interface
type BookingAdapter struct {
	client *mongoclient.Client
}

// NewBookingAdapter creates a new booking adapter
func NewBookingAdapter(client *mongoclient.Client) repositories.BookingRepository {
	return &BookingAdapter{client: client}
}

func (a *BookingAdapter) collection() *mongo.Collection {
	return a.client.Collection(bookingsCollection)
}

// Create persists a new booking
func (a *BookingAdapter) Create(ctx context.Context, booking *entities.Booking) error {
	booking.CreatedAt = time.Now().UTC()

	if _, err := a.collection().InsertOne(ctx, booking); err != nil {
		return apperrors.NewInternalError("failed to create booking", err)
	}
	return nil
}

// GetByID retrieves a booking by ID
func (a *BookingAdapter) GetByID(ctx context.Context, id string) (*entities.Booking, error) {
	booking := &entities.Booking{}
	err := a.collection().FindOne(ctx, bson.M{"_id": id}).Decode(booking)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("booking with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get booking", err)
	}
	return booking, nil
}

// GetByIDs retrieves multiple bookings by ID
func (a *BookingAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.Booking, error) {
	if len(ids) == 0 {
		return []*entities.Booking{}, nil
	}

	cursor, err := a.collection().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query bookings", err)
	}

	var bookings []*entities.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, apperrors.NewInternalError("failed to decode bookings", err)
	}
	return bookings, nil
}

// ListByTenant retrieves bookings a user has made, newest first
func (a *BookingAdapter) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entities.Booking, error) {
	return a.list(ctx, bson.M{"tenant": tenantID}, limit, offset)
}

// ListByListing retrieves bookings of a listing, newest first
func (a *BookingAdapter) ListByListing(ctx context.Context, listingID string, limit, offset int) ([]*entities.Booking, error) {
	return a.list(ctx, bson.M{"listing": listingID}, limit, offset)
}

func (a *BookingAdapter) list(ctx context.Context, filter bson.M, limit, offset int) ([]*entities.Booking, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := a.collection().Find(ctx, filter, opts)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query bookings", err)
	}

	var bookings []*entities.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, apperrors.NewInternalError("failed to decode bookings", err)
	}
	return bookings, nil
}
