package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tadeyina/stayhaven/internal/domain/entities"
	"github.com/tadeyina/stayhaven/internal/domain/repositories"
	mongoclient "github.com/tadeyina/stayhaven/internal/infrastructure/clients/mongo"
	apperrors "github.com/tadeyina/stayhaven/pkg/errors"
)

const usersCollection = "users"

// UserAdapter implements the UserRepository interface
type UserAdapter struct {
	client *mongoclient.Client
}

// NewUserAdapter creates a new user adapter
func NewUserAdapter(client *mongoclient.Client) repositories.UserRepository {
	return &UserAdapter{client: client}
}

func (a *UserAdapter) collection() *mongo.Collection {
	return a.client.Collection(usersCollection)
}

// Create persists a new user
func (a *UserAdapter) Create(ctx context.Context, user *entities.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.BookingIDs == nil {
		user.BookingIDs = []string{}
	}
	if user.ListingIDs == nil {
		user.ListingIDs = []string{}
	}

	if _, err := a.collection().InsertOne(ctx, user); err != nil {
		return apperrors.NewInternalError("failed to create user", err)
	}
	return nil
}

// GetByID retrieves a user by ID
func (a *UserAdapter) GetByID(ctx context.Context, id string) (*entities.User, error) {
	user := &entities.User{}
	err := a.collection().FindOne(ctx, bson.M{"_id": id}).Decode(user)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user", err)
	}
	return user, nil
}

// GetByIDs retrieves multiple users by ID
func (a *UserAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.User, error) {
	if len(ids) == 0 {
		return []*entities.User{}, nil
	}

	cursor, err := a.collection().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query users", err)
	}

	var users []*entities.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, apperrors.NewInternalError("failed to decode users", err)
	}
	return users, nil
}

// CreditIncome atomically increments the user's accumulated income
func (a *UserAdapter) CreditIncome(ctx context.Context, userID string, amount int64) error {
	res, err := a.collection().UpdateOne(ctx, bson.M{"_id": userID},
		bson.M{
			"$inc": bson.M{"income": amount},
			"$set": bson.M{"updatedAt": time.Now().UTC()},
		})
	if err != nil {
		return apperrors.NewInternalError("failed to credit income", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("user with id %s not found", userID))
	}
	return nil
}

// AppendBooking appends a booking reference to the user's tenant bookings
func (a *UserAdapter) AppendBooking(ctx context.Context, userID, bookingID string) error {
	res, err := a.collection().UpdateOne(ctx, bson.M{"_id": userID},
		bson.M{
			"$push": bson.M{"bookings": bookingID},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		})
	if err != nil {
		return apperrors.NewInternalError("failed to append booking to user", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("user with id %s not found", userID))
	}
	return nil
}

// AppendListing appends a listing reference to the user's owned listings
func (a *UserAdapter) AppendListing(ctx context.Context, userID, listingID string) error {
	res, err := a.collection().UpdateOne(ctx, bson.M{"_id": userID},
		bson.M{
			"$push": bson.M{"listings": listingID},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		})
	if err != nil {
		return apperrors.NewInternalError("failed to append listing to user", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("user with id %s not found", userID))
	}
	return nil
}

// SetWallet attaches or detaches the user's connected payout account
func (a *UserAdapter) SetWallet(ctx context.Context, userID string, walletID *string) error {
	update := bson.M{"$set": bson.M{"walletId": walletID, "updatedAt": time.Now().UTC()}}
	if walletID == nil {
		update = bson.M{
			"$unset": bson.M{"walletId": ""},
			"$set":   bson.M{"updatedAt": time.Now().UTC()},
		}
	}

	res, err := a.collection().UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return apperrors.NewInternalError("failed to update wallet", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("user with id %s not found", userID))
	}
	return nil
}
