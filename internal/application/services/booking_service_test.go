package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tadeyina/stayhaven/internal/domain/entities"
	"github.com/tadeyina/stayhaven/internal/domain/providers"
	"github.com/tadeyina/stayhaven/internal/domain/repositories"
	apperrors "github.com/tadeyina/stayhaven/pkg/errors"
)

type bookingFixture struct {
	listings *MockListingRepository
	bookings *MockBookingRepository
	users    *MockUserRepository
	payments *MockPaymentProvider
	viewer   *MockViewerResolver
	events   *MockEventBus
	service  *BookingService
}

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		listings: new(MockListingRepository),
		bookings: new(MockBookingRepository),
		users:    new(MockUserRepository),
		payments: new(MockPaymentProvider),
		viewer:   new(MockViewerResolver),
		events:   new(MockEventBus),
	}
	f.service = NewBookingService(f.listings, f.bookings, f.users, f.payments, f.viewer, f.events, nil)
	return f
}

func walletID(id string) *string { return &id }

func testListing() *entities.Listing {
	return &entities.Listing{
		ID:            "listing-1",
		HostID:        "host-1",
		Price:         10000,
		BookingsIndex: entities.BookingsIndex{},
		IndexVersion:  4,
	}
}

func testTenant() *entities.User {
	return &entities.User{ID: "tenant-1"}
}

func testHost() *entities.User {
	return &entities.User{ID: "host-1", WalletID: walletID("acct_host")}
}

func TestBookingService_CreateBooking(t *testing.T) {
	ctx := context.Background()

	input := CreateBookingInput{
		ListingID: "listing-1",
		Source:    "tok_visa",
		CheckIn:   "2024-03-01",
		CheckOut:  "2024-03-03",
	}

	t.Run("books three nights and charges with the platform fee", func(t *testing.T) {
		f := newBookingFixture()
		f.viewer.On("ResolveViewer", mock.Anything).Return(testTenant(), nil)
		f.listings.On("GetByID", mock.Anything, "listing-1").Return(testListing(), nil)
		f.users.On("GetByID", mock.Anything, "host-1").Return(testHost(), nil)
		f.payments.On("Charge", mock.Anything, mock.MatchedBy(func(p providers.ChargeParams) bool {
			return p.Amount == 30000 &&
				p.ApplicationFee == 1500 &&
				p.Currency == "usd" &&
				p.Source == "tok_visa" &&
				p.DestinationAccount == "acct_host" &&
				p.IdempotencyKey != ""
		})).Return(&providers.ChargeResult{ChargeID: "ch_1"}, nil)
		f.bookings.On("Create", mock.Anything, mock.AnythingOfType("*entities.Booking")).Return(nil)
		f.users.On("CreditIncome", mock.Anything, "host-1", int64(30000)).Return(nil)
		f.users.On("AppendBooking", mock.Anything, "tenant-1", mock.AnythingOfType("string")).Return(nil)
		f.listings.On("CommitBooking", mock.Anything, mock.MatchedBy(func(c repositories.BookingCommit) bool {
			return c.ListingID == "listing-1" &&
				c.ExpectedVersion == 4 &&
				c.Index["2024"]["2"]["1"] &&
				c.Index["2024"]["2"]["2"] &&
				c.Index["2024"]["2"]["3"]
		})).Return(nil)
		f.events.On("Publish", mock.Anything, "bookings", mock.AnythingOfType("*entities.BookingEvent")).Return(nil)

		booking, err := f.service.CreateBooking(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, "listing-1", booking.ListingID)
		assert.Equal(t, "tenant-1", booking.TenantID)
		assert.Equal(t, int64(30000), booking.TotalPrice)
		assert.Equal(t, "ch_1", booking.ChargeID)
		f.payments.AssertExpectations(t)
		f.listings.AssertExpectations(t)
		f.users.AssertExpectations(t)
	})

	t.Run("rejects anonymous viewer before touching storage", func(t *testing.T) {
		f := newBookingFixture()
		f.viewer.On("ResolveViewer", mock.Anything).Return(nil, nil)

		_, err := f.service.CreateBooking(ctx, input)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthenticated))
		f.listings.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		f := newBookingFixture()
		f.viewer.On("ResolveViewer", mock.Anything).Return(testTenant(), nil)
		f.listings.On("GetByID", mock.Anything, "listing-1").Return(testListing(), nil)

		_, err := f.service.CreateBooking(ctx, CreateBookingInput{
			ListingID: "listing-1", Source: "tok_visa", CheckIn: "March 1", CheckOut: "2024-03-03",
		})

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("rejects check out before check in", func(t *testing.T) {
		f := newBookingFixture()
		f.viewer.On("ResolveViewer", mock.Anything).Return(testTenant(), nil)
		f.listings.On("GetByID", mock.Anything, "listing-1").Return(testListing(), nil)

		_, err := f.service.CreateBooking(ctx, CreateBookingInput{
			ListingID: "listing-1", Source: "tok_visa", CheckIn: "2024-03-03", CheckOut: "2024-03-01",
		})

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		f.payments.AssertNotCalled(t, "Charge", mock.Anything, mock.Anything)
	})

	t.Run("missing listing wins over bad dates", func(t *testing.T) {
		f := newBookingFixture()
		f.viewer.On("ResolveViewer", mock.Anything).Return(testTenant(), nil)
		f.listings.On("GetByID", mock.Anything, "listing-gone").
			Return(nil, apperrors.NewNotFoundError("listing can't be found"))

		_, err := f.service.CreateBooking(ctx, CreateBookingInput{
			ListingID: "listing-gone", Source: "tok_visa", CheckIn: "2024-03-03", CheckOut: "2024-03-01",
		})

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})

	t.Run("rejects booking own listing", func(t *testing.T) {
		f := newBookingFixture()
		f.viewer.On("ResolveViewer", mock.Anything).Return(&entities.User{ID: "host-1"}, nil)
		f.listings.On("GetByID", mock.Anything, "listing-1").Return(testListing(), nil)

		_, err := f.service.CreateBooking(ctx, input)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))
		f.payments.AssertNotCalled(t, "Charge", mock.Anything, mock.Anything)
	})

	t.Run("self booking wins over bad dates", func(t *testing.T) {
		f := newBookingFixture()
		f.viewer.On("ResolveViewer", mock.Anything).Return(&entities.User{ID: "host-1"}, nil)
		f.listings.On("GetByID", mock.Anything, "listing-1").Return(testListing(), nil)

		_, err := f.service.CreateBooking(ctx, CreateBookingInput{
			ListingID: "listing-1", Source: "tok_visa", CheckIn: "2024-03-03", CheckOut: "2024-03-01",
		})

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))
	})

	t.Run("date conflict reaches neither processor nor storage", func(t *testing.T) {
		f := newBookingFixture()
		listing := testListing()
		listing.BookingsIndex = entities.BookingsIndex{
			"2024": {"2": {"2": true}},
		}
		f.viewer.On("ResolveViewer", mock.Anything).Return(testTenant(), nil)
		f.listings.On("GetByID", mock.Anything, "listing-1").Return(listing, nil)

		_, err := f.service.CreateBooking(ctx, input)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeDateConflict))
		f.payments.AssertNotCalled(t, "Charge", mock.Anything, mock.Anything)
		f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("host without wallet blocks the booking before the charge", func(t *testing.T) {
		f := newBookingFixture()
		f.viewer.On("ResolveViewer", mock.Anything).Return(testTenant(), nil)
		f.listings.On("GetByID", mock.Anything, "listing-1").Return(testListing(), nil)
		f.users.On("GetByID", mock.Anything, "host-1").Return(&entities.User{ID: "host-1"}, nil)

		_, err := f.service.CreateBooking(ctx, input)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeHostUnpayable))
		f.payments.AssertNotCalled(t, "Charge", mock.Anything, mock.Anything)
	})

	t.Run("declined charge leaves storage untouched", func(t *testing.T) {
		f := newBookingFixture()
		f.viewer.On("ResolveViewer", mock.Anything).Return(testTenant(), nil)
		f.listings.On("GetByID", mock.Anything, "listing-1").Return(testListing(), nil)
		f.users.On("GetByID", mock.Anything, "host-1").Return(testHost(), nil)
		f.payments.On("Charge", mock.Anything, mock.Anything).
			Return(nil, apperrors.NewPaymentFailedError("card declined", nil))

		_, err := f.service.CreateBooking(ctx, input)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypePaymentFailed))
		f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.users.AssertNotCalled(t, "CreditIncome", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("retries the listing commit once after concurrent index change", func(t *testing.T) {
		f := newBookingFixture()
		listing := testListing()
		f.viewer.On("ResolveViewer", mock.Anything).Return(testTenant(), nil)
		f.listings.On("GetByID", mock.Anything, "listing-1").Return(listing, nil).Once()
		f.users.On("GetByID", mock.Anything, "host-1").Return(testHost(), nil)
		f.payments.On("Charge", mock.Anything, mock.Anything).
			Return(&providers.ChargeResult{ChargeID: "ch_1"}, nil).Once()
		f.bookings.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.users.On("CreditIncome", mock.Anything, "host-1", int64(30000)).Return(nil)
		f.users.On("AppendBooking", mock.Anything, "tenant-1", mock.Anything).Return(nil)

		// first commit loses the race, the reload carries a disjoint booking
		f.listings.On("CommitBooking", mock.Anything, mock.MatchedBy(func(c repositories.BookingCommit) bool {
			return c.ExpectedVersion == 4
		})).Return(apperrors.NewConflictError("listing bookings index changed concurrently")).Once()

		fresh := testListing()
		fresh.IndexVersion = 5
		fresh.BookingsIndex = entities.BookingsIndex{"2024": {"2": {"10": true}}}
		f.listings.On("GetByID", mock.Anything, "listing-1").Return(fresh, nil).Once()

		f.listings.On("CommitBooking", mock.Anything, mock.MatchedBy(func(c repositories.BookingCommit) bool {
			return c.ExpectedVersion == 5 &&
				c.Index["2024"]["2"]["1"] &&
				c.Index["2024"]["2"]["10"]
		})).Return(nil).Once()
		f.events.On("Publish", mock.Anything, "bookings", mock.Anything).Return(nil)

		booking, err := f.service.CreateBooking(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, "ch_1", booking.ChargeID)
		f.payments.AssertNumberOfCalls(t, "Charge", 1)
		f.listings.AssertExpectations(t)
	})

	t.Run("concurrent overlap after charge surfaces as persistence failure", func(t *testing.T) {
		f := newBookingFixture()
		f.viewer.On("ResolveViewer", mock.Anything).Return(testTenant(), nil)
		f.listings.On("GetByID", mock.Anything, "listing-1").Return(testListing(), nil).Once()
		f.users.On("GetByID", mock.Anything, "host-1").Return(testHost(), nil)
		f.payments.On("Charge", mock.Anything, mock.Anything).
			Return(&providers.ChargeResult{ChargeID: "ch_1"}, nil)
		f.bookings.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.users.On("CreditIncome", mock.Anything, "host-1", int64(30000)).Return(nil)
		f.users.On("AppendBooking", mock.Anything, "tenant-1", mock.Anything).Return(nil)
		f.listings.On("CommitBooking", mock.Anything, mock.Anything).
			Return(apperrors.NewConflictError("listing bookings index changed concurrently")).Once()

		overlapped := testListing()
		overlapped.IndexVersion = 5
		overlapped.BookingsIndex = entities.BookingsIndex{"2024": {"2": {"2": true}}}
		f.listings.On("GetByID", mock.Anything, "listing-1").Return(overlapped, nil).Once()

		_, err := f.service.CreateBooking(ctx, input)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypePersistenceFailed))
		f.payments.AssertNumberOfCalls(t, "Charge", 1)
	})

	t.Run("booking insert failure after charge is a persistence failure", func(t *testing.T) {
		f := newBookingFixture()
		f.viewer.On("ResolveViewer", mock.Anything).Return(testTenant(), nil)
		f.listings.On("GetByID", mock.Anything, "listing-1").Return(testListing(), nil)
		f.users.On("GetByID", mock.Anything, "host-1").Return(testHost(), nil)
		f.payments.On("Charge", mock.Anything, mock.Anything).
			Return(&providers.ChargeResult{ChargeID: "ch_1"}, nil)
		f.bookings.On("Create", mock.Anything, mock.Anything).Return(errors.New("write concern timeout"))

		_, err := f.service.CreateBooking(ctx, input)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypePersistenceFailed))
	})

	t.Run("event publish failure does not fail the booking", func(t *testing.T) {
		f := newBookingFixture()
		f.viewer.On("ResolveViewer", mock.Anything).Return(testTenant(), nil)
		f.listings.On("GetByID", mock.Anything, "listing-1").Return(testListing(), nil)
		f.users.On("GetByID", mock.Anything, "host-1").Return(testHost(), nil)
		f.payments.On("Charge", mock.Anything, mock.Anything).
			Return(&providers.ChargeResult{ChargeID: "ch_1"}, nil)
		f.bookings.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.users.On("CreditIncome", mock.Anything, "host-1", int64(30000)).Return(nil)
		f.users.On("AppendBooking", mock.Anything, "tenant-1", mock.Anything).Return(nil)
		f.listings.On("CommitBooking", mock.Anything, mock.Anything).Return(nil)
		f.events.On("Publish", mock.Anything, "bookings", mock.Anything).Return(errors.New("redis gone"))

		booking, err := f.service.CreateBooking(ctx, input)

		require.NoError(t, err)
		assert.NotEmpty(t, booking.ID)
	})
}

func TestApplicationFee(t *testing.T) {
	cases := []struct {
		amount int64
		fee    int64
	}{
		{30000, 1500},
		{100, 5},
		{30, 2},  // 1.5 rounds up
		{10, 1},  // 0.5 rounds up
		{9, 0},   // 0.45 rounds down
		{0, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.fee, applicationFee(tc.amount), "amount %d", tc.amount)
	}
}
