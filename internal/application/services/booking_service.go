package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tadeyina/stayhaven/internal/adapters/events"
	"github.com/tadeyina/stayhaven/internal/domain/entities"
	"github.com/tadeyina/stayhaven/internal/domain/providers"
	"github.com/tadeyina/stayhaven/internal/domain/repositories"
	"github.com/tadeyina/stayhaven/internal/infrastructure/observability"
	apperrors "github.com/tadeyina/stayhaven/pkg/errors"
)

const (
	chargeCurrency = "usd"

	// platformFeePercent of every charge is kept by the platform; the rest
	// is routed to the host's connected account.
	platformFeePercent = 5

	// maxCommitAttempts bounds re-commits after a concurrent index change.
	// The charge is never repeated; only the final listing write races.
	maxCommitAttempts = 3
)

// CreateBookingInput carries the tenant's booking request. CheckIn and
// CheckOut are inclusive ISO calendar dates.
type CreateBookingInput struct {
	ListingID string
	Source    string
	CheckIn   string
	CheckOut  string
}

// BookingService orchestrates the booking transaction: conflict detection,
// payment capture and the persistence writes that record the booking.
type BookingService struct {
	listings repositories.ListingRepository
	bookings repositories.BookingRepository
	users    repositories.UserRepository
	payments providers.PaymentProvider
	viewer   providers.ViewerResolver
	events   providers.EventBus
	metrics  *observability.Metrics
}

// NewBookingService creates a new booking service
func NewBookingService(
	listings repositories.ListingRepository,
	bookings repositories.BookingRepository,
	users repositories.UserRepository,
	payments providers.PaymentProvider,
	viewer providers.ViewerResolver,
	events providers.EventBus,
	metrics *observability.Metrics,
) *BookingService {
	return &BookingService{
		listings: listings,
		bookings: bookings,
		users:    users,
		payments: payments,
		viewer:   viewer,
		events:   events,
		metrics:  metrics,
	}
}

// applicationFee is the platform's cut, rounded half-up.
func applicationFee(amount int64) int64 {
	return (amount*platformFeePercent + 50) / 100
}

// CreateBooking books a listing for the viewer. The steps run in a fixed
// order so that nothing is charged before every precondition holds, and the
// charge happens exactly once: the only step that can race with concurrent
// bookings is the final listing commit, which is retried without touching
// the processor again.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*entities.Booking, error) {
	ctx, span := observability.StartSpan(ctx, "BookingService.CreateBooking")
	defer span.End()

	logger := observability.LoggerFromContext(ctx)

	tenant, err := s.viewer.ResolveViewer(ctx)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, apperrors.NewUnauthenticatedError("viewer cannot be found")
	}

	listing, err := s.listings.GetByID(ctx, input.ListingID)
	if err != nil {
		return nil, err
	}
	if listing.HostID == tenant.ID {
		return nil, apperrors.NewForbiddenError("viewer can't book own listing")
	}

	checkIn, err := entities.ParseDate(input.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := entities.ParseDate(input.CheckOut)
	if err != nil {
		return nil, err
	}
	if checkOut.Before(checkIn) {
		return nil, apperrors.NewValidationError("check out date can't be before check in date")
	}

	updatedIndex, err := entities.ResolveIndex(listing.BookingsIndex, checkIn, checkOut)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeDateConflict) && s.metrics != nil {
			s.metrics.DateConflicts.Add(ctx, 1)
		}
		return nil, err
	}

	totalPrice := listing.Price * entities.InclusiveNights(checkIn, checkOut)

	host, err := s.users.GetByID(ctx, listing.HostID)
	if err != nil {
		return nil, err
	}
	if !host.HasWallet() {
		return nil, apperrors.NewHostUnpayableError("the host either can't be found or is not connected with the payment processor")
	}

	booking := &entities.Booking{
		ID:             uuid.NewString(),
		ListingID:      listing.ID,
		TenantID:       tenant.ID,
		CheckIn:        input.CheckIn,
		CheckOut:       input.CheckOut,
		TotalPrice:     totalPrice,
		IdempotencyKey: uuid.NewString(),
		CreatedAt:      time.Now().UTC(),
	}

	chargeStart := time.Now()
	charge, err := s.payments.Charge(ctx, providers.ChargeParams{
		Amount:             totalPrice,
		Currency:           chargeCurrency,
		Source:             input.Source,
		DestinationAccount: *host.WalletID,
		ApplicationFee:     applicationFee(totalPrice),
		IdempotencyKey:     booking.IdempotencyKey,
	})
	if s.metrics != nil {
		s.metrics.ChargeDuration.Record(ctx, time.Since(chargeStart).Seconds())
	}
	if err != nil {
		return nil, err
	}
	booking.ChargeID = charge.ChargeID

	// Everything past this point has a captured charge behind it. Failures
	// are persistence failures and must be logged with the charge reference
	// so reconciliation can find them.
	if err := s.bookings.Create(ctx, booking); err != nil {
		logger.Error().Err(err).
			Str("charge_id", charge.ChargeID).
			Str("listing_id", listing.ID).
			Msg("charge captured but booking insert failed")
		return nil, apperrors.NewPersistenceFailedError("failed to record booking after charge", err)
	}

	if err := s.users.CreditIncome(ctx, host.ID, totalPrice); err != nil {
		logger.Error().Err(err).
			Str("charge_id", charge.ChargeID).
			Str("booking_id", booking.ID).
			Msg("failed to credit host income")
		return nil, apperrors.NewPersistenceFailedError("failed to credit host income after charge", err)
	}

	if err := s.users.AppendBooking(ctx, tenant.ID, booking.ID); err != nil {
		logger.Error().Err(err).
			Str("charge_id", charge.ChargeID).
			Str("booking_id", booking.ID).
			Msg("failed to append booking to tenant")
		return nil, apperrors.NewPersistenceFailedError("failed to record tenant booking after charge", err)
	}

	if err := s.commitListing(ctx, listing, booking, updatedIndex, checkIn, checkOut); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.BookingCount.Add(ctx, 1)
	}

	if err := s.events.Publish(ctx, events.BookingsChannel, &entities.BookingEvent{
		ID:         uuid.NewString(),
		Type:       entities.BookingEventCreated,
		BookingID:  booking.ID,
		ListingID:  listing.ID,
		TenantID:   tenant.ID,
		OccurredAt: time.Now().UTC(),
	}); err != nil {
		logger.Warn().Err(err).Str("booking_id", booking.ID).Msg("failed to publish booking event")
	}

	return booking, nil
}

// commitListing writes the updated bookings index and booking reference onto
// the listing. A version miss means another booking landed between our read
// and this write: reload, re-resolve against the fresh index and try again.
// If the fresh index now conflicts, the tenant has already been charged for
// days that just got taken, which is a persistence failure, not a run-of-the-
// mill date conflict.
func (s *BookingService) commitListing(
	ctx context.Context,
	listing *entities.Listing,
	booking *entities.Booking,
	index entities.BookingsIndex,
	checkIn, checkOut time.Time,
) error {
	logger := observability.LoggerFromContext(ctx)

	version := listing.IndexVersion
	for attempt := 1; attempt <= maxCommitAttempts; attempt++ {
		err := s.listings.CommitBooking(ctx, repositories.BookingCommit{
			ListingID:       listing.ID,
			BookingID:       booking.ID,
			Index:           index,
			ExpectedVersion: version,
		})
		if err == nil {
			return nil
		}
		if !apperrors.IsType(err, apperrors.ErrorTypeConflict) {
			logger.Error().Err(err).
				Str("charge_id", booking.ChargeID).
				Str("booking_id", booking.ID).
				Msg("charge captured but listing commit failed")
			return apperrors.NewPersistenceFailedError("failed to update listing after charge", err)
		}

		fresh, err := s.listings.GetByID(ctx, listing.ID)
		if err != nil {
			logger.Error().Err(err).
				Str("charge_id", booking.ChargeID).
				Str("booking_id", booking.ID).
				Msg("charge captured but listing reload failed")
			return apperrors.NewPersistenceFailedError("failed to update listing after charge", err)
		}

		index, err = entities.ResolveIndex(fresh.BookingsIndex, checkIn, checkOut)
		if err != nil {
			logger.Error().Err(err).
				Str("charge_id", booking.ChargeID).
				Str("booking_id", booking.ID).
				Str("listing_id", listing.ID).
				Msg("booked dates were taken concurrently after charge")
			return apperrors.NewPersistenceFailedError("booked dates were taken concurrently", err)
		}
		version = fresh.IndexVersion
	}

	logger.Error().
		Str("charge_id", booking.ChargeID).
		Str("booking_id", booking.ID).
		Int("attempts", maxCommitAttempts).
		Msg("listing commit contention not resolved")
	return apperrors.NewPersistenceFailedError("failed to update listing after repeated contention", nil)
}

// GetByID retrieves a booking
func (s *BookingService) GetByID(ctx context.Context, id string) (*entities.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

// ListByTenant retrieves the bookings a user has made, newest first
func (s *BookingService) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entities.Booking, error) {
	return s.bookings.ListByTenant(ctx, tenantID, limit, offset)
}

// ListByListing retrieves the bookings of a listing, newest first
func (s *BookingService) ListByListing(ctx context.Context, listingID string, limit, offset int) ([]*entities.Booking, error) {
	return s.bookings.ListByListing(ctx, listingID, limit, offset)
}
