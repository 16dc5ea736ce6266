package services

import (
	"context"

	"github.com/tadeyina/stayhaven/internal/domain/entities"
	"github.com/tadeyina/stayhaven/internal/domain/providers"
	"github.com/tadeyina/stayhaven/internal/domain/repositories"
	"github.com/tadeyina/stayhaven/internal/infrastructure/observability"
	apperrors "github.com/tadeyina/stayhaven/pkg/errors"
)

// UserService handles user retrieval and payout wallet lifecycle
type UserService struct {
	users    repositories.UserRepository
	payments providers.PaymentProvider
	viewer   providers.ViewerResolver
}

// NewUserService creates a new user service
func NewUserService(
	users repositories.UserRepository,
	payments providers.PaymentProvider,
	viewer providers.ViewerResolver,
) *UserService {
	return &UserService{users: users, payments: payments, viewer: viewer}
}

// GetByID retrieves a user
func (s *UserService) GetByID(ctx context.Context, id string) (*entities.User, error) {
	return s.users.GetByID(ctx, id)
}

// ConnectWallet exchanges a processor onboarding code and attaches the
// resulting connected account to the viewer
func (s *UserService) ConnectWallet(ctx context.Context, code string) (*entities.User, error) {
	ctx, span := observability.StartSpan(ctx, "UserService.ConnectWallet")
	defer span.End()

	user, err := s.viewer.ResolveViewer(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewUnauthenticatedError("viewer cannot be found")
	}

	accountID, err := s.payments.Connect(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := s.users.SetWallet(ctx, user.ID, &accountID); err != nil {
		return nil, err
	}

	user.WalletID = &accountID
	return user, nil
}

// DisconnectWallet detaches the viewer's connected account. The host keeps
// their accumulated income; they just stop being bookable.
func (s *UserService) DisconnectWallet(ctx context.Context) (*entities.User, error) {
	ctx, span := observability.StartSpan(ctx, "UserService.DisconnectWallet")
	defer span.End()

	user, err := s.viewer.ResolveViewer(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewUnauthenticatedError("viewer cannot be found")
	}

	if err := s.users.SetWallet(ctx, user.ID, nil); err != nil {
		return nil, err
	}

	user.WalletID = nil
	return user, nil
}
