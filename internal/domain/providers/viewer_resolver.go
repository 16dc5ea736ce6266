package providers

import (
	"context"

	"github.com/tadeyina/stayhaven/internal/domain/entities"
)

// ViewerResolver resolves the identity making a request. It returns
// (nil, nil) when no identity is present; everything past identity-or-none
// (sessions, login flows) lives outside this service.
type ViewerResolver interface {
	ResolveViewer(ctx context.Context) (*entities.User, error)
}
