package auth

import (
	"context"
	"encoding/json"

	"github.com/cristalhq/jwt/v4"

	"github.com/tadeyina/stayhaven/internal/domain/entities"
	"github.com/tadeyina/stayhaven/internal/domain/providers"
	"github.com/tadeyina/stayhaven/internal/domain/repositories"
	"github.com/tadeyina/stayhaven/internal/infrastructure/observability"
	apperrors "github.com/tadeyina/stayhaven/pkg/errors"
)

type ctxKey string

const tokenKey ctxKey = "viewer-token"

// WithToken stashes the raw viewer token on the context
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFromContext returns the raw viewer token, if any
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

// ViewerResolver resolves the requesting viewer from a signed token. It is
// the whole of the authorization collaborator: a viewer identity or none.
type ViewerResolver struct {
	verifier jwt.Verifier
	users    repositories.UserRepository
}

// NewViewerResolver creates a viewer resolver verifying HS256 tokens
func NewViewerResolver(secret string, users repositories.UserRepository) (*ViewerResolver, error) {
	verifier, err := jwt.NewVerifierHS(jwt.HS256, []byte(secret))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build token verifier", err)
	}
	return &ViewerResolver{verifier: verifier, users: users}, nil
}

var _ providers.ViewerResolver = (*ViewerResolver)(nil)

// ResolveViewer returns the user behind the request's token, or (nil, nil)
// when no usable identity is present. Malformed or stale tokens resolve to
// none rather than an error; the caller decides whether anonymity is fatal.
func (r *ViewerResolver) ResolveViewer(ctx context.Context) (*entities.User, error) {
	raw := TokenFromContext(ctx)
	if raw == "" {
		return nil, nil
	}

	token, err := jwt.Parse([]byte(raw), r.verifier)
	if err != nil {
		observability.LoggerFromContext(ctx).Debug().Err(err).Msg("rejected viewer token")
		return nil, nil
	}

	var claims jwt.RegisteredClaims
	if err := json.Unmarshal(token.Claims(), &claims); err != nil || claims.Subject == "" {
		return nil, nil
	}

	viewer, err := r.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return viewer, nil
}
