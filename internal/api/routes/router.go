package routes

import (
	"net/http"

	graphqlgo "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"github.com/tadeyina/stayhaven/internal/api/middleware"
	"github.com/tadeyina/stayhaven/internal/domain/repositories"
	"github.com/tadeyina/stayhaven/internal/graphql/loaders"
	"github.com/tadeyina/stayhaven/internal/infrastructure/observability"
)

// Router wires the GraphQL endpoint and its middleware chain
type Router struct {
	mux         *http.ServeMux
	schema      *graphqlgo.Schema
	listingRepo repositories.ListingRepository
	userRepo    repositories.UserRepository
	cookieName  string
	metrics     *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	schema *graphqlgo.Schema,
	listingRepo repositories.ListingRepository,
	userRepo repositories.UserRepository,
	cookieName string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:         http.NewServeMux(),
		schema:      schema,
		listingRepo: listingRepo,
		userRepo:    userRepo,
		cookieName:  cookieName,
		metrics:     metrics,
	}
}

// withLoaders attaches fresh per-request dataloaders; batching must never
// leak across requests
func (r *Router) withLoaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx := loaders.WithLoaders(req.Context(), loaders.NewLoaders(r.listingRepo, r.userRepo))
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	r.mux.Handle("POST /api/graphql", r.withLoaders(&relay.Handler{Schema: r.schema}))

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so error responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.AuthMiddleware(r.cookieName)(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
