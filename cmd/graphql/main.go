package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	graphqlgo "github.com/graph-gophers/graphql-go"

	"github.com/tadeyina/stayhaven/internal/adapters/cache"
	"github.com/tadeyina/stayhaven/internal/adapters/database"
	"github.com/tadeyina/stayhaven/internal/adapters/events"
	"github.com/tadeyina/stayhaven/internal/adapters/providers/payment"
	"github.com/tadeyina/stayhaven/internal/adapters/search"
	"github.com/tadeyina/stayhaven/internal/api/routes"
	"github.com/tadeyina/stayhaven/internal/application/services"
	"github.com/tadeyina/stayhaven/internal/domain/providers"
	"github.com/tadeyina/stayhaven/internal/domain/repositories"
	"github.com/tadeyina/stayhaven/internal/graphql"
	"github.com/tadeyina/stayhaven/internal/graphql/resolvers"
	"github.com/tadeyina/stayhaven/internal/infrastructure/auth"
	mongoclient "github.com/tadeyina/stayhaven/internal/infrastructure/clients/mongo"
	redisclient "github.com/tadeyina/stayhaven/internal/infrastructure/clients/redis"
	typesenseclient "github.com/tadeyina/stayhaven/internal/infrastructure/clients/typesense"
	"github.com/tadeyina/stayhaven/internal/infrastructure/observability"
	"github.com/tadeyina/stayhaven/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("APP_ENV"))
	logger := observability.GetLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// OpenTelemetry export is optional; the server runs fine without a collector
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := shutdown(shutdownCtx); err != nil {
					logger.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	mongoClient, err := mongoclient.NewClient(&cfg.Mongo)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize MongoDB client")
	}
	defer func() {
		if err := mongoClient.Close(); err != nil {
			logger.Error().Err(err).Msg("error closing MongoDB client")
		}
	}()
	logger.Info().Msg("MongoDB client initialized")

	// Redis backs the cache and the event bus; both degrade gracefully
	redisClient, err := redisclient.NewClient(&cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to initialize Redis client, continuing without cache")
		redisClient = nil
	} else {
		defer redisClient.Close()
		logger.Info().Msg("Redis client initialized")
	}

	typesenseClient, err := typesenseclient.NewClient(&cfg.Typesense)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to initialize Typesense client, location search degraded")
		typesenseClient = nil
	} else {
		logger.Info().Msg("Typesense client initialized")
	}

	baseListingAdapter := database.NewListingAdapter(mongoClient)
	userAdapter := database.NewUserAdapter(mongoClient)
	bookingAdapter := database.NewBookingAdapter(mongoClient)

	var cacheProvider providers.CacheProvider
	var listingAdapter repositories.ListingRepository = baseListingAdapter
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
		listingAdapter = database.NewCachedListingAdapter(baseListingAdapter, cacheProvider)
		logger.Info().Msg("listing adapter wrapped with caching layer")
	}

	var eventBus providers.EventBus = events.NewNoopEventBus()
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		defer func() {
			if err := eventBus.Close(); err != nil {
				logger.Error().Err(err).Msg("error closing event bus")
			}
		}()
	}

	var searchIndex providers.SearchIndex = search.NewNoopSearchIndex()
	if typesenseClient != nil {
		adapter := search.NewTypesenseAdapter(typesenseClient)
		if err := adapter.InitSchema(ctx); err != nil {
			logger.Warn().Err(err).Msg("failed to ensure search schema")
		}
		searchIndex = adapter
	}

	viewerResolver, err := auth.NewViewerResolver(cfg.Auth.TokenSecret, userAdapter)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize viewer resolver")
	}

	paymentProvider := payment.NewPaymentProvider(cfg.Stripe)

	bookingService := services.NewBookingService(
		listingAdapter, bookingAdapter, userAdapter,
		paymentProvider, viewerResolver, eventBus, metrics)
	listingService := services.NewListingService(listingAdapter, userAdapter, viewerResolver, searchIndex)
	userService := services.NewUserService(userAdapter, paymentProvider, viewerResolver)

	// peer instances hear about bookings over the bus and drop stale cache entries
	if cacheProvider != nil {
		invalidator := services.NewCacheInvalidationService(eventBus, cacheProvider)
		go func() {
			if err := invalidator.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error().Err(err).Msg("cache invalidation consumer stopped")
			}
		}()
	}

	resolver := resolvers.NewResolver(bookingService, listingService, userService, viewerResolver)
	schema, err := graphqlgo.ParseSchema(graphql.Schema, resolver)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse GraphQL schema")
	}

	router := routes.NewRouter(schema, listingAdapter, userAdapter, cfg.Auth.CookieName, metrics)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("GraphQL server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}
	logger.Info().Msg("server stopped")
}
