package loaders

import (
	"context"
	"fmt"

	"github.com/graph-gophers/dataloader/v7"

	"github.com/tadeyina/stayhaven/internal/domain/entities"
	"github.com/tadeyina/stayhaven/internal/domain/repositories"
)

type ctxKey string

const loadersKey ctxKey = "dataloaders"

// Loaders contains the per-request dataloaders
type Loaders struct {
	ListingLoader *dataloader.Loader[string, *entities.Listing]
	UserLoader    *dataloader.Loader[string, *entities.User]
}

// NewLoaders creates a new instance of Loaders
func NewLoaders(listingRepo repositories.ListingRepository, userRepo repositories.UserRepository) *Loaders {
	return &Loaders{
		ListingLoader: dataloader.NewBatchedLoader(func(ctx context.Context, keys []string) []*dataloader.Result[*entities.Listing] {
			results := make([]*dataloader.Result[*entities.Listing], len(keys))
			listings, err := listingRepo.GetByIDs(ctx, keys)

			listingMap := make(map[string]*entities.Listing)
			if err == nil {
				for _, l := range listings {
					listingMap[l.ID] = l
				}
			}

			for i, key := range keys {
				if err != nil {
					results[i] = &dataloader.Result[*entities.Listing]{Error: err}
				} else if l, ok := listingMap[key]; ok {
					results[i] = &dataloader.Result[*entities.Listing]{Data: l}
				} else {
					results[i] = &dataloader.Result[*entities.Listing]{Error: fmt.Errorf("listing %s not found", key)}
				}
			}
			return results
		}),
		UserLoader: dataloader.NewBatchedLoader(func(ctx context.Context, keys []string) []*dataloader.Result[*entities.User] {
			results := make([]*dataloader.Result[*entities.User], len(keys))
			users, err := userRepo.GetByIDs(ctx, keys)

			userMap := make(map[string]*entities.User)
			if err == nil {
				for _, u := range users {
					userMap[u.ID] = u
				}
			}

			for i, key := range keys {
				if err != nil {
					results[i] = &dataloader.Result[*entities.User]{Error: err}
				} else if u, ok := userMap[key]; ok {
					results[i] = &dataloader.Result[*entities.User]{Data: u}
				} else {
					results[i] = &dataloader.Result[*entities.User]{Error: fmt.Errorf("user %s not found", key)}
				}
			}
			return results
		}),
	}
}

// For returns the request-scoped loaders. The router attaches them to every
// request context; reaching For without that middleware is a wiring error.
func For(ctx context.Context) *Loaders {
	l, ok := ctx.Value(loadersKey).(*Loaders)
	if !ok {
		panic("loaders: context has no request loaders attached")
	}
	return l
}

// WithLoaders returns a new context with the loaders attached
func WithLoaders(ctx context.Context, loaders *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, loaders)
}
