// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives
// validated data from the handler, calls repository methods, maps
// repository failures onto HTTP errors and keeps the response cache
// consistent with writes.
package service

import (
	"context"

	"github.com/deppfellow/pizza-restaurants/internal/lib/cache"
	"github.com/deppfellow/pizza-restaurants/internal/repository"
	"github.com/deppfellow/pizza-restaurants/internal/server"
	"github.com/rs/zerolog"
)

type Services struct {
	Restaurant      *RestaurantService
	Pizza           *PizzaService
	RestaurantPizza *RestaurantPizzaService
	Seed            *SeedService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	c := s.Cache
	if c == nil {
		c = cache.NopCache{}
	}

	return &Services{
		Restaurant:      NewRestaurantService(s, repos.Restaurants, c),
		Pizza:           NewPizzaService(s, repos.Pizzas, c),
		RestaurantPizza: NewRestaurantPizzaService(s, repos.RestaurantPizzas, c),
		Seed:            NewSeedService(s, repos, c),
	}, nil
}

// cached wraps the response cache. Cache failures are logged and treated
// as misses so reads always fall through to the database.
type cached struct {
	cache  cache.Cache
	logger *zerolog.Logger
}

func (c cached) log(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return c.logger
}

// noRefill marks a read whose generation is unknown; its result is not
// written back.
const noRefill = -1

// read returns the generation a refill of key must be written under.
func (c cached) read(ctx context.Context, key string, dst any) (int64, bool) {
	gen, hit, err := c.cache.GetJSON(ctx, key, dst)
	if err != nil {
		c.log(ctx).Warn().Err(err).Str("cache_key", key).Msg("cache read failed")
		return noRefill, false
	}
	return gen, hit
}

func (c cached) write(ctx context.Context, key string, gen int64, value any) {
	if gen == noRefill {
		return
	}
	if err := c.cache.SetJSON(ctx, key, gen, value); err != nil {
		c.log(ctx).Warn().Err(err).Str("cache_key", key).Msg("cache write failed")
	}
}

func (c cached) invalidate(ctx context.Context, keys ...string) {
	if err := c.cache.Invalidate(ctx, keys...); err != nil {
		c.log(ctx).Warn().Err(err).Strs("cache_keys", keys).Msg("cache invalidation failed")
	}
}
