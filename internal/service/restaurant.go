package service

import (
	"context"

	"github.com/deppfellow/pizza-restaurants/internal/lib/cache"
	"github.com/deppfellow/pizza-restaurants/internal/model"
	"github.com/deppfellow/pizza-restaurants/internal/repository"
	"github.com/deppfellow/pizza-restaurants/internal/server"
	"github.com/pkg/errors"
)

type RestaurantService struct {
	cached
	repo repository.RestaurantRepository
}

func NewRestaurantService(s *server.Server, repo repository.RestaurantRepository, c cache.Cache) *RestaurantService {
	return &RestaurantService{
		cached: cached{cache: c, logger: s.Logger},
		repo:   repo,
	}
}

func (s *RestaurantService) ListRestaurants(ctx context.Context) ([]model.RestaurantSummary, error) {
	var out []model.RestaurantSummary
	gen, hit := s.read(ctx, cache.RestaurantListKey, &out)
	if hit {
		return out, nil
	}

	restaurants, err := s.repo.ListRestaurants(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list restaurants")
	}

	out = model.RestaurantSummaries(restaurants)
	s.write(ctx, cache.RestaurantListKey, gen, out)
	return out, nil
}

func (s *RestaurantService) GetRestaurant(ctx context.Context, id int64) (*model.RestaurantDetail, error) {
	key := cache.RestaurantKey(id)

	var detail model.RestaurantDetail
	gen, hit := s.read(ctx, key, &detail)
	if hit {
		return &detail, nil
	}

	restaurant, err := s.repo.GetRestaurantByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return nil, model.RestaurantNotFound()
		}
		return nil, errors.Wrapf(err, "get restaurant %d", id)
	}

	detail = restaurant.Detail()
	s.write(ctx, key, gen, detail)
	return &detail, nil
}

func (s *RestaurantService) DeleteRestaurant(ctx context.Context, id int64) error {
	if err := s.repo.DeleteRestaurant(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return model.RestaurantNotFound()
		}
		return errors.Wrapf(err, "delete restaurant %d", id)
	}

	s.invalidate(ctx, cache.RestaurantListKey, cache.RestaurantKey(id))
	return nil
}
