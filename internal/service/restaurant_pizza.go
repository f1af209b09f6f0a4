package service

import (
	"context"

	"github.com/deppfellow/pizza-restaurants/internal/errs"
	"github.com/deppfellow/pizza-restaurants/internal/lib/cache"
	"github.com/deppfellow/pizza-restaurants/internal/model"
	"github.com/deppfellow/pizza-restaurants/internal/repository"
	"github.com/deppfellow/pizza-restaurants/internal/server"
	"github.com/deppfellow/pizza-restaurants/internal/sqlerr"
	"github.com/pkg/errors"
)

type RestaurantPizzaService struct {
	cached
	repo repository.RestaurantPizzaRepository
}

func NewRestaurantPizzaService(s *server.Server, repo repository.RestaurantPizzaRepository, c cache.Cache) *RestaurantPizzaService {
	return &RestaurantPizzaService{
		cached: cached{cache: c, logger: s.Logger},
		repo:   repo,
	}
}

// CreateRestaurantPizza persists a new association. Every failure comes
// back as the generic 400 validation error; the cause is only logged.
func (s *RestaurantPizzaService) CreateRestaurantPizza(ctx context.Context, req *model.CreateRestaurantPizzaRequest) (*model.RestaurantPizzaDetail, error) {
	created, err := s.repo.CreateRestaurantPizza(ctx, req.RestaurantPizza())
	if err != nil {
		code := persistenceCode(err)
		s.log(ctx).Warn().
			Err(errors.WithStack(err)).
			Str("error_code", code).
			Msg("restaurant pizza rejected")
		return nil, errs.NewPersistenceValidationError(code)
	}

	// The restaurant detail now has one more association.
	s.invalidate(ctx, cache.RestaurantKey(created.RestaurantID))

	detail := created.Detail()
	return &detail, nil
}

func persistenceCode(err error) string {
	switch {
	case errors.Is(err, repository.ErrRestaurantNotFound):
		return "RESTAURANT_NOT_FOUND"
	case errors.Is(err, repository.ErrPizzaNotFound):
		return "PIZZA_NOT_FOUND"
	case errors.Is(err, repository.ErrInvalidPrice):
		return "RESTAURANT_PIZZA_INVALID"
	default:
		return sqlerr.AppCode(err, "RESTAURANT_PIZZA_ERROR")
	}
}
