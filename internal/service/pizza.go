package service

import (
	"context"

	"github.com/deppfellow/pizza-restaurants/internal/lib/cache"
	"github.com/deppfellow/pizza-restaurants/internal/model"
	"github.com/deppfellow/pizza-restaurants/internal/repository"
	"github.com/deppfellow/pizza-restaurants/internal/server"
	"github.com/pkg/errors"
)

type PizzaService struct {
	cached
	repo repository.PizzaRepository
}

func NewPizzaService(s *server.Server, repo repository.PizzaRepository, c cache.Cache) *PizzaService {
	return &PizzaService{
		cached: cached{cache: c, logger: s.Logger},
		repo:   repo,
	}
}

func (s *PizzaService) ListPizzas(ctx context.Context) ([]model.PizzaSummary, error) {
	var out []model.PizzaSummary
	gen, hit := s.read(ctx, cache.PizzaListKey, &out)
	if hit {
		return out, nil
	}

	pizzas, err := s.repo.ListPizzas(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list pizzas")
	}

	out = model.PizzaSummaries(pizzas)
	s.write(ctx, cache.PizzaListKey, gen, out)
	return out, nil
}
