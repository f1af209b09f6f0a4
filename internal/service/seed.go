package service

import (
	"context"

	"github.com/deppfellow/pizza-restaurants/internal/lib/cache"
	"github.com/deppfellow/pizza-restaurants/internal/model"
	"github.com/deppfellow/pizza-restaurants/internal/repository"
	"github.com/deppfellow/pizza-restaurants/internal/server"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

var (
	seedRestaurants = []model.CreateRestaurantInput{
		{Name: "Karen's Pizza Shack", Address: "address1"},
		{Name: "Sanjay's Pizza", Address: "address2"},
		{Name: "Kiki's Pizza", Address: "address3"},
	}

	seedPizzas = []model.CreatePizzaInput{
		{Name: "Emma", Ingredients: "Dough, Tomato Sauce, Cheese"},
		{Name: "Geri", Ingredients: "Dough, Tomato Sauce, Cheese, Pepperoni"},
		{Name: "Melanie", Ingredients: "Dough, Sauce, Ricotta, Red peppers, Mustard"},
	}

	// seedPrices[i][j] is the price restaurant i charges for pizza j.
	// Zero means the restaurant does not offer it.
	seedPrices = [][]int{
		{1, 4, 0},
		{5, 0, 9},
		{0, 12, 30},
	}
)

// SeedService fills an empty database with sample data.
type SeedService struct {
	cached
	logger *zerolog.Logger
	repos  *repository.Repositories
}

func NewSeedService(s *server.Server, repos *repository.Repositories, c cache.Cache) *SeedService {
	return &SeedService{
		cached: cached{cache: c, logger: s.Logger},
		logger: s.Logger,
		repos:  repos,
	}
}

// Seed inserts the sample data unless restaurants already exist. It
// reports whether anything was written.
func (s *SeedService) Seed(ctx context.Context) (bool, error) {
	count, err := s.repos.Restaurants.CountRestaurants(ctx)
	if err != nil {
		return false, errors.Wrap(err, "count restaurants")
	}
	if count > 0 {
		s.logger.Info().Int64("restaurants", count).Msg("database already seeded, skipping")
		return false, nil
	}

	restaurants := make([]*model.Restaurant, 0, len(seedRestaurants))
	for _, in := range seedRestaurants {
		if err := in.Validate(); err != nil {
			return false, errors.Wrapf(err, "invalid seed restaurant %q", in.Name)
		}
		r, err := s.repos.Restaurants.CreateRestaurant(ctx, in)
		if err != nil {
			return false, errors.Wrapf(err, "create restaurant %q", in.Name)
		}
		restaurants = append(restaurants, r)
	}

	pizzas := make([]*model.Pizza, 0, len(seedPizzas))
	for _, in := range seedPizzas {
		if err := in.Validate(); err != nil {
			return false, errors.Wrapf(err, "invalid seed pizza %q", in.Name)
		}
		p, err := s.repos.Pizzas.CreatePizza(ctx, in)
		if err != nil {
			return false, errors.Wrapf(err, "create pizza %q", in.Name)
		}
		pizzas = append(pizzas, p)
	}

	associations := 0
	for i, row := range seedPrices {
		for j, price := range row {
			if price == 0 {
				continue
			}
			_, err := s.repos.RestaurantPizzas.CreateRestaurantPizza(ctx, model.RestaurantPizza{
				Price:        price,
				RestaurantID: restaurants[i].ID,
				PizzaID:      pizzas[j].ID,
			})
			if err != nil {
				return false, errors.Wrap(err, "create restaurant pizza")
			}
			associations++
		}
	}

	keys := []string{cache.RestaurantListKey, cache.PizzaListKey}
	for _, r := range restaurants {
		keys = append(keys, cache.RestaurantKey(r.ID))
	}
	s.invalidate(ctx, keys...)

	s.logger.Info().
		Int("restaurants", len(restaurants)).
		Int("pizzas", len(pizzas)).
		Int("restaurant_pizzas", associations).
		Msg("database seeded")

	return true, nil
}
