package repository

import (
	"github.com/deppfellow/pizza-restaurants/internal/config"
	"github.com/deppfellow/pizza-restaurants/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Restaurants      RestaurantRepository
	Pizzas           PizzaRepository
	RestaurantPizzas RestaurantPizzaRepository
}

// NewRepositories wires every repository to the store matching the
// server's database driver.
func NewRepositories(s *server.Server) *Repositories {
	var store Store
	switch s.DB.Driver {
	case config.DriverPostgres:
		store = NewPostgresStore(s.DB.Pool)
	default:
		store = NewSQLiteStore(s.DB.SQL)
	}
	return FromStore(store)
}

// FromStore exposes a single store through every repository field.
func FromStore(store Store) *Repositories {
	return &Repositories{
		Restaurants:      store,
		Pizzas:           store,
		RestaurantPizzas: store,
	}
}
