// Package repository handles all interactions with the database.
//
// Queries are built once with squirrel and executed by one of two stores:
// PostgresStore (pgx + pgxscan) or SQLiteStore (database/sql + sqlscan).
// Both satisfy the same interfaces, so services never see the driver.
package repository

import (
	"context"
	"errors"

	"github.com/deppfellow/pizza-restaurants/internal/model"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrPizzaNotFound      = errors.New("pizza not found")
	ErrInvalidPrice       = errors.New("price out of range")
)

type RestaurantRepository interface {
	ListRestaurants(ctx context.Context) ([]model.Restaurant, error)
	// GetRestaurantByID loads the restaurant with its associations and
	// their pizza.
	GetRestaurantByID(ctx context.Context, id int64) (*model.Restaurant, error)
	CreateRestaurant(ctx context.Context, in model.CreateRestaurantInput) (*model.Restaurant, error)
	// DeleteRestaurant removes the restaurant and every association that
	// references it in one transaction.
	DeleteRestaurant(ctx context.Context, id int64) error
	CountRestaurants(ctx context.Context) (int64, error)
}

type PizzaRepository interface {
	ListPizzas(ctx context.Context) ([]model.Pizza, error)
	GetPizzaByID(ctx context.Context, id int64) (*model.Pizza, error)
	CreatePizza(ctx context.Context, in model.CreatePizzaInput) (*model.Pizza, error)
}

type RestaurantPizzaRepository interface {
	// CreateRestaurantPizza checks both referenced rows and the price, then
	// inserts the association. The returned value has Restaurant and Pizza
	// populated.
	CreateRestaurantPizza(ctx context.Context, rp model.RestaurantPizza) (*model.RestaurantPizza, error)
}

// Store is implemented by every backend.
type Store interface {
	RestaurantRepository
	PizzaRepository
	RestaurantPizzaRepository
}
