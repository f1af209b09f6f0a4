// Package model defines the persisted records, the request payloads bound
// by handlers and the response shapes they are serialized into.
//
// Response shapes differ per endpoint: list endpoints never
// expand associations, the restaurant detail expands associations with
// their pizza, and a created association expands both sides.
package model

import (
	"github.com/deppfellow/pizza-restaurants/internal/errs"
	"github.com/deppfellow/pizza-restaurants/internal/validation"
)

const RestaurantNotFoundMessage = "Restaurant not found"

// RestaurantNotFound is the 404 for any id that names no restaurant.
func RestaurantNotFound() *errs.HTTPError {
	code := "RESTAURANT_NOT_FOUND"
	return errs.NewNotFoundError(RestaurantNotFoundMessage, true, &code)
}

// Restaurant is a row of the restaurants table. RestaurantPizzas is only
// populated by detail lookups.
type Restaurant struct {
	ID               int64             `db:"id"`
	Name             string            `db:"name"`
	Address          string            `db:"address"`
	RestaurantPizzas []RestaurantPizza `db:"-"`
}

// RestaurantSummary is the restaurant without its associations.
type RestaurantSummary struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// RestaurantDetail is the restaurant with every association and its pizza.
type RestaurantDetail struct {
	ID               int64                      `json:"id"`
	Name             string                     `json:"name"`
	Address          string                     `json:"address"`
	RestaurantPizzas []RestaurantPizzaWithPizza `json:"restaurant_pizzas"`
}

func (r Restaurant) Summary() RestaurantSummary {
	return RestaurantSummary{ID: r.ID, Name: r.Name, Address: r.Address}
}

// Detail always renders restaurant_pizzas as an array, even when empty.
func (r Restaurant) Detail() RestaurantDetail {
	associations := make([]RestaurantPizzaWithPizza, 0, len(r.RestaurantPizzas))
	for _, rp := range r.RestaurantPizzas {
		associations = append(associations, rp.WithPizza())
	}

	return RestaurantDetail{
		ID:               r.ID,
		Name:             r.Name,
		Address:          r.Address,
		RestaurantPizzas: associations,
	}
}

// RestaurantSummaries serializes a restaurant listing.
func RestaurantSummaries(restaurants []Restaurant) []RestaurantSummary {
	out := make([]RestaurantSummary, 0, len(restaurants))
	for _, r := range restaurants {
		out = append(out, r.Summary())
	}
	return out
}

// ListRestaurantsRequest carries no input.
type ListRestaurantsRequest struct{}

func (r *ListRestaurantsRequest) Validate() error {
	return nil
}

// RestaurantIDRequest identifies a restaurant by its path parameter. Ids
// that match no row, including zero, negative and non-numeric ones, are
// not found rather than invalid.
type RestaurantIDRequest struct {
	ID int64 `param:"id"`
}

func (r *RestaurantIDRequest) Validate() error {
	return validation.Struct(r)
}

func (r *RestaurantIDRequest) Reject(error) error {
	return RestaurantNotFound()
}

// CreateRestaurantInput is used by the seed command.
type CreateRestaurantInput struct {
	Name    string `json:"name" validate:"required,max=255"`
	Address string `json:"address" validate:"max=255"`
}

func (r *CreateRestaurantInput) Validate() error {
	return validation.Struct(r)
}
