package model

import (
	"github.com/deppfellow/pizza-restaurants/internal/errs"
	"github.com/deppfellow/pizza-restaurants/internal/validation"
)

// InvalidRestaurantPizzaCode is logged when a create request fails binding
// or validation.
const InvalidRestaurantPizzaCode = "VALIDATION_FAILED"

// Price bounds for a restaurant's pizza, inclusive.
const (
	MinPrice = 1
	MaxPrice = 30
)

// ValidPrice reports whether price lies within [MinPrice, MaxPrice].
func ValidPrice(price int) bool {
	return price >= MinPrice && price <= MaxPrice
}

// RestaurantPizza links one restaurant to one pizza with a price.
// Restaurant and Pizza are populated by lookups that join them.
type RestaurantPizza struct {
	ID           int64       `db:"id"`
	Price        int         `db:"price"`
	RestaurantID int64       `db:"restaurant_id"`
	PizzaID      int64       `db:"pizza_id"`
	Restaurant   *Restaurant `db:"-"`
	Pizza        *Pizza      `db:"-"`
}

// RestaurantPizzaWithPizza is an association nested inside a restaurant.
type RestaurantPizzaWithPizza struct {
	ID           int64        `json:"id"`
	Price        int          `json:"price"`
	RestaurantID int64        `json:"restaurant_id"`
	PizzaID      int64        `json:"pizza_id"`
	Pizza        PizzaSummary `json:"pizza"`
}

// RestaurantPizzaDetail is a created association with both sides expanded.
// The nested restaurant is a summary so the expansion never cycles.
type RestaurantPizzaDetail struct {
	ID           int64             `json:"id"`
	Price        int               `json:"price"`
	RestaurantID int64             `json:"restaurant_id"`
	PizzaID      int64             `json:"pizza_id"`
	Pizza        PizzaSummary      `json:"pizza"`
	Restaurant   RestaurantSummary `json:"restaurant"`
}

func (rp RestaurantPizza) WithPizza() RestaurantPizzaWithPizza {
	out := RestaurantPizzaWithPizza{
		ID:           rp.ID,
		Price:        rp.Price,
		RestaurantID: rp.RestaurantID,
		PizzaID:      rp.PizzaID,
	}
	if rp.Pizza != nil {
		out.Pizza = rp.Pizza.Summary()
	}
	return out
}

func (rp RestaurantPizza) Detail() RestaurantPizzaDetail {
	out := RestaurantPizzaDetail{
		ID:           rp.ID,
		Price:        rp.Price,
		RestaurantID: rp.RestaurantID,
		PizzaID:      rp.PizzaID,
	}
	if rp.Pizza != nil {
		out.Pizza = rp.Pizza.Summary()
	}
	if rp.Restaurant != nil {
		out.Restaurant = rp.Restaurant.Summary()
	}
	return out
}

// CreateRestaurantPizzaRequest is the POST /restaurant_pizzas body. Fields
// are pointers so a missing key is distinguishable from a zero value.
type CreateRestaurantPizzaRequest struct {
	Price        *int   `json:"price" validate:"required,min=1,max=30"`
	PizzaID      *int64 `json:"pizza_id" validate:"required,gt=0"`
	RestaurantID *int64 `json:"restaurant_id" validate:"required,gt=0"`
}

func (r *CreateRestaurantPizzaRequest) Validate() error {
	return validation.Struct(r)
}

// Reject answers every malformed or invalid body with the same generic
// payload a failed write gets; the field details only reach the logs.
func (r *CreateRestaurantPizzaRequest) Reject(error) error {
	return errs.NewPersistenceValidationError(InvalidRestaurantPizzaCode)
}

// RestaurantPizza converts a validated request into a record ready to insert.
func (r *CreateRestaurantPizzaRequest) RestaurantPizza() RestaurantPizza {
	var rp RestaurantPizza
	if r.Price != nil {
		rp.Price = *r.Price
	}
	if r.PizzaID != nil {
		rp.PizzaID = *r.PizzaID
	}
	if r.RestaurantID != nil {
		rp.RestaurantID = *r.RestaurantID
	}
	return rp
}
