package model

import "github.com/deppfellow/pizza-restaurants/internal/validation"

// Pizza is a row of the pizzas table.
type Pizza struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Ingredients string `db:"ingredients"`
}

// PizzaSummary is the pizza as it appears in listings and nested objects.
type PizzaSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Ingredients string `json:"ingredients"`
}

func (p Pizza) Summary() PizzaSummary {
	return PizzaSummary{ID: p.ID, Name: p.Name, Ingredients: p.Ingredients}
}

// PizzaSummaries serializes a pizza listing.
func PizzaSummaries(pizzas []Pizza) []PizzaSummary {
	out := make([]PizzaSummary, 0, len(pizzas))
	for _, p := range pizzas {
		out = append(out, p.Summary())
	}
	return out
}

type ListPizzasRequest struct{}

func (r *ListPizzasRequest) Validate() error {
	return nil
}

// CreatePizzaInput is used by the seed command.
type CreatePizzaInput struct {
	Name        string `json:"name" validate:"required,max=255"`
	Ingredients string `json:"ingredients" validate:"max=1024"`
}

func (r *CreatePizzaInput) Validate() error {
	return validation.Struct(r)
}
