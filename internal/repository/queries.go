package repository

import (
	"github.com/Masterminds/squirrel"
	"github.com/deppfellow/pizza-restaurants/internal/model"
)

var (
	restaurantColumns = []string{"id", "name", "address"}
	pizzaColumns      = []string{"id", "name", "ingredients"}
)

// restaurantPizzaRow is an association joined with its pizza.
type restaurantPizzaRow struct {
	ID               int64  `db:"id"`
	Price            int    `db:"price"`
	RestaurantID     int64  `db:"restaurant_id"`
	PizzaID          int64  `db:"pizza_id"`
	PizzaName        string `db:"pizza_name"`
	PizzaIngredients string `db:"pizza_ingredients"`
}

func (r restaurantPizzaRow) toModel() model.RestaurantPizza {
	return model.RestaurantPizza{
		ID:           r.ID,
		Price:        r.Price,
		RestaurantID: r.RestaurantID,
		PizzaID:      r.PizzaID,
		Pizza: &model.Pizza{
			ID:          r.PizzaID,
			Name:        r.PizzaName,
			Ingredients: r.PizzaIngredients,
		},
	}
}

func toRestaurantPizzas(rows []restaurantPizzaRow) []model.RestaurantPizza {
	out := make([]model.RestaurantPizza, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out
}

// queries builds every statement the stores run. Only the placeholder
// format differs between dialects.
type queries struct {
	sb squirrel.StatementBuilderType
}

func newQueries(format squirrel.PlaceholderFormat) queries {
	return queries{sb: squirrel.StatementBuilder.PlaceholderFormat(format)}
}

func (q queries) listRestaurants() squirrel.SelectBuilder {
	return q.sb.Select(restaurantColumns...).From("restaurants").OrderBy("id")
}

func (q queries) restaurantByID(id int64) squirrel.SelectBuilder {
	return q.sb.Select(restaurantColumns...).From("restaurants").Where(squirrel.Eq{"id": id})
}

func (q queries) countRestaurants() squirrel.SelectBuilder {
	return q.sb.Select("COUNT(*)").From("restaurants")
}

func (q queries) restaurantPizzasByRestaurant(restaurantID int64) squirrel.SelectBuilder {
	return q.sb.Select(
		"rp.id",
		"rp.price",
		"rp.restaurant_id",
		"rp.pizza_id",
		"p.name AS pizza_name",
		"p.ingredients AS pizza_ingredients",
	).
		From("restaurant_pizzas rp").
		Join("pizzas p ON p.id = rp.pizza_id").
		Where(squirrel.Eq{"rp.restaurant_id": restaurantID}).
		OrderBy("rp.id")
}

func (q queries) insertRestaurant(in model.CreateRestaurantInput) squirrel.InsertBuilder {
	return q.sb.Insert("restaurants").
		Columns("name", "address").
		Values(in.Name, in.Address).
		Suffix("RETURNING id")
}

func (q queries) deleteRestaurantPizzasByRestaurant(restaurantID int64) squirrel.DeleteBuilder {
	return q.sb.Delete("restaurant_pizzas").Where(squirrel.Eq{"restaurant_id": restaurantID})
}

func (q queries) deleteRestaurant(id int64) squirrel.DeleteBuilder {
	return q.sb.Delete("restaurants").Where(squirrel.Eq{"id": id})
}

func (q queries) listPizzas() squirrel.SelectBuilder {
	return q.sb.Select(pizzaColumns...).From("pizzas").OrderBy("id")
}

func (q queries) pizzaByID(id int64) squirrel.SelectBuilder {
	return q.sb.Select(pizzaColumns...).From("pizzas").Where(squirrel.Eq{"id": id})
}

func (q queries) insertPizza(in model.CreatePizzaInput) squirrel.InsertBuilder {
	return q.sb.Insert("pizzas").
		Columns("name", "ingredients").
		Values(in.Name, in.Ingredients).
		Suffix("RETURNING id")
}

func (q queries) insertRestaurantPizza(rp model.RestaurantPizza) squirrel.InsertBuilder {
	return q.sb.Insert("restaurant_pizzas").
		Columns("price", "restaurant_id", "pizza_id").
		Values(rp.Price, rp.RestaurantID, rp.PizzaID).
		Suffix("RETURNING id")
}
