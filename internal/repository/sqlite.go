package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/deppfellow/pizza-restaurants/internal/model"
	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// sqlQuerier is satisfied by both *sql.DB and *sql.Tx.
type sqlQuerier interface {
	sqlscan.Querier
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLiteStore implements Store on a database/sql handle opened with the
// modernc.org/sqlite driver. Foreign keys must be enabled on the handle.
type SQLiteStore struct {
	db *sql.DB
	q  queries
}

var _ Store = (*SQLiteStore)(nil)

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, q: newQueries(squirrel.Question)}
}

func (s *SQLiteStore) withTransaction(ctx context.Context, fn func(*sql.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				zerolog.Ctx(ctx).Warn().Err(rbErr).Msg("transaction rollback failed after panic")
			}
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				zerolog.Ctx(ctx).Warn().Err(rbErr).Msg("transaction rollback failed")
			}
		} else {
			err = tx.Commit()
		}
	}()
	err = fn(tx)
	return err
}

func (s *SQLiteStore) ListRestaurants(ctx context.Context) ([]model.Restaurant, error) {
	query, args, err := s.q.listRestaurants().ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}

	restaurants := []model.Restaurant{}
	if err := sqlscan.Select(ctx, s.db, &restaurants, query, args...); err != nil {
		return nil, errors.Wrap(err, "scanning restaurants")
	}
	return restaurants, nil
}

func (s *SQLiteStore) getRestaurant(ctx context.Context, q sqlQuerier, id int64) (*model.Restaurant, error) {
	query, args, err := s.q.restaurantByID(id).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}

	var restaurant model.Restaurant
	if err := sqlscan.Get(ctx, q, &restaurant, query, args...); err != nil {
		if sqlscan.NotFound(err) {
			return nil, ErrRestaurantNotFound
		}
		return nil, errors.Wrap(err, "scanning restaurant")
	}
	return &restaurant, nil
}

func (s *SQLiteStore) GetRestaurantByID(ctx context.Context, id int64) (*model.Restaurant, error) {
	restaurant, err := s.getRestaurant(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	query, args, err := s.q.restaurantPizzasByRestaurant(id).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}

	var rows []restaurantPizzaRow
	if err := sqlscan.Select(ctx, s.db, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "scanning restaurant pizzas")
	}
	restaurant.RestaurantPizzas = toRestaurantPizzas(rows)

	return restaurant, nil
}

func (s *SQLiteStore) CreateRestaurant(ctx context.Context, in model.CreateRestaurantInput) (*model.Restaurant, error) {
	query, args, err := s.q.insertRestaurant(in).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}

	restaurant := model.Restaurant{Name: in.Name, Address: in.Address}
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&restaurant.ID); err != nil {
		return nil, errors.Wrap(err, "inserting restaurant")
	}
	return &restaurant, nil
}

func (s *SQLiteStore) DeleteRestaurant(ctx context.Context, id int64) error {
	return s.withTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := s.getRestaurant(ctx, tx, id); err != nil {
			return err
		}

		query, args, err := s.q.deleteRestaurantPizzasByRestaurant(id).ToSql()
		if err != nil {
			return errors.Wrap(err, "building query")
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return errors.Wrap(err, "deleting restaurant pizzas")
		}

		query, args, err = s.q.deleteRestaurant(id).ToSql()
		if err != nil {
			return errors.Wrap(err, "building query")
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return errors.Wrap(err, "deleting restaurant")
		}
		return nil
	})
}

func (s *SQLiteStore) CountRestaurants(ctx context.Context) (int64, error) {
	query, args, err := s.q.countRestaurants().ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "building query")
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "counting restaurants")
	}
	return count, nil
}

func (s *SQLiteStore) ListPizzas(ctx context.Context) ([]model.Pizza, error) {
	query, args, err := s.q.listPizzas().ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}

	pizzas := []model.Pizza{}
	if err := sqlscan.Select(ctx, s.db, &pizzas, query, args...); err != nil {
		return nil, errors.Wrap(err, "scanning pizzas")
	}
	return pizzas, nil
}

func (s *SQLiteStore) getPizza(ctx context.Context, q sqlQuerier, id int64) (*model.Pizza, error) {
	query, args, err := s.q.pizzaByID(id).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}

	var pizza model.Pizza
	if err := sqlscan.Get(ctx, q, &pizza, query, args...); err != nil {
		if sqlscan.NotFound(err) {
			return nil, ErrPizzaNotFound
		}
		return nil, errors.Wrap(err, "scanning pizza")
	}
	return &pizza, nil
}

func (s *SQLiteStore) GetPizzaByID(ctx context.Context, id int64) (*model.Pizza, error) {
	return s.getPizza(ctx, s.db, id)
}

func (s *SQLiteStore) CreatePizza(ctx context.Context, in model.CreatePizzaInput) (*model.Pizza, error) {
	query, args, err := s.q.insertPizza(in).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}

	pizza := model.Pizza{Name: in.Name, Ingredients: in.Ingredients}
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&pizza.ID); err != nil {
		return nil, errors.Wrap(err, "inserting pizza")
	}
	return &pizza, nil
}

func (s *SQLiteStore) CreateRestaurantPizza(ctx context.Context, rp model.RestaurantPizza) (*model.RestaurantPizza, error) {
	created := rp
	err := s.withTransaction(ctx, func(tx *sql.Tx) error {
		restaurant, err := s.getRestaurant(ctx, tx, rp.RestaurantID)
		if err != nil {
			return err
		}
		pizza, err := s.getPizza(ctx, tx, rp.PizzaID)
		if err != nil {
			return err
		}
		if !model.ValidPrice(rp.Price) {
			return ErrInvalidPrice
		}

		query, args, err := s.q.insertRestaurantPizza(rp).ToSql()
		if err != nil {
			return errors.Wrap(err, "building query")
		}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&created.ID); err != nil {
			return errors.Wrap(err, "inserting restaurant pizza")
		}

		created.Restaurant = restaurant
		created.Pizza = pizza
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}
