package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/deppfellow/pizza-restaurants/internal/model"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// DBTX is the subset of pgxpool.Pool the store needs. pgxmock pools
// satisfy it as well.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PostgresStore implements Store on a pgx pool.
type PostgresStore struct {
	db DBTX
	q  queries
}

var _ Store = (*PostgresStore)(nil)

func NewPostgresStore(db DBTX) *PostgresStore {
	return &PostgresStore{db: db, q: newQueries(squirrel.Dollar)}
}

func (s *PostgresStore) withTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				zerolog.Ctx(ctx).Warn().Err(rbErr).Msg("transaction rollback failed after panic")
			}
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				zerolog.Ctx(ctx).Warn().Err(rbErr).Msg("transaction rollback failed")
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()
	err = fn(tx)
	return err
}

func (s *PostgresStore) ListRestaurants(ctx context.Context) ([]model.Restaurant, error) {
	query, args, err := s.q.listRestaurants().ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}

	restaurants := []model.Restaurant{}
	if err := pgxscan.Select(ctx, s.db, &restaurants, query, args...); err != nil {
		return nil, errors.Wrap(err, "scanning restaurants")
	}
	return restaurants, nil
}

func (s *PostgresStore) getRestaurant(ctx context.Context, q pgxscan.Querier, id int64) (*model.Restaurant, error) {
	query, args, err := s.q.restaurantByID(id).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}

	var restaurant model.Restaurant
	if err := pgxscan.Get(ctx, q, &restaurant, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, ErrRestaurantNotFound
		}
		return nil, errors.Wrap(err, "scanning restaurant")
	}
	return &restaurant, nil
}

func (s *PostgresStore) GetRestaurantByID(ctx context.Context, id int64) (*model.Restaurant, error) {
	restaurant, err := s.getRestaurant(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	query, args, err := s.q.restaurantPizzasByRestaurant(id).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}

	var rows []restaurantPizzaRow
	if err := pgxscan.Select(ctx, s.db, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "scanning restaurant pizzas")
	}
	restaurant.RestaurantPizzas = toRestaurantPizzas(rows)

	return restaurant, nil
}

func (s *PostgresStore) CreateRestaurant(ctx context.Context, in model.CreateRestaurantInput) (*model.Restaurant, error) {
	query, args, err := s.q.insertRestaurant(in).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}

	restaurant := model.Restaurant{Name: in.Name, Address: in.Address}
	if err := s.db.QueryRow(ctx, query, args...).Scan(&restaurant.ID); err != nil {
		return nil, errors.Wrap(err, "inserting restaurant")
	}
	return &restaurant, nil
}

func (s *PostgresStore) DeleteRestaurant(ctx context.Context, id int64) error {
	return s.withTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := s.getRestaurant(ctx, tx, id); err != nil {
			return err
		}

		query, args, err := s.q.deleteRestaurantPizzasByRestaurant(id).ToSql()
		if err != nil {
			return errors.Wrap(err, "building query")
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return errors.Wrap(err, "deleting restaurant pizzas")
		}

		query, args, err = s.q.deleteRestaurant(id).ToSql()
		if err != nil {
			return errors.Wrap(err, "building query")
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return errors.Wrap(err, "deleting restaurant")
		}
		return nil
	})
}

func (s *PostgresStore) CountRestaurants(ctx context.Context) (int64, error) {
	query, args, err := s.q.countRestaurants().ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "building query")
	}

	var count int64
	if err := s.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "counting restaurants")
	}
	return count, nil
}

func (s *PostgresStore) ListPizzas(ctx context.Context) ([]model.Pizza, error) {
	query, args, err := s.q.listPizzas().ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}

	pizzas := []model.Pizza{}
	if err := pgxscan.Select(ctx, s.db, &pizzas, query, args...); err != nil {
		return nil, errors.Wrap(err, "scanning pizzas")
	}
	return pizzas, nil
}

func (s *PostgresStore) getPizza(ctx context.Context, q pgxscan.Querier, id int64) (*model.Pizza, error) {
	query, args, err := s.q.pizzaByID(id).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}

	var pizza model.Pizza
	if err := pgxscan.Get(ctx, q, &pizza, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, ErrPizzaNotFound
		}
		return nil, errors.Wrap(err, "scanning pizza")
	}
	return &pizza, nil
}

func (s *PostgresStore) GetPizzaByID(ctx context.Context, id int64) (*model.Pizza, error) {
	return s.getPizza(ctx, s.db, id)
}

func (s *PostgresStore) CreatePizza(ctx context.Context, in model.CreatePizzaInput) (*model.Pizza, error) {
	query, args, err := s.q.insertPizza(in).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}

	pizza := model.Pizza{Name: in.Name, Ingredients: in.Ingredients}
	if err := s.db.QueryRow(ctx, query, args...).Scan(&pizza.ID); err != nil {
		return nil, errors.Wrap(err, "inserting pizza")
	}
	return &pizza, nil
}

func (s *PostgresStore) CreateRestaurantPizza(ctx context.Context, rp model.RestaurantPizza) (*model.RestaurantPizza, error) {
	created := rp
	err := s.withTransaction(ctx, func(tx pgx.Tx) error {
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
		if err := tx.QueryRow(ctx, query, args...).Scan(&created.ID); err != nil {
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
