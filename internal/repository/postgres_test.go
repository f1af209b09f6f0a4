package repository

import (
	"errors"
	"testing"

	"github.com/deppfellow/pizza-restaurants/internal/model"
	"github.com/pashagolub/pgxmock/v4"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	selectRestaurantByID = "SELECT id, name, address FROM restaurants WHERE id = \\$1"
	selectPizzaByID      = "SELECT id, name, ingredients FROM pizzas WHERE id = \\$1"
)

func newMockStore(t *testing.T) (pgxmock.PgxPoolIface, *PostgresStore) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)
	return mockPool, NewPostgresStore(mockPool)
}

func TestPostgresStore_ListRestaurants(t *testing.T) {
	t.Run("Should scan every row", func(t *testing.T) {
		mockPool, store := newMockStore(t)
		rows := mockPool.NewRows([]string{"id", "name", "address"}).
			AddRow(int64(1), "Dominion", "Main St").
			AddRow(int64(2), "Sottocasa", "Court St")
		mockPool.ExpectQuery("SELECT id, name, address FROM restaurants ORDER BY id").
			WillReturnRows(rows)

		restaurants, err := store.ListRestaurants(t.Context())
		require.NoError(t, err)
		require.Len(t, restaurants, 2)
		assert.Equal(t, "Sottocasa", restaurants[1].Name)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should wrap query errors with a stack trace", func(t *testing.T) {
		mockPool, store := newMockStore(t)
		cause := errors.New("connection reset")
		mockPool.ExpectQuery("SELECT (.+) FROM restaurants").
			WillReturnError(cause)

		_, err := store.ListRestaurants(t.Context())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "scanning restaurants")
		assert.ErrorIs(t, err, cause)

		var traced interface{ StackTrace() pkgerrors.StackTrace }
		assert.ErrorAs(t, err, &traced)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestPostgresStore_GetRestaurantByID(t *testing.T) {
	t.Run("Should load the restaurant with its associations", func(t *testing.T) {
		mockPool, store := newMockStore(t)
		mockPool.ExpectQuery(selectRestaurantByID).
			WithArgs(int64(1)).
			WillReturnRows(mockPool.NewRows([]string{"id", "name", "address"}).
				AddRow(int64(1), "Dominion", "Main St"))
		mockPool.ExpectQuery("SELECT rp.id, (.+) FROM restaurant_pizzas rp JOIN pizzas p ON p.id = rp.pizza_id WHERE rp.restaurant_id = \\$1").
			WithArgs(int64(1)).
			WillReturnRows(mockPool.NewRows([]string{"id", "price", "restaurant_id", "pizza_id", "pizza_name", "pizza_ingredients"}).
				AddRow(int64(3), 12, int64(1), int64(2), "Pepperoni", "Dough, Pepperoni"))

		restaurant, err := store.GetRestaurantByID(t.Context(), 1)
		require.NoError(t, err)
		require.Len(t, restaurant.RestaurantPizzas, 1)
		rp := restaurant.RestaurantPizzas[0]
		assert.Equal(t, 12, rp.Price)
		require.NotNil(t, rp.Pizza)
		assert.Equal(t, "Pepperoni", rp.Pizza.Name)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should return ErrRestaurantNotFound when no row matches", func(t *testing.T) {
		mockPool, store := newMockStore(t)
		mockPool.ExpectQuery(selectRestaurantByID).
			WithArgs(int64(9)).
			WillReturnRows(mockPool.NewRows([]string{"id", "name", "address"}))

		_, err := store.GetRestaurantByID(t.Context(), 9)
		assert.ErrorIs(t, err, ErrRestaurantNotFound)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestPostgresStore_DeleteRestaurant(t *testing.T) {
	t.Run("Should delete associations before the restaurant and commit", func(t *testing.T) {
		mockPool, store := newMockStore(t)
		mockPool.ExpectBegin()
		mockPool.ExpectQuery(selectRestaurantByID).
			WithArgs(int64(1)).
			WillReturnRows(mockPool.NewRows([]string{"id", "name", "address"}).
				AddRow(int64(1), "Dominion", "Main St"))
		mockPool.ExpectExec("DELETE FROM restaurant_pizzas WHERE restaurant_id = \\$1").
			WithArgs(int64(1)).
			WillReturnResult(pgxmock.NewResult("DELETE", 2))
		mockPool.ExpectExec("DELETE FROM restaurants WHERE id = \\$1").
			WithArgs(int64(1)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mockPool.ExpectCommit()

		require.NoError(t, store.DeleteRestaurant(t.Context(), 1))
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should roll back when the restaurant does not exist", func(t *testing.T) {
		mockPool, store := newMockStore(t)
		mockPool.ExpectBegin()
		mockPool.ExpectQuery(selectRestaurantByID).
			WithArgs(int64(5)).
			WillReturnRows(mockPool.NewRows([]string{"id", "name", "address"}))
		mockPool.ExpectRollback()

		err := store.DeleteRestaurant(t.Context(), 5)
		assert.ErrorIs(t, err, ErrRestaurantNotFound)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should roll back when deleting associations fails", func(t *testing.T) {
		mockPool, store := newMockStore(t)
		mockPool.ExpectBegin()
		mockPool.ExpectQuery(selectRestaurantByID).
			WithArgs(int64(1)).
			WillReturnRows(mockPool.NewRows([]string{"id", "name", "address"}).
				AddRow(int64(1), "Dominion", "Main St"))
		mockPool.ExpectExec("DELETE FROM restaurant_pizzas").
			WithArgs(int64(1)).
			WillReturnError(errors.New("deadlock detected"))
		mockPool.ExpectRollback()

		err := store.DeleteRestaurant(t.Context(), 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "deleting restaurant pizzas")
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestPostgresStore_CreateRestaurantPizza(t *testing.T) {
	expectLookups := func(mockPool pgxmock.PgxPoolIface) {
		mockPool.ExpectBegin()
		mockPool.ExpectQuery(selectRestaurantByID).
			WithArgs(int64(1)).
			WillReturnRows(mockPool.NewRows([]string{"id", "name", "address"}).
				AddRow(int64(1), "Dominion", "Main St"))
		mockPool.ExpectQuery(selectPizzaByID).
			WithArgs(int64(2)).
			WillReturnRows(mockPool.NewRows([]string{"id", "name", "ingredients"}).
				AddRow(int64(2), "Cheese", "Dough, Cheese"))
	}

	t.Run("Should insert and return the association with both sides", func(t *testing.T) {
		mockPool, store := newMockStore(t)
		expectLookups(mockPool)
		mockPool.ExpectQuery("INSERT INTO restaurant_pizzas \\(price,restaurant_id,pizza_id\\) VALUES \\(\\$1,\\$2,\\$3\\) RETURNING id").
			WithArgs(5, int64(1), int64(2)).
			WillReturnRows(mockPool.NewRows([]string{"id"}).AddRow(int64(4)))
		mockPool.ExpectCommit()

		rp, err := store.CreateRestaurantPizza(t.Context(), model.RestaurantPizza{
			Price: 5, RestaurantID: 1, PizzaID: 2,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(4), rp.ID)
		assert.Equal(t, "Dominion", rp.Restaurant.Name)
		assert.Equal(t, "Cheese", rp.Pizza.Name)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should roll back on an out of range price", func(t *testing.T) {
		mockPool, store := newMockStore(t)
		expectLookups(mockPool)
		mockPool.ExpectRollback()

		_, err := store.CreateRestaurantPizza(t.Context(), model.RestaurantPizza{
			Price: 31, RestaurantID: 1, PizzaID: 2,
		})
		assert.ErrorIs(t, err, ErrInvalidPrice)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should roll back when the pizza does not exist", func(t *testing.T) {
		mockPool, store := newMockStore(t)
		mockPool.ExpectBegin()
		mockPool.ExpectQuery(selectRestaurantByID).
			WithArgs(int64(1)).
			WillReturnRows(mockPool.NewRows([]string{"id", "name", "address"}).
				AddRow(int64(1), "Dominion", "Main St"))
		mockPool.ExpectQuery(selectPizzaByID).
			WithArgs(int64(2)).
			WillReturnRows(mockPool.NewRows([]string{"id", "name", "ingredients"}))
		mockPool.ExpectRollback()

		_, err := store.CreateRestaurantPizza(t.Context(), model.RestaurantPizza{
			Price: 5, RestaurantID: 1, PizzaID: 2,
		})
		assert.ErrorIs(t, err, ErrPizzaNotFound)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}
