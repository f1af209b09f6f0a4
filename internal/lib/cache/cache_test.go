package cache

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func newTestCache(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, *RedisCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisCache(client, ttl)
}

func TestRedisCache(t *testing.T) {
	t.Run("Should report a miss for an absent key", func(t *testing.T) {
		_, c := newTestCache(t, time.Minute)

		var got entry
		gen, hit, err := c.GetJSON(t.Context(), RestaurantListKey, &got)
		require.NoError(t, err)
		assert.False(t, hit)
		assert.Zero(t, gen)
	})

	t.Run("Should round trip a stored value", func(t *testing.T) {
		_, c := newTestCache(t, time.Minute)
		ctx := t.Context()

		var got []entry
		gen, _, err := c.GetJSON(ctx, RestaurantKey(3), &got)
		require.NoError(t, err)
		require.NoError(t, c.SetJSON(ctx, RestaurantKey(3), gen, []entry{{ID: 3, Name: "Dominion"}}))

		_, hit, err := c.GetJSON(ctx, RestaurantKey(3), &got)
		require.NoError(t, err)
		assert.True(t, hit)
		assert.Equal(t, []entry{{ID: 3, Name: "Dominion"}}, got)
	})

	t.Run("Should expire entries after the ttl", func(t *testing.T) {
		mr, c := newTestCache(t, time.Minute)
		ctx := t.Context()

		require.NoError(t, c.SetJSON(ctx, PizzaListKey, 0, []entry{}))
		mr.FastForward(2 * time.Minute)

		var got []entry
		_, hit, err := c.GetJSON(ctx, PizzaListKey, &got)
		require.NoError(t, err)
		assert.False(t, hit)
	})

	t.Run("Should hide invalidated values", func(t *testing.T) {
		mr, c := newTestCache(t, time.Minute)
		ctx := t.Context()
		require.NoError(t, c.SetJSON(ctx, RestaurantListKey, 0, []entry{}))
		require.NoError(t, c.SetJSON(ctx, RestaurantKey(1), 0, entry{ID: 1}))

		require.NoError(t, c.Invalidate(ctx, RestaurantListKey, RestaurantKey(1)))

		assert.False(t, mr.Exists(ValueKey(RestaurantListKey, 0)))
		assert.False(t, mr.Exists(ValueKey(RestaurantKey(1), 0)))

		var got entry
		gen, hit, err := c.GetJSON(ctx, RestaurantKey(1), &got)
		require.NoError(t, err)
		assert.False(t, hit)
		assert.Equal(t, int64(1), gen)
	})

	t.Run("Should ignore a refill computed before an invalidation", func(t *testing.T) {
		_, c := newTestCache(t, time.Minute)
		ctx := t.Context()

		// A reader misses and loads the restaurant from the database.
		var got entry
		staleGen, hit, err := c.GetJSON(ctx, RestaurantKey(7), &got)
		require.NoError(t, err)
		require.False(t, hit)

		// A delete commits and invalidates before the reader writes back.
		require.NoError(t, c.Invalidate(ctx, RestaurantKey(7)))
		require.NoError(t, c.SetJSON(ctx, RestaurantKey(7), staleGen, entry{ID: 7, Name: "Gone"}))

		_, hit, err = c.GetJSON(ctx, RestaurantKey(7), &got)
		require.NoError(t, err)
		assert.False(t, hit)
	})

	t.Run("Should surface decode errors", func(t *testing.T) {
		mr, c := newTestCache(t, time.Minute)
		require.NoError(t, mr.Set(ValueKey(RestaurantListKey, 0), "not json"))

		var got []entry
		_, hit, err := c.GetJSON(t.Context(), RestaurantListKey, &got)
		assert.Error(t, err)
		assert.False(t, hit)
	})

	t.Run("Should surface connection errors", func(t *testing.T) {
		mr, c := newTestCache(t, time.Minute)
		mr.Close()

		var got []entry
		_, _, err := c.GetJSON(t.Context(), RestaurantListKey, &got)
		assert.Error(t, err)
		assert.Error(t, c.Invalidate(t.Context(), RestaurantListKey))
	})

	t.Run("Should fall back to the default ttl", func(t *testing.T) {
		mr, c := newTestCache(t, 0)
		require.NoError(t, c.SetJSON(t.Context(), PizzaListKey, 0, []entry{}))
		assert.Equal(t, DefaultTTL, mr.TTL(ValueKey(PizzaListKey, 0)))
	})
}

func TestNopCache(t *testing.T) {
	t.Run("Should never hit", func(t *testing.T) {
		var c Cache = NopCache{}
		require.NoError(t, c.SetJSON(t.Context(), PizzaListKey, 0, []entry{}))

		var got []entry
		_, hit, err := c.GetJSON(t.Context(), PizzaListKey, &got)
		require.NoError(t, err)
		assert.False(t, hit)
		assert.NoError(t, c.Invalidate(t.Context(), PizzaListKey))
	})
}
