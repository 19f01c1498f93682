package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func newTestCache(t *testing.T) *CacheHelper {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewUserCache(client)
}

func TestSetGetRoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	in := cachedUser{ID: "u1", Email: "a@x.com"}
	require.NoError(t, c.Set(ctx, "id:u1", in, time.Minute))

	var out cachedUser
	require.NoError(t, c.Get(ctx, "id:u1", &out))
	assert.Equal(t, in, out)
}

func TestGetMissing(t *testing.T) {
	c := newTestCache(t)

	var out cachedUser
	err := c.Get(context.Background(), "id:nope", &out)
	assert.ErrorIs(t, err, ErrCacheNotFound)
}

func TestDeleteInvalidates(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "id:u1", cachedUser{ID: "u1"}, time.Minute))
	require.NoError(t, c.Set(ctx, "id:u2", cachedUser{ID: "u2"}, time.Minute))
	require.NoError(t, c.Delete(ctx, "id:u1", "id:u2"))

	var out cachedUser
	assert.ErrorIs(t, c.Get(ctx, "id:u1", &out), ErrCacheNotFound)
	assert.ErrorIs(t, c.Get(ctx, "id:u2", &out), ErrCacheNotFound)
}

func TestNilClientDegradesGracefully(t *testing.T) {
	var c *CacheHelper
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, "id:u1", cachedUser{}, time.Minute))
	assert.NoError(t, c.Delete(ctx, "id:u1"))

	var out cachedUser
	assert.ErrorIs(t, c.Get(ctx, "id:u1", &out), ErrCacheNotAvailable)
}
