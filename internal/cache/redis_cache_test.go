package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

func newTestCache(t *testing.T) (*miniredis.Miniredis, CacheService) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisCache(client, "devquiz:", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRedisCache_SetGet(t *testing.T) {
	ctx := context.Background()
	mr, c := newTestCache(t)

	require.NoError(t, c.Set(ctx, "k", payload{Name: "go", Items: []string{"a"}}, time.Minute))
	assert.True(t, mr.Exists("devquiz:k"))

	var got payload
	require.NoError(t, c.Get(ctx, "k", &got))
	assert.Equal(t, payload{Name: "go", Items: []string{"a"}}, got)

	mr.FastForward(2 * time.Minute)
	assert.ErrorIs(t, c.Get(ctx, "k", &got), ErrCacheMiss)
}

func TestRedisCache_Miss(t *testing.T) {
	_, c := newTestCache(t)
	var got payload
	assert.ErrorIs(t, c.Get(context.Background(), "absent", &got), ErrCacheMiss)
}

func TestRedisCache_CorruptEntryIsDropped(t *testing.T) {
	ctx := context.Background()
	mr, c := newTestCache(t)
	require.NoError(t, mr.Set("devquiz:bad", "{not json"))

	var got payload
	assert.ErrorIs(t, c.Get(ctx, "bad", &got), ErrCacheMiss)
	assert.False(t, mr.Exists("devquiz:bad"))
}

func TestRedisCache_Delete(t *testing.T) {
	ctx := context.Background()
	mr, c := newTestCache(t)

	require.NoError(t, c.Set(ctx, "questions:go", []string{"q1"}, 0))
	require.NoError(t, c.Set(ctx, "questions:sql", []string{"q2"}, 0))
	require.NoError(t, c.Set(ctx, "topics", []string{"go"}, 0))

	require.NoError(t, c.Delete(ctx, "topics"))
	assert.False(t, mr.Exists("devquiz:topics"))

	require.NoError(t, c.DeletePattern(ctx, "questions:*"))
	assert.False(t, mr.Exists("devquiz:questions:go"))
	assert.False(t, mr.Exists("devquiz:questions:sql"))
}
