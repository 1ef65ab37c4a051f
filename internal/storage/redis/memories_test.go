package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sandevgo/memobot/internal/config"
	"github.com/sandevgo/memobot/internal/core"
	"github.com/sandevgo/memobot/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetrier() *retry.Retrier {
	return retry.NewRetrier(&retry.Config{
		MaxRetries:    1,
		BackoffFactor: 1,
		InitialDelay:  time.Millisecond,
		MaxDelay:      time.Millisecond,
	})
}

func newTestList(t *testing.T) (*MemoriesList, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewMemoriesList(client, "test:memories"), mr
}

func TestNewClient_Connects(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &config.RedisConfig{URL: "redis://" + mr.Addr() + "/0", Key: "k"}

	client, err := NewClient(context.Background(), cfg, fastRetrier())
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.Ping(context.Background()).Err())
}

func TestNewClient_BadURL(t *testing.T) {
	_, err := NewClient(context.Background(), &config.RedisConfig{URL: "not-a-url"}, fastRetrier())
	assert.ErrorContains(t, err, "failed to parse redis url")
}

func TestNewClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewClient(context.Background(), &config.RedisConfig{URL: "redis://" + addr}, fastRetrier())
	assert.ErrorContains(t, err, "failed to connect to redis")
}

func TestMemoriesList_EmptyLoad(t *testing.T) {
	list, _ := newTestList(t)

	got, err := list.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoriesList_SaveReplacesList(t *testing.T) {
	ctx := context.Background()
	list, mr := newTestList(t)
	created := time.Date(2024, 2, 2, 9, 0, 0, 0, time.UTC)

	require.NoError(t, list.Save(ctx, []core.Memory{{ID: 1, Text: "first", CreatedAt: created}}))
	require.NoError(t, list.Save(ctx, []core.Memory{
		{ID: 1, Text: "first", CreatedAt: created},
		{ID: 2, Text: "second", CreatedAt: created.Add(time.Second)},
	}))

	items, err := mr.List("test:memories")
	require.NoError(t, err)
	assert.Len(t, items, 2)

	got, err := list.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Text)
	assert.Equal(t, int64(2), got[1].ID)
	assert.True(t, got[1].CreatedAt.Equal(created.Add(time.Second)))
}

func TestMemoriesList_SaveEmptyClearsKey(t *testing.T) {
	ctx := context.Background()
	list, mr := newTestList(t)

	require.NoError(t, list.Save(ctx, []core.Memory{{ID: 1, Text: "gone"}}))
	require.NoError(t, list.Save(ctx, nil))

	assert.False(t, mr.Exists("test:memories"))
}

func TestMemoriesList_CorruptEntry(t *testing.T) {
	list, mr := newTestList(t)
	_, err := mr.Push("test:memories", "{broken")
	require.NoError(t, err)

	_, err = list.Load(context.Background())
	assert.ErrorContains(t, err, "failed to decode memory at index 0")
}
