package redis

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sandevgo/memobot/internal/config"
	"github.com/sandevgo/memobot/internal/core"
	"github.com/sandevgo/memobot/pkg/log"
	"github.com/sandevgo/memobot/pkg/retry"
)

// NewClient connects to the configured Redis server, retrying the initial
// ping while the server comes up.
func NewClient(ctx context.Context, cfg *config.RedisConfig, retrier *retry.Retrier) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := goredis.NewClient(opts)
	err = retrier.Do(ctx, func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.FromCtx(ctx).Debug().Str("addr", opts.Addr).Int("db", opts.DB).Msg("connected to redis")
	return client, nil
}

// MemoriesList stores each memory as a JSON element of a Redis list.
type MemoriesList struct {
	client goredis.UniversalClient
	key    string
}

func NewMemoriesList(client goredis.UniversalClient, key string) *MemoriesList {
	return &MemoriesList{client: client, key: key}
}

func (l *MemoriesList) Load(ctx context.Context) ([]core.Memory, error) {
	raw, err := l.client.LRange(ctx, l.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read memories list: %w", err)
	}

	memories := make([]core.Memory, 0, len(raw))
	for i, item := range raw {
		var m core.Memory
		if err := json.Unmarshal([]byte(item), &m); err != nil {
			return nil, fmt.Errorf("failed to decode memory at index %d: %w", i, err)
		}
		memories = append(memories, m)
	}
	return memories, nil
}

// Save replaces the list atomically.
func (l *MemoriesList) Save(ctx context.Context, memories []core.Memory) error {
	values := make([]any, 0, len(memories))
	for _, m := range memories {
		data, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("failed to encode memory %d: %w", m.ID, err)
		}
		values = append(values, string(data))
	}

	_, err := l.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Del(ctx, l.key)
		if len(values) > 0 {
			pipe.RPush(ctx, l.key, values...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write memories list: %w", err)
	}
	return nil
}
