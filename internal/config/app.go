package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/memobot/pkg/log"
)

const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
	BackendRedis  = "redis"
)

type AppConfig struct {
	RuntimePath string `env:"MEMO_RUNTIME_PATH"`
	// Where memories are persisted: sqlite, json or redis
	MemoryBackend string `env:"MEMORY_BACKEND" envDefault:"sqlite"`

	// Transport Flags
	EnableTelegram bool `env:"ENABLE_TELEGRAM" envDefault:"false"`
	EnableCLI      bool `env:"ENABLE_CLI" envDefault:"true"`

	// Simulated responder latency
	ReplyDelayMin time.Duration `env:"REPLY_DELAY_MIN" envDefault:"1s"`
	ReplyDelayMax time.Duration `env:"REPLY_DELAY_MAX" envDefault:"3s"`

	HistoryLimit int `env:"HISTORY_LIMIT" envDefault:"20"`
}

// ParseAppConfig reads AppConfig from the environment and validates it.
func ParseAppConfig() (*AppConfig, error) {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}

	// resolved the same way as the .env location
	c.RuntimePath = GetRuntimePath()

	switch c.MemoryBackend {
	case BackendSQLite, BackendJSON, BackendRedis:
	default:
		return nil, fmt.Errorf("unknown memory backend %q", c.MemoryBackend)
	}

	if c.ReplyDelayMin < 0 || c.ReplyDelayMax < c.ReplyDelayMin {
		return nil, fmt.Errorf("invalid reply delay range [%s, %s]", c.ReplyDelayMin, c.ReplyDelayMax)
	}

	if c.HistoryLimit <= 0 {
		return nil, fmt.Errorf("history limit must be positive, got %d", c.HistoryLimit)
	}

	return c, nil
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c, err := ParseAppConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "memobot.db")
}

func (c AppConfig) GetMemoriesFilePath() string {
	return filepath.Join(c.RuntimePath, "memories.json")
}

func (c AppConfig) GetInputHistoryPath() string {
	return filepath.Join(c.RuntimePath, "input_history")
}

func (c AppConfig) GetMemoryBackend() string {
	return c.MemoryBackend
}

func (c AppConfig) GetHistoryLimit() int {
	return c.HistoryLimit
}

func (c AppConfig) IsTelegramSelected() bool {
	return c.EnableTelegram
}
