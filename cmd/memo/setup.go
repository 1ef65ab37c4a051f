package main

import (
	"context"
	"database/sql"
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/sandevgo/memobot/internal/config"
	"github.com/sandevgo/memobot/internal/core"
	"github.com/sandevgo/memobot/internal/service/command"
	"github.com/sandevgo/memobot/internal/service/memory"
	"github.com/sandevgo/memobot/internal/service/reply"
	"github.com/sandevgo/memobot/internal/service/session"
	"github.com/sandevgo/memobot/internal/storage/file"
	"github.com/sandevgo/memobot/internal/storage/redis"
	"github.com/sandevgo/memobot/internal/storage/sqlite"
	"github.com/sandevgo/memobot/internal/transport/cli"
	"github.com/sandevgo/memobot/internal/transport/telegram"
	"github.com/sandevgo/memobot/pkg/log"
	"github.com/sandevgo/memobot/pkg/retry"
	"github.com/sandevgo/memobot/pkg/srv"
)

type Options struct {
	// ChatOnly runs just the terminal chat regardless of configuration.
	ChatOnly bool
}

func NewServices(ctx context.Context, opts Options) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	if err := initEnv(ctx, config.GetEnvFilePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	if opts.ChatOnly {
		appCfg.EnableCLI = true
		appCfg.EnableTelegram = false
	}
	if !appCfg.EnableCLI && !appCfg.IsTelegramSelected() {
		logger.Fatal().Msg("no chat channel enabled, set ENABLE_CLI or ENABLE_TELEGRAM")
	}
	retrier := retry.NewDefaultRetrier()

	// 2. Storage. The transcript always lives in sqlite.
	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup("sqlite", db.Close))

	repo, cleanup, err := initMemoryRepo(ctx, appCfg, db, retrier)
	if err != nil {
		logger.Fatal().Err(err).Str("backend", appCfg.GetMemoryBackend()).Msg("failed to initialize memory backend")
	}
	if cleanup != nil {
		services = append(services, cleanup)
	}

	store, err := memory.NewStore(ctx, repo)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load memories")
	}
	turns := sqlite.NewTurnsRepo(db)

	// 3. Sessions and commands
	manager := session.NewManager(
		store,
		reply.NewDefaultComposer(),
		session.SystemClock{},
		session.Delay{Min: appCfg.ReplyDelayMin, Max: appCfg.ReplyDelayMax},
		turns,
	)
	router := command.New(command.NewCommands(store, turns, appCfg.GetMemoryBackend(), appCfg.GetHistoryLimit()))

	// 4. Transports
	transports, err := initTransports(ctx, appCfg, manager, router, retrier)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	services = append(services, transports...)

	return services
}

// initMemoryRepo returns the configured memory backend and, when it holds a
// connection of its own, a service closing it.
func initMemoryRepo(
	ctx context.Context,
	cfg *config.AppConfig,
	db *sql.DB,
	retrier *retry.Retrier,
) (core.MemoryRepository, srv.Service, error) {
	switch cfg.GetMemoryBackend() {
	case config.BackendJSON:
		return file.NewMemoriesFile(cfg.GetMemoriesFilePath()), nil, nil
	case config.BackendRedis:
		redisCfg := config.NewRedisConfig(ctx)
		client, err := redis.NewClient(ctx, redisCfg, retrier)
		if err != nil {
			return nil, nil, err
		}
		return redis.NewMemoriesList(client, redisCfg.Key), srv.NewCleanup("redis", client.Close), nil
	default:
		return sqlite.NewMemoriesRepo(db), nil, nil
	}
}

func initTransports(
	ctx context.Context,
	cfg *config.AppConfig,
	manager *session.Manager,
	router core.CmdRouter,
	retrier *retry.Retrier,
) ([]srv.Service, error) {
	var services []srv.Service

	if cfg.IsTelegramSelected() {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, manager, router, retrier)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	if cfg.EnableCLI {
		rl, err := cli.NewReadLine(manager, router, cfg)
		if err != nil {
			return nil, err
		}
		services = append(services, rl)
	}

	return services, nil
}

func initEnv(ctx context.Context, envFile string) error {
	logger := log.FromCtx(ctx)

	if _, err := os.Stat(envFile); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Debug().Str("path", envFile).Msg("no .env file, using environment only")
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
