package installer

import (
	"github.com/sandevgo/memobot/internal/config"
)

// InstallState holds the typed configuration the wizard fills in.
type InstallState struct {
	App      config.AppConfig
	Telegram config.TelegramConfig
	Redis    config.RedisConfig
}

func NewInstallState() *InstallState {
	return &InstallState{
		App: config.AppConfig{
			MemoryBackend: config.BackendSQLite,
			EnableCLI:     true,
		},
	}
}
