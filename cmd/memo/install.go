package main

import (
	"github.com/sandevgo/memobot/internal/config"
	"github.com/sandevgo/memobot/internal/service/installer"
	"github.com/sandevgo/memobot/pkg/log"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:           "install",
	Short:         "Configure MemoBot interactively",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting installation process")

		state, err := installer.RunWizard()
		if err != nil {
			return err
		}

		logger.Info().
			Str("backend", state.App.MemoryBackend).
			Bool("telegram", state.App.EnableTelegram).
			Str("env", config.GetEnvFilePath()).
			Msg("configuration written")

		next := "memo start"
		if state.App.EnableCLI && !state.App.EnableTelegram {
			next = "memo chat"
		}
		logger.Info().Msgf("Installation complete! You can now run '%s'.", next)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
