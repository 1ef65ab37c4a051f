package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/sandevgo/memobot/pkg/log"
	"github.com/sandevgo/memobot/pkg/srv"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the MemoBot services",
	Long:  `Loads memories and starts every enabled chat channel (terminal, Telegram).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		run(cmd.Context(), Options{})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func run(ctx context.Context, opts Options) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	var flushLog func()
	ctx, flushLog = setupLogger(ctx)
	defer flushLog()

	logger := log.FromCtx(ctx)
	logger.Info().Msg("starting memobot")

	services := NewServices(ctx, opts)

	srv.StartServices(ctx, stop, services)

	srv.ShutdownServices(ctx, services)
	logger.Info().Msg("memobot has been shut down gracefully")
}
