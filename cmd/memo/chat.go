package main

import (
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with MemoBot in the terminal",
	Long:  `Starts a single terminal session, ignoring ENABLE_TELEGRAM. Type 'exit' to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		run(cmd.Context(), Options{ChatOnly: true})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
