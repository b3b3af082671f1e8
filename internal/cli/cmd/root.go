package cmd

import (
	"github.com/spf13/cobra"
)

// RegisterCommands adds all available commands to the root command
func RegisterCommands(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Panel configuration file (default $TASKPANEL_CONFIG or ~/.taskpanel.yaml)")
	rootCmd.AddCommand(NewStartCommand())
	rootCmd.AddCommand(NewCheckCommand())
	rootCmd.AddCommand(NewWatchCommand())
}
