package cmd

import (
	"github.com/spf13/cobra"
)

// NewStartCommand creates the start command
func NewStartCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the primary task",
		Run:   runStart,
	}
}

func runStart(cmd *cobra.Command, args []string) {
	p, err := mountPanel(cmd)
	if err != nil {
		reportMountError(cmd, err)
		return
	}
	p.Start(cmd.Context())
}
