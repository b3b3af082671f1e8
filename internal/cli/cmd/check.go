package cmd

import (
	"github.com/spf13/cobra"
)

// NewCheckCommand creates the check command
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Show the last execution of the configured tasks",
		Run:   runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) {
	p, err := mountPanel(cmd)
	if err != nil {
		reportMountError(cmd, err)
		return
	}
	p.Check(cmd.Context())
}
