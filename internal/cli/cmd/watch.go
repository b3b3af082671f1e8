package cmd

import (
	"context"

	"reloadtrigger/internal/common"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewWatchCommand creates the watch command
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Check the configured tasks now and then on a schedule",
		Run:   runWatch,
	}

	cmd.Flags().StringP("schedule", "s", "@every 30s", "Cron schedule of the checks")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) {
	schedule, err := cmd.Flags().GetString("schedule")
	if err != nil {
		cmd.Printf("Error: %v\n", err)
		return
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// every tick is a fresh paint: properties are read again and the check
	// flow runs from idle
	check := func() {
		p, err := mountPanel(cmd)
		if err != nil {
			reportMountError(cmd, err)
			return
		}
		p.Check(ctx)
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, check); err != nil {
		cmd.Printf("Error: invalid schedule %q - %v\n", schedule, err)
		return
	}
	common.GetLogger().Info("watching tasks", zap.String("schedule", schedule))

	check()
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
}
