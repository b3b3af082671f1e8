package cmd

import (
	"reloadtrigger/internal/cli/render"
	"reloadtrigger/internal/client"
	"reloadtrigger/internal/common"
	"reloadtrigger/internal/display"
	"reloadtrigger/internal/panel"

	"github.com/spf13/cobra"
)

// mountPanel reads the configuration again and mounts the panel on a terminal
// view. A missing primary task id has already been rendered as a warning when
// the ConfigMissing error comes back.
func mountPanel(cmd *cobra.Command) (*panel.Controller, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	logger := common.GetLogger()

	api, err := client.NewFromConfig(cfg, logger)
	if err != nil {
		return nil, err
	}
	formatter, err := display.NewFormatterForZone(cfg.Timezone)
	if err != nil {
		return nil, err
	}
	return panel.Mount(cfg.Properties, panel.Deps{
		API:       api,
		Formatter: formatter,
		View:      render.NewTerminal(cmd.OutOrStdout()),
		Logger:    logger,
	})
}

// reportMountError prints everything except the configuration warning, which
// the view already shows.
func reportMountError(cmd *cobra.Command, err error) {
	if common.IsCode(err, common.ConfigMissing) {
		return
	}
	cmd.Printf("Error: %v\n", err)
}
