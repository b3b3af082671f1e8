package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"reloadtrigger/internal/cli/cmd"
	"reloadtrigger/internal/common"

	"github.com/spf13/cobra"
)

func main() {
	if err := common.InitConf(""); err != nil {
		fmt.Printf("Warning: %v\n", err)
	}
	logPath := common.GetConfig().LogPath
	if logPath == "" {
		logPath = common.DefaultLogPath
	}
	common.InitLog(logPath)
	logger := common.GetLogger()
	defer logger.Sync()

	rootCmd := &cobra.Command{
		Use:   "taskpanel",
		Short: "Start reload tasks and check their last execution",
		Run: func(cmd *cobra.Command, args []string) {
		},
	}

	cmd.RegisterCommands(rootCmd)

	if len(os.Args) > 1 {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := rootCmd.ExecuteContext(ctx); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
		return
	}
	startInteractiveMode(rootCmd)
}

func startInteractiveMode(rootCmd *cobra.Command) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("Task panel - Type 'help' to show help, 'exit' or 'quit' to quit")
	fmt.Print(">> ")

	for scanner.Scan() {
		input := strings.TrimSpace(scanner.Text())
		if input == "exit" || input == "quit" {
			break
		}
		if input == "" {
			fmt.Print(">> ")
			continue
		}

		if input == "help" {
			rootCmd.Help()
			fmt.Print(">> ")
			continue
		}

		args := strings.Fields(input)
		if found, _, err := rootCmd.Find(args); err != nil || found == rootCmd {
			fmt.Printf("Error: unknown command %q\n", args[0])
			fmt.Print(">> ")
			continue
		}
		// Ctrl-C ends the running command (e.g. watch), not the session
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		rootCmd.SetArgs(args)
		if err := rootCmd.ExecuteContext(ctx); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
		stop()
		fmt.Print(">> ")
	}
}
