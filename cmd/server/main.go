package main

import (
	"os"

	"github.com/spf13/cobra"

	"agromonitor/config"
	"agromonitor/pkg/logger"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	var cfg config.AppConfig

	rootCmd := &cobra.Command{
		Use:          "agromonitor",
		Short:        "Threshold alerts for soil, seed, rainfall and pasture measurements",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.Load()
			logger.Init(cfg.LogLevel)
			cfg.Report()
		},
	}

	rootCmd.AddCommand(
		serveCommand(&cfg),
		verifyCommand(&cfg),
		rulesCommand(&cfg),
	)
	return rootCmd
}
