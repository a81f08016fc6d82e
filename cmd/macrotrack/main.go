// Package main implements the macrotrack server and its admin commands.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "macrotrack",
	Short: "Calorie and macro tracking API",
	Long: `macrotrack serves the macro tracking HTTP API.

Configuration comes from .env, config.yml and the environment (see PORT,
DB_*, JWT_SECRET, APP_TIMEZONE, LOG_*, AWS_*, RABBITMQ_URL).`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}
