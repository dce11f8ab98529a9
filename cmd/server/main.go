package main

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "tunr-web",
	Short: "Tunr web front end",
	Long: `tunr-web serves the Tunr pages, keeps each browser's session in
client storage and guards the protected views.

Environment variables override the config file; see APP_PORT, BACKEND_URL,
STORAGE_DRIVER, REDIS_ADDR and DATABASE_DSN.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")
	rootCmd.AddCommand(serveCmd, routesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
