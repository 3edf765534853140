package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "admin-backend",
	Short: "Administrative back office API",
	Long: `admin-backend serves the store's administrative API and manages
database backup objects: creating snapshots, listing and inspecting stored
backups, and restoring table contents from a chosen backup.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "config.yaml", "path to the YAML configuration file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(snapshotCmd)
}
