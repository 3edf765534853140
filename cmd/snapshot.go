package cmd

import (
	"context"

	"github.com/Stefan-migo/businessManagementApp-sub001/app/dto"
	"github.com/Stefan-migo/businessManagementApp-sub001/global"
	"github.com/Stefan-migo/businessManagementApp-sub001/initialize"

	"github.com/spf13/cobra"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Take a full backup of the restorable tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := initialize.Build(configFile)
		if err != nil {
			return err
		}
		id, name, err := app.Snapshots.Take(context.Background(), "cli", dto.BackupTypeManual)
		if err != nil {
			return err
		}
		global.Logger.Info().Str("backup_id", id).Str("object", name).Msg("snapshot written")
		return nil
	},
}
