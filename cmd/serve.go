package cmd

import (
	"fmt"
	"net/http"

	"github.com/Stefan-migo/businessManagementApp-sub001/global"
	"github.com/Stefan-migo/businessManagementApp-sub001/initialize"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the admin API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := initialize.Build(configFile)
		if err != nil {
			return err
		}
		addr := fmt.Sprintf("%s:%d", app.Cfg.Server.Host, app.Cfg.Server.Port)
		global.Logger.Info().Str("addr", addr).Msg("listening")
		return http.ListenAndServe(addr, app.Router)
	},
}
