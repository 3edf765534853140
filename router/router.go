package router

import (
	"net/http"

	"github.com/Stefan-migo/businessManagementApp-sub001/app/controllers"
	"github.com/Stefan-migo/businessManagementApp-sub001/app/middleware"
)

type Controllers struct {
	Health  *controllers.HealthController
	Auth    *controllers.AuthController
	Admin   *controllers.AdminController
	Backups *controllers.BackupController
}

// New wires the HTTP surface: public health/login, admin-guarded backup and
// user management, and the signed download endpoint when the fs storage
// backend is active.
func New(c Controllers, mw *middleware.Auth, limit func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/ping", c.Health.Ping)
	mux.Handle("/login", limit(http.HandlerFunc(c.Auth.Login)))

	mux.Handle("/admin/users", mw.RequireAdmin(http.HandlerFunc(c.Admin.CreateUser)))
	mux.Handle("/admin/backups", mw.RequireAdmin(http.HandlerFunc(c.Backups.Collection)))
	mux.Handle("/admin/backups/restore", mw.RequireAdmin(limit(http.HandlerFunc(c.Backups.RestoreBackup))))

	if c.Backups.HasSignedDownloads() {
		mux.HandleFunc("/backups/download", c.Backups.Download)
	}

	return mux
}
