package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Stefan-migo/businessManagementApp-sub001/app/dto"
	"github.com/Stefan-migo/businessManagementApp-sub001/app/middleware"
	"github.com/Stefan-migo/businessManagementApp-sub001/app/services"
	"github.com/Stefan-migo/businessManagementApp-sub001/app/storage"
	"github.com/Stefan-migo/businessManagementApp-sub001/global"
)

type BackupController struct {
	Backups *services.BackupService
	Restore *services.RestoreService
	// fsStore is set when the fs storage backend is active; it verifies
	// signed download links served by this process.
	fsStore *storage.FSStore
}

func NewBackupController(backups *services.BackupService, restore *services.RestoreService, fsStore *storage.FSStore) *BackupController {
	return &BackupController{Backups: backups, Restore: restore, fsStore: fsStore}
}

func (c *BackupController) HasSignedDownloads() bool { return c.fsStore != nil }

// Collection serves the /admin/backups resource family: list, details,
// manual backup creation and deletion.
func (c *BackupController) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if r.URL.Query().Get("action") == "details" {
			c.details(w, r)
			return
		}
		c.list(w, r)
	case http.MethodPost:
		c.create(w, r)
	case http.MethodDelete:
		c.delete(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (c *BackupController) list(w http.ResponseWriter, r *http.Request) {
	backups, err := c.Backups.List(r.Context())
	if err != nil {
		global.Logger.Error().Err(err).Msg("backup list failed")
		writeJSONError(w, http.StatusInternalServerError, "could not list backups")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"backups": backups})
}

func (c *BackupController) details(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("filename")
	if name == "" {
		writeJSONError(w, http.StatusBadRequest, "missing filename")
		return
	}
	details, err := c.Backups.Details(r.Context(), name)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBackupParse):
			writeJSONError(w, http.StatusBadRequest, "backup is not valid JSON")
		case errors.Is(err, storage.ErrNotFound):
			writeJSONError(w, http.StatusNotFound, "backup not found")
		default:
			global.Logger.Error().Err(err).Str("backup", name).Msg("backup details failed")
			writeJSONError(w, http.StatusInternalServerError, "could not read backup")
		}
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (c *BackupController) create(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(r)
	id, name, err := c.Backups.CreateManual(r.Context(), actor)
	if err != nil {
		global.Logger.Error().Err(err).Msg("manual backup failed")
		writeJSONError(w, http.StatusInternalServerError, "backup creation failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"backup_id": id, "backup_file": name})
}

func (c *BackupController) delete(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("filename")
	if name == "" {
		writeJSONError(w, http.StatusBadRequest, "missing filename")
		return
	}
	if err := c.Backups.Delete(r.Context(), name); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "backup not found")
			return
		}
		global.Logger.Error().Err(err).Str("backup", name).Msg("backup delete failed")
		writeJSONError(w, http.StatusInternalServerError, "could not delete backup")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": name})
}

// RestoreBackup triggers the restoration pipeline. Per-table failures do not
// fail the request; only caller-input or infrastructure errors produce a
// non-200 status.
func (c *BackupController) RestoreBackup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req dto.RestoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.BackupFilename == "" {
		writeJSONError(w, http.StatusBadRequest, "missing backup_filename")
		return
	}

	resp, err := c.Restore.Run(r.Context(), actorFromRequest(r), req)
	if err != nil {
		status := http.StatusInternalServerError
		message := "restore failed"
		switch {
		case errors.Is(err, services.ErrBackupParse), errors.Is(err, services.ErrInvalidBackup):
			status = http.StatusBadRequest
			message = err.Error()
		case errors.Is(err, services.ErrBackupDownload):
			message = err.Error()
		default:
			global.Logger.Error().Err(err).Str("backup", req.BackupFilename).Msg("restore failed")
		}
		payload := map[string]any{"error": message}
		var rerr *services.RestoreError
		if errors.As(err, &rerr) && rerr.SafetyBackupID != "" {
			payload["safety_backup_id"] = rerr.SafetyBackupID
		}
		writeJSON(w, status, payload)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Download serves HMAC-signed backup downloads for the fs storage backend.
func (c *BackupController) Download(w http.ResponseWriter, r *http.Request) {
	if c.fsStore == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	name := r.URL.Query().Get("name")
	sig := r.URL.Query().Get("sig")
	exp, err := strconv.ParseInt(r.URL.Query().Get("exp"), 10, 64)
	if name == "" || sig == "" || err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid download link")
		return
	}
	if !c.fsStore.Verify(name, exp, sig) {
		writeJSONError(w, http.StatusForbidden, "download link expired or invalid")
		return
	}
	data, err := c.fsStore.Download(r.Context(), name)
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "backup not found")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	_, _ = w.Write(data)
}

func actorFromRequest(r *http.Request) string {
	if claims := middleware.GetClaims(r.Context()); claims != nil {
		return claims.Username
	}
	return "unknown"
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
