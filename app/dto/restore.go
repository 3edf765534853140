package dto

const (
	StatusSuccess = "success"
	StatusPartial = "partial"
	StatusError   = "error"
	StatusSkipped = "skipped"
)

type RestoreRequest struct {
	BackupFilename string `json:"backup_filename"`
	// CreateSafetyBackup defaults to true when omitted.
	CreateSafetyBackup *bool `json:"create_safety_backup"`
}

func (r RestoreRequest) WantsSafetyBackup() bool {
	return r.CreateSafetyBackup == nil || *r.CreateSafetyBackup
}

type ProblemRecord struct {
	ID    any    `json:"id,omitempty"`
	Error string `json:"error"`
	Hint  string `json:"hint,omitempty"`
}

type TableResult struct {
	Status          string `json:"status"`
	RecordsRestored int    `json:"records_restored"`
	RecordsTotal    int    `json:"records_total"`
	Errors          int    `json:"errors"`
	DeleteErrors    int    `json:"delete_errors"`
	ErrorMessage    string `json:"error_message,omitempty"`
	// ProblematicRecords keeps detail for at most the first few failed rows
	// so a large broken table cannot blow up the response.
	ProblematicRecords []ProblemRecord `json:"problematic_records,omitempty"`
	Note               string          `json:"note,omitempty"`
}

type RestoreResponse struct {
	Success              bool                   `json:"success"`
	Message              string                 `json:"message"`
	BackupFile           string                 `json:"backup_file"`
	BackupID             string                 `json:"backup_id"`
	SafetyBackupID       string                 `json:"safety_backup_id,omitempty"`
	TablesRestored       []string               `json:"tables_restored"`
	TotalRecordsRestored int                    `json:"total_records_restored"`
	Errors               int                    `json:"errors"`
	RestoreResults       map[string]TableResult `json:"restore_results"`
	DurationSeconds      float64                `json:"duration_seconds"`
}
