package dto

import "time"

// Row is one table row as it appears inside a backup object: an open
// string-keyed map. Unknown fields pass through the pipeline untouched.
type Row map[string]any

type TableDump struct {
	Data []Row `json:"data"`
	// RecordCount is the count recorded at backup time. It is reported as-is
	// and never enforced against len(Data).
	RecordCount int `json:"record_count"`
}

const (
	BackupTypeManual = "manual"
	BackupTypeSafety = "safety_backup_before_restore"
)

type Backup struct {
	BackupID  string               `json:"backup_id"`
	CreatedAt time.Time            `json:"created_at"`
	CreatedBy string               `json:"created_by"`
	Type      string               `json:"type"`
	Tables    map[string]TableDump `json:"tables"`
}

type BackupInfo struct {
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modified_at"`
}

type BackupDetails struct {
	Name         string         `json:"name"`
	BackupID     string         `json:"backup_id"`
	CreatedAt    time.Time      `json:"created_at"`
	CreatedBy    string         `json:"created_by"`
	Type         string         `json:"type"`
	RecordCounts map[string]int `json:"record_counts"`
	DownloadURL  string         `json:"download_url"`
}
