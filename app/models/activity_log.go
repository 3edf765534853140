package models

import "time"

// ActivityLog is the audit trail for administrative operations. Details holds
// the operation-specific payload as JSON, e.g. the per-table restore results.
type ActivityLog struct {
	ID             uint   `gorm:"primaryKey"`
	Actor          string `gorm:"size:191;index"`
	Action         string `gorm:"size:64;index"`
	Target         string `gorm:"size:255"`
	Details        string `gorm:"type:longtext"`
	SafetyBackupID string `gorm:"size:64"`
	DurationMs     int64
	CreatedAt      time.Time
}
