package repo

import (
	"github.com/Stefan-migo/businessManagementApp-sub001/app/models"

	"gorm.io/gorm"
)

type ActivityLogRepository struct{ db *gorm.DB }

func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

func (r *ActivityLogRepository) Create(l *models.ActivityLog) error { return r.db.Create(l).Error }

func (r *ActivityLogRepository) Latest(limit int) ([]models.ActivityLog, error) {
	if limit <= 0 {
		limit = 1
	}
	var logs []models.ActivityLog
	err := r.db.Order("id DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
