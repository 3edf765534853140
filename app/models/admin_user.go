package models

import "time"

type AdminUser struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	ProfileID   string `gorm:"size:36;index" json:"profile_id"`
	Email       string `gorm:"size:191;uniqueIndex" json:"email"`
	Role        string `gorm:"size:32;default:admin" json:"role"`
	Permissions string `gorm:"type:text" json:"permissions"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
