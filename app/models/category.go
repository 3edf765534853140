package models

import "time"

type Category struct {
	ID          string  `gorm:"primaryKey;size:36" json:"id"`
	Name        string  `gorm:"size:191;not null" json:"name"`
	Slug        string  `gorm:"size:191;uniqueIndex" json:"slug"`
	Description string  `gorm:"type:text" json:"description"`
	ParentID    *string `gorm:"size:36;index" json:"parent_id"`
	IsActive    bool    `gorm:"default:true" json:"is_active"`
	SortOrder   int     `json:"sort_order"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
