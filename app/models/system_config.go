package models

import "time"

type SystemConfig struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	ConfigKey   string `gorm:"column:config_key;size:191;uniqueIndex" json:"config_key"`
	ConfigValue string `gorm:"column:config_value;type:text" json:"config_value"`
	Description string `gorm:"type:text" json:"description"`
	UpdatedAt   time.Time
}

func (SystemConfig) TableName() string { return "system_config" }
