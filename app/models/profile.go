package models

import "time"

type Profile struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	Email     string `gorm:"size:191;uniqueIndex" json:"email"`
	FirstName string `gorm:"size:191" json:"first_name"`
	LastName  string `gorm:"size:191" json:"last_name"`
	Phone     string `gorm:"size:32" json:"phone"`
	Role      string `gorm:"size:32;default:customer" json:"role"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
