package models

import "time"

type Product struct {
	ID                string  `gorm:"primaryKey;size:36" json:"id"`
	Name              string  `gorm:"size:191;not null" json:"name"`
	Slug              string  `gorm:"size:191;uniqueIndex" json:"slug"`
	Description       string  `gorm:"type:longtext" json:"description"`
	SKU               string  `gorm:"size:64;index" json:"sku"`
	Price             float64 `json:"price"`
	CompareAtPrice    float64 `json:"compare_at_price"`
	Currency          string  `gorm:"size:8;default:ARS" json:"currency"`
	Status            string  `gorm:"size:16;default:draft" json:"status"`
	CategoryID        *string `gorm:"size:36;index" json:"category_id"`
	TrackInventory    bool    `gorm:"default:true" json:"track_inventory"`
	InventoryQuantity int     `json:"inventory_quantity"`
	InventoryPolicy   string  `gorm:"size:16;default:deny" json:"inventory_policy"`
	LowStockThreshold int     `gorm:"default:5" json:"low_stock_threshold"`
	IsFeatured        bool    `json:"is_featured"`
	IsDigital         bool    `json:"is_digital"`
	RequiresShipping  bool    `gorm:"default:true" json:"requires_shipping"`
	Weight            float64 `json:"weight"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
