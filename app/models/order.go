package models

import "time"

type Order struct {
	ID              string  `gorm:"primaryKey;size:36" json:"id"`
	OrderNumber     string  `gorm:"size:64;uniqueIndex" json:"order_number"`
	ProfileID       *string `gorm:"size:36;index" json:"profile_id"`
	CustomerEmail   string  `gorm:"size:191;index" json:"customer_email"`
	Status          string  `gorm:"size:32;default:pending" json:"status"`
	PaymentStatus   string  `gorm:"size:32;default:pending" json:"payment_status"`
	Subtotal        float64 `json:"subtotal"`
	ShippingCost    float64 `json:"shipping_cost"`
	Tax             float64 `json:"tax"`
	Total           float64 `json:"total"`
	Currency        string  `gorm:"size:8;default:ARS" json:"currency"`
	ShippingAddress string  `gorm:"type:text" json:"shipping_address"`
	Notes           string  `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type OrderItem struct {
	ID          string  `gorm:"primaryKey;size:36" json:"id"`
	OrderID     string  `gorm:"size:36;index" json:"order_id"`
	ProductID   *string `gorm:"size:36;index" json:"product_id"`
	ProductName string  `gorm:"size:191" json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
	CreatedAt   time.Time
}
