package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
}

type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"not null"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric(10,2);not null"`
	ImageURL    string          `json:"imageUrl"`
	CategoryID  *uint           `json:"categoryId"`
	Category    *Category       `json:"category,omitempty"`
	IsCombo     bool            `json:"isCombo"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// OrderItem is a point-in-time copy of a product taken at order creation.
// Orders store these serialized, never a live product reference, so later
// product edits do not rewrite order history.
type OrderItem struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

type Order struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	CustomerName   string          `json:"customerName" gorm:"not null"`
	CustomerPhone  string          `json:"customerPhone" gorm:"not null"`
	DeliveryMethod string          `json:"deliveryMethod" gorm:"not null"` // 'delivery' or 'pickup'
	Address        string          `json:"address"`
	Items          string          `json:"items" gorm:"not null"` // JSON array of OrderItem snapshots
	TotalAmount    decimal.Decimal `json:"totalAmount" gorm:"type:numeric(10,2);not null"`
	Status         string          `json:"status" gorm:"default:pending"` // pending, preparing, ready, delivered, cancelled
	WhatsappSent   bool            `json:"whatsappSent"`
	Printed        bool            `json:"printed"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}
