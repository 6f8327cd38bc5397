package entity

import (
	"time"
)

// Product is an item in the shop catalog.
type Product struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Name           string         `gorm:"not null" json:"name"`
	Description    string         `json:"description"`
	Specifications map[string]any `gorm:"serializer:json;type:jsonb" json:"specifications,omitempty"`
	Price          float64        `gorm:"not null" json:"price"`
	Category       string         `gorm:"not null;index" json:"category"`
	Available      bool           `gorm:"default:true" json:"available"`
	PaymentLink    string         `json:"payment_link,omitempty"`
	PaymentQR      string         `json:"payment_qr,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`

	Photos []ProductPhoto `gorm:"constraint:OnDelete:CASCADE" json:"photos,omitempty"`
}

// ProductPhoto is one photo attached to a product, ordered by SortOrder.
type ProductPhoto struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	PhotoURL  string    `gorm:"not null" json:"photo_url"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}
