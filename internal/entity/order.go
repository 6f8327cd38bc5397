package entity

import (
	"time"

	"github.com/introlaser/shop-bot/constants"
)

// Order is a placed order awaiting payment confirmation.
type Order struct {
	ID              uint                    `gorm:"primaryKey" json:"id"`
	UserID          string                  `gorm:"not null;index" json:"user_id"`
	CustomerName    string                  `gorm:"not null" json:"customer_name"`
	CustomerPhone   string                  `gorm:"not null" json:"customer_phone"`
	CustomerEmail   string                  `json:"customer_email"`
	DeliveryAddress string                  `gorm:"not null" json:"delivery_address"`
	TotalAmount     float64                 `gorm:"not null" json:"total_amount"`
	PaymentStatus   constants.PaymentStatus `gorm:"default:pending;index" json:"payment_status"`
	CreatedAt       time.Time               `json:"created_at"`

	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// OrderItem captures one product in an order with the price at order time.
type OrderItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	ProductID uint      `gorm:"not null" json:"product_id"`
	Name      string    `gorm:"not null" json:"name"`
	Quantity  int       `gorm:"default:1" json:"quantity"`
	Price     float64   `gorm:"not null" json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

// CartItem is one product in a user's cart before checkout.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null;index" json:"user_id"`
	ProductID uint      `gorm:"not null" json:"product_id"`
	Quantity  int       `gorm:"default:1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`

	Product Product `json:"product,omitempty"`
}
