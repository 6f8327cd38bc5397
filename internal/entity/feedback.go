package entity

import "time"

// Suggestion is a product idea submitted by a customer.
type Suggestion struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     string    `gorm:"not null;index" json:"user_id"`
	Suggestion string    `gorm:"not null" json:"suggestion"`
	CreatedAt  time.Time `json:"created_at"`
}

// Question is a free-form customer question for the admins.
type Question struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null;index" json:"user_id"`
	Question  string    `gorm:"not null" json:"question"`
	CreatedAt time.Time `json:"created_at"`
}
