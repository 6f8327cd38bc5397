package entity

import (
	"time"

	"github.com/google/uuid"
)

// ReceiptRecord is the persisted artifact for an accepted payment receipt.
// The file at ArchivedPath stays until an external reaper removes it after
// ExpiresAt; this service never deletes archived files itself.
type ReceiptRecord struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       string    `gorm:"not null;index" json:"user_id"`
	OrderID      *uint     `gorm:"index" json:"order_id,omitempty"`
	ArchivedPath string    `gorm:"not null" json:"archived_path"`
	PaymentDate  time.Time `gorm:"type:date" json:"payment_date"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `gorm:"not null;index" json:"expires_at"`
}
