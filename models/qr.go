package models

import "time"

// UPIQRCode is the payment QR image shown on the checkout payment step.
// The newest record is the one in use.
type UPIQRCode struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	FileName  string    `json:"file_name" gorm:"not null"`
	FileURL   string    `json:"file_url" gorm:"not null"`
	UPIID     string    `json:"upi_id"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}
