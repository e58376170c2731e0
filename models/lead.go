package models

import "time"

const (
	LeadSourceFeedback      = "feedback_modal"
	LeadSourceMobileCapture = "mobile_capture"
)

// ContactLead is a submission from the feedback or mobile-number capture forms.
type ContactLead struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message,omitempty"`
	Source    string    `gorm:"type:varchar(40);index" json:"source"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
