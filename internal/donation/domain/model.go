package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type DonationStatus string

const (
	StatusSuccess   DonationStatus = "success"
	StatusCancelled DonationStatus = "cancelled"
)

// Donation is the record of one terminal checkout outcome. Rows are
// insert-only; a checkout attempt produces at most one.
type Donation struct {
	ID          snowflake.ID   `gorm:"primaryKey" json:"id"`
	CampaignID  snowflake.ID   `gorm:"not null;index" json:"campaign_id"`
	DonorName   string         `gorm:"type:text;not null" json:"donor_name"`
	DonorEmail  string         `gorm:"type:text;not null;index" json:"donor_email"`
	DonorPhone  string         `gorm:"type:text;not null" json:"donor_phone"`
	IsAnonymous bool           `gorm:"not null;default:false" json:"is_anonymous"`
	Amount      int64          `gorm:"not null" json:"amount"`
	Tip         int64          `gorm:"not null" json:"tip"`
	Total       int64          `gorm:"not null" json:"total"`
	OrderID     string         `gorm:"type:text;not null;uniqueIndex" json:"order_id"`
	PaymentID   string         `gorm:"type:text" json:"payment_id,omitempty"`
	Signature   string         `gorm:"type:text" json:"-"`
	Status      DonationStatus `gorm:"type:text;not null;index" json:"status"`
	CreatedAt   time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Donation) TableName() string { return "donations" }

// DonorInfo is the contact block collected before checkout, prefilled into
// the provider checkout dialog.
type DonorInfo struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Anonymous bool   `json:"is_anonymous"`
}
