package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type CampaignStatus string

const (
	StatusActive  CampaignStatus = "active"
	StatusPending CampaignStatus = "pending"
	StatusClosed  CampaignStatus = "closed"
)

// Campaign is a fundraising project with a goal and a running raised total.
type Campaign struct {
	ID            snowflake.ID      `gorm:"primaryKey" json:"id"`
	Title         string            `gorm:"type:text;not null" json:"title"`
	Slug          string            `gorm:"type:text;not null;uniqueIndex" json:"slug"`
	Category      string            `gorm:"type:text;not null" json:"category"`
	Location      string            `gorm:"type:text;not null" json:"location"`
	Description   string            `gorm:"type:text;not null" json:"description"`
	ImageURL      string            `gorm:"type:text" json:"image_url,omitempty"`
	Goal          int64             `gorm:"not null" json:"goal"`
	RaisedAmount  int64             `gorm:"not null;default:0" json:"raised_amount"`
	DonationCount int64             `gorm:"not null;default:0" json:"donation_count"`
	Urgent        bool              `gorm:"not null;default:false" json:"urgent"`
	Status        CampaignStatus    `gorm:"type:text;not null;index" json:"status"`
	Metadata      datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Campaign) TableName() string { return "campaigns" }
