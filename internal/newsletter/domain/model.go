package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Subscriber is one newsletter signup. Email is unique; re-subscribing is
// reported as a conflict rather than a second row.
type Subscriber struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Email     string       `gorm:"type:text;not null;uniqueIndex" json:"email"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Subscriber) TableName() string { return "subscribers" }
