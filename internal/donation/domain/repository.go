package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// ListCursor is a decoded page token with typed values. The ID is a parsed
// snowflake so it binds against the bigint column on every dialect.
type ListCursor struct {
	ID        snowflake.ID
	CreatedAt time.Time
}

// Repository takes the *gorm.DB explicitly so callers can run several
// repository calls inside one transaction.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, d *Donation) error
	FindByOrderID(ctx context.Context, db *gorm.DB, orderID string) (*Donation, error)
	ListByEmail(ctx context.Context, db *gorm.DB, email string, cursor *ListCursor, limit int) ([]*Donation, error)
	ListByCampaign(ctx context.Context, db *gorm.DB, campaignID snowflake.ID, cursor *ListCursor, limit int) ([]*Donation, error)
}
