package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, campaign *Campaign) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Campaign, error)
	FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*Campaign, error)
	List(ctx context.Context, db *gorm.DB, filter ListCampaignFilter) ([]*Campaign, error)
	IncrementRaised(ctx context.Context, db *gorm.DB, id snowflake.ID, amount int64) (int64, error)
}
