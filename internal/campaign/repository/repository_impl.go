package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/sahayahq/sahaya/internal/campaign/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, campaign *domain.Campaign) error {
	return db.WithContext(ctx).Create(campaign).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Campaign, error) {
	var campaign domain.Campaign
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM campaigns WHERE id = ?`,
		id,
	).Scan(&campaign).Error
	if err != nil {
		return nil, err
	}
	if campaign.ID == 0 {
		return nil, nil
	}
	return &campaign, nil
}

func (r *repo) FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*domain.Campaign, error) {
	var campaign domain.Campaign
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM campaigns WHERE slug = ?`,
		slug,
	).Scan(&campaign).Error
	if err != nil {
		return nil, err
	}
	if campaign.ID == 0 {
		return nil, nil
	}
	return &campaign, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListCampaignFilter) ([]*domain.Campaign, error) {
	var campaigns []*domain.Campaign
	stmt := db.WithContext(ctx).Model(&domain.Campaign{})
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		stmt = stmt.Where("category = ?", filter.Category)
	}
	if filter.Location != "" {
		stmt = stmt.Where("location = ?", filter.Location)
	}
	if filter.Urgent != nil {
		stmt = stmt.Where("urgent = ?", *filter.Urgent)
	}
	if filter.Cursor != nil {
		stmt = stmt.Where("(created_at < ?) OR (created_at = ? AND id < ?)",
			filter.Cursor.CreatedAt,
			filter.Cursor.CreatedAt,
			filter.Cursor.ID,
		)
	}
	if filter.Limit > 0 {
		stmt = stmt.Limit(filter.Limit + 1)
	}
	err := stmt.
		Order("created_at desc, id desc").
		Find(&campaigns).Error
	if err != nil {
		return nil, err
	}
	return campaigns, nil
}

// IncrementRaised issues a single UPDATE so concurrent donations never race on
// a read-modify-write. Returns the number of rows touched.
func (r *repo) IncrementRaised(ctx context.Context, db *gorm.DB, id snowflake.ID, amount int64) (int64, error) {
	result := db.WithContext(ctx).Exec(
		`UPDATE campaigns
		 SET raised_amount = raised_amount + ?,
		     donation_count = donation_count + 1,
		     updated_at = ?
		 WHERE id = ?`,
		amount,
		time.Now().UTC(),
		id,
	)
	return result.RowsAffected, result.Error
}
