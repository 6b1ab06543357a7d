package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/sahayahq/sahaya/internal/donation/domain"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, d *domain.Donation) error {
	return db.WithContext(ctx).Create(d).Error
}

func (r *repo) FindByOrderID(ctx context.Context, db *gorm.DB, orderID string) (*domain.Donation, error) {
	var d domain.Donation
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM donations WHERE order_id = ?`,
		orderID,
	).Scan(&d).Error
	if err != nil {
		return nil, err
	}
	if d.ID == 0 {
		return nil, nil
	}
	return &d, nil
}

// ListByEmail returns only successful donations; cancellations are kept in
// the table but never shown in donor history.
func (r *repo) ListByEmail(ctx context.Context, db *gorm.DB, email string, cursor *domain.ListCursor, limit int) ([]*domain.Donation, error) {
	stmt := db.WithContext(ctx).Model(&domain.Donation{}).
		Where("donor_email = ?", email).
		Where("status = ?", domain.StatusSuccess)
	return list(stmt, cursor, limit)
}

func (r *repo) ListByCampaign(ctx context.Context, db *gorm.DB, campaignID snowflake.ID, cursor *domain.ListCursor, limit int) ([]*domain.Donation, error) {
	stmt := db.WithContext(ctx).Model(&domain.Donation{}).
		Where("campaign_id = ?", campaignID).
		Where("status = ?", domain.StatusSuccess)
	return list(stmt, cursor, limit)
}

func list(stmt *gorm.DB, cursor *domain.ListCursor, limit int) ([]*domain.Donation, error) {
	if cursor != nil {
		stmt = stmt.Where("(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt,
			cursor.CreatedAt,
			cursor.ID,
		)
	}
	if limit > 0 {
		stmt = stmt.Limit(limit + 1)
	}
	var donations []*domain.Donation
	err := stmt.
		Order("created_at desc, id desc").
		Find(&donations).Error
	if err != nil {
		return nil, err
	}
	return donations, nil
}
