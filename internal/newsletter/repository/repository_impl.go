package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sahayahq/sahaya/internal/newsletter/domain"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, sub *domain.Subscriber) error {
	return db.WithContext(ctx).Create(sub).Error
}
