package domain

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrInvalidEmail      = errors.New("invalid_email")
	ErrAlreadySubscribed = errors.New("already_subscribed")
)

type SubscribeRequest struct {
	Email string `json:"email" binding:"required"`
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, sub *Subscriber) error
}

type Service interface {
	Subscribe(ctx context.Context, req SubscribeRequest) (*Subscriber, error)
}
