package service

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sahayahq/sahaya/internal/newsletter/domain"
	"github.com/sahayahq/sahaya/internal/providers/email"
	"github.com/sahayahq/sahaya/pkg/db"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
	Email email.Provider
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
	email email.Provider
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("newsletter.service"),
		genID: p.GenID,
		repo:  p.Repo,
		email: p.Email,
	}
}

func (s *Service) Subscribe(ctx context.Context, req domain.SubscribeRequest) (*domain.Subscriber, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(req.Email))
	if err != nil {
		return nil, domain.ErrInvalidEmail
	}
	normalized := strings.ToLower(addr.Address)

	sub := &domain.Subscriber{
		ID:    s.genID.Generate(),
		Email: normalized,
	}
	if err := s.repo.Insert(ctx, s.db, sub); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrAlreadySubscribed
		}
		return nil, err
	}

	s.log.Info("newsletter subscribed", zap.String("subscriber_id", sub.ID.String()))

	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := email.SendSubscribeConfirmation(sendCtx, s.email, normalized); err != nil {
			s.log.Warn("subscribe confirmation email failed", zap.Error(err))
		}
	}()

	return sub, nil
}
