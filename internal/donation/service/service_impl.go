package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	campaigndomain "github.com/sahayahq/sahaya/internal/campaign/domain"
	"github.com/sahayahq/sahaya/internal/clock"
	"github.com/sahayahq/sahaya/internal/config"
	"github.com/sahayahq/sahaya/internal/donation/domain"
	"github.com/sahayahq/sahaya/internal/observability"
	"github.com/sahayahq/sahaya/internal/providers/email"
	"github.com/sahayahq/sahaya/internal/providers/payment"
	paymentdomain "github.com/sahayahq/sahaya/internal/providers/payment/domain"
	"github.com/sahayahq/sahaya/pkg/db"
	"github.com/sahayahq/sahaya/pkg/db/pagination"
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Repo         domain.Repository
	CampaignRepo campaigndomain.Repository
	Gateway      *payment.Loader
	Email        email.Provider
	Config       *config.DonationConfigHolder
	Clock        clock.Clock
	Metrics      *observability.DonationMetrics `optional:"true"`
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	repo         domain.Repository
	campaignRepo campaigndomain.Repository
	gateway      *payment.Loader
	email        email.Provider
	config       *config.DonationConfigHolder
	clock        clock.Clock
	metrics      *observability.DonationMetrics
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("donation.service"),
		genID:        p.GenID,
		repo:         p.Repo,
		campaignRepo: p.CampaignRepo,
		gateway:      p.Gateway,
		email:        p.Email,
		config:       p.Config,
		clock:        p.Clock,
		metrics:      p.Metrics,
	}
}

// BeginCheckout validates the donor form and amount selection, then creates
// a gateway order for the total in minor units.
func (s *Service) BeginCheckout(ctx context.Context, req domain.BeginCheckoutRequest) (*domain.CheckoutSession, error) {
	cfg := s.config.Get()
	if err := domain.ValidateDonor(req.Donor); err != nil {
		return nil, err
	}
	if err := domain.ValidateIntent(req.Intent, cfg); err != nil {
		return nil, err
	}
	campaign, err := s.findActiveCampaign(ctx, req.CampaignID)
	if err != nil {
		return nil, err
	}

	gw, err := s.gateway.Get()
	if err != nil {
		return nil, err
	}

	order, err := gw.CreateOrder(ctx, paymentdomain.CreateOrderRequest{
		AmountMinor: req.Intent.TotalMinor(),
		Currency:    cfg.Currency,
		Receipt:     fmt.Sprintf("donation_%s", uuid.NewString()),
		Notes: map[string]string{
			"campaign_id": campaign.ID.String(),
			"donor_email": strings.TrimSpace(req.Donor.Email),
		},
	})
	if err != nil {
		if s.metrics != nil {
			s.metrics.OrderFailed(ctx)
		}
		s.log.Warn("gateway order creation failed",
			zap.String("campaign_id", req.CampaignID),
			zap.Error(err))
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.OrderCreated(ctx)
	}

	return &domain.CheckoutSession{
		OrderID:     order.ID,
		AmountMinor: order.AmountMinor,
		Currency:    order.Currency,
		KeyID:       gw.KeyID(),
		Amount:      req.Intent.Amount,
		Tip:         req.Intent.Tip(),
		Total:       req.Intent.Total(),
	}, nil
}

// RecordSuccess verifies the gateway signature, then inserts the donation
// and bumps the campaign totals inside one transaction so the two can never
// drift apart.
func (s *Service) RecordSuccess(ctx context.Context, req domain.RecordSuccessRequest) (*domain.Donation, error) {
	cfg := s.config.Get()
	if err := domain.ValidateDonor(req.Donor); err != nil {
		return nil, err
	}
	if err := domain.ValidateIntent(req.Intent, cfg); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.OrderID) == "" || strings.TrimSpace(req.PaymentID) == "" {
		return nil, domain.ErrInvalidOrder
	}
	campaign, err := s.findActiveCampaign(ctx, req.CampaignID)
	if err != nil {
		return nil, err
	}

	gw, err := s.gateway.Get()
	if err != nil {
		return nil, err
	}
	if err := gw.VerifyPaymentSignature(req.OrderID, req.PaymentID, req.Signature); err != nil {
		s.log.Warn("payment signature rejected",
			zap.String("order_id", req.OrderID),
			zap.String("payment_id", req.PaymentID))
		return nil, domain.ErrInvalidSignature
	}

	donation := &domain.Donation{
		ID:          s.genID.Generate(),
		CampaignID:  campaign.ID,
		DonorName:   strings.TrimSpace(req.Donor.Name),
		DonorEmail:  strings.TrimSpace(req.Donor.Email),
		DonorPhone:  strings.TrimSpace(req.Donor.Phone),
		IsAnonymous: req.Donor.Anonymous,
		Amount:      req.Intent.Amount,
		Tip:         req.Intent.Tip(),
		Total:       req.Intent.Total(),
		OrderID:     req.OrderID,
		PaymentID:   req.PaymentID,
		Signature:   req.Signature,
		Status:      domain.StatusSuccess,
		CreatedAt:   s.clock.Now(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, donation); err != nil {
			return err
		}
		affected, err := s.campaignRepo.IncrementRaised(ctx, tx, campaign.ID, donation.Total)
		if err != nil {
			return err
		}
		if affected == 0 {
			return campaigndomain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrDuplicateOutcome
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.DonationRecorded(ctx, string(domain.StatusSuccess), donation.Total)
	}
	s.log.Info("donation recorded",
		zap.String("donation_id", donation.ID.String()),
		zap.String("campaign_id", campaign.ID.String()),
		zap.Int64("total", donation.Total))

	s.sendReceipt(donation, campaign.Title)

	return donation, nil
}

// RecordCancellation writes the dismissed attempt for funnel analysis. It
// never touches campaign totals.
func (s *Service) RecordCancellation(ctx context.Context, req domain.RecordCancellationRequest) (*domain.Donation, error) {
	cfg := s.config.Get()
	if err := domain.ValidateDonor(req.Donor); err != nil {
		return nil, err
	}
	if err := domain.ValidateIntent(req.Intent, cfg); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.OrderID) == "" {
		return nil, domain.ErrInvalidOrder
	}
	campaign, err := s.findActiveCampaign(ctx, req.CampaignID)
	if err != nil {
		return nil, err
	}

	donation := &domain.Donation{
		ID:          s.genID.Generate(),
		CampaignID:  campaign.ID,
		DonorName:   strings.TrimSpace(req.Donor.Name),
		DonorEmail:  strings.TrimSpace(req.Donor.Email),
		DonorPhone:  strings.TrimSpace(req.Donor.Phone),
		IsAnonymous: req.Donor.Anonymous,
		Amount:      req.Intent.Amount,
		Tip:         req.Intent.Tip(),
		Total:       req.Intent.Total(),
		OrderID:     req.OrderID,
		Status:      domain.StatusCancelled,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.repo.Insert(ctx, s.db, donation); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrDuplicateOutcome
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.DonationRecorded(ctx, string(domain.StatusCancelled), 0)
	}
	s.log.Info("donation cancelled",
		zap.String("campaign_id", campaign.ID.String()),
		zap.String("order_id", req.OrderID))

	return donation, nil
}

func (s *Service) ListByEmail(ctx context.Context, req domain.ListByEmailRequest) (*domain.ListDonationsResponse, error) {
	addr := strings.TrimSpace(req.Email)
	if addr == "" {
		return nil, domain.ErrInvalidEmail
	}
	cursor, err := decodeListCursor(req.PageToken)
	if err != nil {
		return nil, err
	}
	pageSize := listPageSize(req.PageSize)
	donations, err := s.repo.ListByEmail(ctx, s.db, addr, cursor, pageSize)
	if err != nil {
		return nil, err
	}
	return buildListResponse(donations, pageSize), nil
}

func (s *Service) ListByCampaign(ctx context.Context, req domain.ListByCampaignRequest) (*domain.ListDonationsResponse, error) {
	id, err := snowflake.ParseString(req.CampaignID)
	if err != nil {
		return nil, domain.ErrInvalidCampaign
	}
	cursor, err := decodeListCursor(req.PageToken)
	if err != nil {
		return nil, err
	}
	pageSize := listPageSize(req.PageSize)
	donations, err := s.repo.ListByCampaign(ctx, s.db, id, cursor, pageSize)
	if err != nil {
		return nil, err
	}
	return buildListResponse(donations, pageSize), nil
}

func listPageSize(requested int) int {
	if requested <= 0 {
		return 10
	}
	return requested
}

// decodeListCursor parses a page token into typed cursor values so the
// repository never binds a raw token string against the bigint id column.
func decodeListCursor(token string) (*domain.ListCursor, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, nil
	}
	decoded, err := pagination.DecodeCursor(token)
	if err != nil {
		return nil, domain.ErrInvalidPageToken
	}
	createdAt, err := time.Parse(time.RFC3339Nano, decoded.CreatedAt)
	if err != nil {
		return nil, domain.ErrInvalidPageToken
	}
	id, err := snowflake.ParseString(strings.TrimSpace(decoded.ID))
	if err != nil || id == 0 {
		return nil, domain.ErrInvalidPageToken
	}
	return &domain.ListCursor{ID: id, CreatedAt: createdAt}, nil
}

func buildListResponse(items []*domain.Donation, pageSize int) *domain.ListDonationsResponse {
	pageInfo := pagination.BuildCursorPageInfo(items, int32(pageSize), func(d *domain.Donation) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        d.ID.String(),
			CreatedAt: d.CreatedAt.Format(time.RFC3339Nano),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	donations := make([]domain.Donation, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		donations = append(donations, *item)
	}

	resp := &domain.ListDonationsResponse{Donations: donations}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp
}

func (s *Service) findActiveCampaign(ctx context.Context, id string) (*campaigndomain.Campaign, error) {
	campaignID, err := snowflake.ParseString(id)
	if err != nil {
		return nil, domain.ErrInvalidCampaign
	}
	campaign, err := s.campaignRepo.FindByID(ctx, s.db, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil || campaign.Status != campaigndomain.StatusActive {
		return nil, domain.ErrInvalidCampaign
	}
	return campaign, nil
}

func (s *Service) sendReceipt(d *domain.Donation, campaignTitle string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := email.SendDonationReceipt(ctx, s.email, d.DonorEmail, email.ReceiptData{
			DonorName:     d.DonorName,
			CampaignTitle: campaignTitle,
			Total:         d.Total,
			PaymentID:     d.PaymentID,
		})
		if err != nil {
			s.log.Warn("receipt email failed",
				zap.String("donation_id", d.ID.String()),
				zap.Error(err))
		}
	}()
}
