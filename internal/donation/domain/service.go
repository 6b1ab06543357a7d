package domain

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/sahayahq/sahaya/internal/config"
	"github.com/sahayahq/sahaya/pkg/db/pagination"
)

var (
	ErrInvalidName       = errors.New("invalid_donor_name")
	ErrInvalidEmail      = errors.New("invalid_donor_email")
	ErrInvalidPhone      = errors.New("invalid_donor_phone")
	ErrInvalidAmount     = errors.New("invalid_amount")
	ErrInvalidTipPercent = errors.New("invalid_tip_percent")
	ErrInvalidCampaign   = errors.New("invalid_campaign_id")
	ErrInvalidOrder      = errors.New("invalid_order")
	ErrInvalidSignature  = errors.New("invalid_signature")
	ErrInvalidPageToken  = errors.New("invalid_page_token")
	ErrDuplicateOutcome  = errors.New("duplicate_outcome")
	ErrNotFound          = errors.New("donation_not_found")
)

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// ValidateDonor checks the donor form fields. Phone is the 10-digit local
// format with no country code.
func ValidateDonor(d DonorInfo) error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrInvalidName
	}
	email := strings.TrimSpace(d.Email)
	if email == "" || !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	if !phonePattern.MatchString(strings.TrimSpace(d.Phone)) {
		return ErrInvalidPhone
	}
	return nil
}

// ValidateIntent checks the amount selection against the active donation
// config. The tip percent must be one of the configured choices.
func ValidateIntent(i Intent, cfg config.DonationConfig) error {
	if i.Amount < cfg.MinAmount {
		return ErrInvalidAmount
	}
	for _, p := range cfg.TipPercents {
		if i.TipPercent == p {
			return nil
		}
	}
	return ErrInvalidTipPercent
}

// BeginCheckoutRequest opens a checkout attempt: validate the donor and
// amounts, then create a gateway order for the total.
type BeginCheckoutRequest struct {
	CampaignID string    `json:"campaign_id" binding:"required"`
	Donor      DonorInfo `json:"donor"`
	Intent     Intent    `json:"intent"`
}

// CheckoutSession is what the client needs to open the provider dialog.
type CheckoutSession struct {
	OrderID     string `json:"order_id"`
	AmountMinor int64  `json:"amount_minor"`
	Currency    string `json:"currency"`
	KeyID       string `json:"key_id"`
	Amount      int64  `json:"amount"`
	Tip         int64  `json:"tip"`
	Total       int64  `json:"total"`
}

// RecordSuccessRequest records a completed payment. The signature is the
// gateway's HMAC over the order and payment IDs and is verified before
// anything is written.
type RecordSuccessRequest struct {
	CampaignID string    `json:"campaign_id" binding:"required"`
	Donor      DonorInfo `json:"donor"`
	Intent     Intent    `json:"intent"`
	OrderID    string    `json:"order_id" binding:"required"`
	PaymentID  string    `json:"payment_id" binding:"required"`
	Signature  string    `json:"signature" binding:"required"`
}

// RecordCancellationRequest records a dismissed checkout. Cancellations are
// kept for funnel analysis and never touch campaign totals.
type RecordCancellationRequest struct {
	CampaignID string    `json:"campaign_id" binding:"required"`
	Donor      DonorInfo `json:"donor"`
	Intent     Intent    `json:"intent"`
	OrderID    string    `json:"order_id" binding:"required"`
}

type ListByEmailRequest struct {
	Email string `form:"email" binding:"required"`
	pagination.Pagination
}

type ListByCampaignRequest struct {
	CampaignID string
	pagination.Pagination
}

type ListDonationsResponse struct {
	Donations []Donation          `json:"donations"`
	PageInfo  pagination.PageInfo `json:"page_info"`
}

type Service interface {
	BeginCheckout(ctx context.Context, req BeginCheckoutRequest) (*CheckoutSession, error)
	RecordSuccess(ctx context.Context, req RecordSuccessRequest) (*Donation, error)
	RecordCancellation(ctx context.Context, req RecordCancellationRequest) (*Donation, error)
	ListByEmail(ctx context.Context, req ListByEmailRequest) (*ListDonationsResponse, error)
	ListByCampaign(ctx context.Context, req ListByCampaignRequest) (*ListDonationsResponse, error)
}
