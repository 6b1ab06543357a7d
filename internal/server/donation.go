package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	donationdomain "github.com/sahayahq/sahaya/internal/donation/domain"
	"github.com/sahayahq/sahaya/pkg/db/pagination"
)

type donorPayload struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Anonymous bool   `json:"anonymous"`
}

type createDonationOrderRequest struct {
	CampaignID string       `json:"campaign_id"`
	Donor      donorPayload `json:"donor"`
	Amount     int64        `json:"amount"`
	TipPercent int          `json:"tip_percent"`
}

func (s *Server) CreateDonationOrder(c *gin.Context) {
	var req createDonationOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	session, err := s.donationSvc.BeginCheckout(c.Request.Context(), donationdomain.BeginCheckoutRequest{
		CampaignID: strings.TrimSpace(req.CampaignID),
		Donor: donationdomain.DonorInfo{
			Name:      req.Donor.Name,
			Email:     req.Donor.Email,
			Phone:     req.Donor.Phone,
			Anonymous: req.Donor.Anonymous,
		},
		Intent: donationdomain.Intent{
			Amount:     req.Amount,
			TipPercent: req.TipPercent,
		},
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": session})
}

type recordDonationRequest struct {
	CampaignID string       `json:"campaign_id"`
	Donor      donorPayload `json:"donor"`
	Amount     int64        `json:"amount"`
	TipPercent int          `json:"tip_percent"`
	OrderID    string       `json:"order_id"`
	PaymentID  string       `json:"payment_id"`
	Signature  string       `json:"signature"`
	Status     string       `json:"status"`
}

// RecordDonation persists a terminal checkout outcome. A success carries the
// gateway payment id and signature; a cancellation carries only the order id.
func (s *Server) RecordDonation(c *gin.Context) {
	var req recordDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	donor := donationdomain.DonorInfo{
		Name:      req.Donor.Name,
		Email:     req.Donor.Email,
		Phone:     req.Donor.Phone,
		Anonymous: req.Donor.Anonymous,
	}
	intent := donationdomain.Intent{
		Amount:     req.Amount,
		TipPercent: req.TipPercent,
	}

	switch strings.TrimSpace(req.Status) {
	case string(donationdomain.StatusSuccess):
		resp, err := s.donationSvc.RecordSuccess(c.Request.Context(), donationdomain.RecordSuccessRequest{
			CampaignID: strings.TrimSpace(req.CampaignID),
			Donor:      donor,
			Intent:     intent,
			OrderID:    strings.TrimSpace(req.OrderID),
			PaymentID:  strings.TrimSpace(req.PaymentID),
			Signature:  strings.TrimSpace(req.Signature),
		})
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": resp})
	case string(donationdomain.StatusCancelled):
		resp, err := s.donationSvc.RecordCancellation(c.Request.Context(), donationdomain.RecordCancellationRequest{
			CampaignID: strings.TrimSpace(req.CampaignID),
			Donor:      donor,
			Intent:     intent,
			OrderID:    strings.TrimSpace(req.OrderID),
		})
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": resp})
	default:
		AbortWithError(c, newValidationError("status", "invalid_status", "status must be success or cancelled"))
	}
}

func (s *Server) ListDonations(c *gin.Context) {
	var query struct {
		Email string `form:"email"`
		pagination.Pagination
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.donationSvc.ListByEmail(c.Request.Context(), donationdomain.ListByEmailRequest{
		Email:      query.Email,
		Pagination: query.Pagination,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp.Donations, "page_info": resp.PageInfo})
}

func (s *Server) ListCampaignDonations(c *gin.Context) {
	var query pagination.Pagination
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.donationSvc.ListByCampaign(c.Request.Context(), donationdomain.ListByCampaignRequest{
		CampaignID: c.Param("id"),
		Pagination: query,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp.Donations, "page_info": resp.PageInfo})
}
