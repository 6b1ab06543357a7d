package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	campaigndomain "github.com/sahayahq/sahaya/internal/campaign/domain"
	"github.com/sahayahq/sahaya/pkg/db/pagination"
)

type createCampaignRequest struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Location    string `json:"location"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Goal        int64  `json:"goal"`
	Urgent      bool   `json:"urgent"`
}

func (s *Server) CreateCampaign(c *gin.Context) {
	var req createCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.campaignSvc.Create(c.Request.Context(), campaigndomain.CreateCampaignRequest{
		Title:       strings.TrimSpace(req.Title),
		Category:    strings.TrimSpace(req.Category),
		Location:    strings.TrimSpace(req.Location),
		Description: strings.TrimSpace(req.Description),
		ImageURL:    strings.TrimSpace(req.ImageURL),
		Goal:        req.Goal,
		Urgent:      req.Urgent,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListCampaigns(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Status   string `form:"status"`
		Category string `form:"category"`
		Location string `form:"location"`
		Urgent   *bool  `form:"urgent"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.campaignSvc.List(c.Request.Context(), campaigndomain.ListCampaignRequest{
		PageToken: query.PageToken,
		PageSize:  int32(query.PageSize),
		Status:    strings.TrimSpace(query.Status),
		Category:  strings.TrimSpace(query.Category),
		Location:  strings.TrimSpace(query.Location),
		Urgent:    query.Urgent,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetCampaignByID(c *gin.Context) {
	resp, err := s.campaignSvc.GetByID(c.Request.Context(), campaigndomain.GetCampaignRequest{
		ID: c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
