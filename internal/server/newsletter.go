package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	newsletterdomain "github.com/sahayahq/sahaya/internal/newsletter/domain"
)

type subscribeRequest struct {
	Email string `json:"email"`
}

func (s *Server) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	sub, err := s.newsletterSvc.Subscribe(c.Request.Context(), newsletterdomain.SubscribeRequest{
		Email: req.Email,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": sub})
}
