package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	headerRequestID  = "X-Request-ID"
	contextUserIDKey = "user_id"
)

// RequestID propagates the inbound request id or assigns a fresh one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(headerRequestID))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Writer.Header().Set(headerRequestID, requestID)
		c.Set("request_id", requestID)
		c.Next()
	}
}

// AuthRequired gates a route behind a valid session cookie.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		session, err := s.authsvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(contextUserIDKey, session.UserID.String())
		c.Next()
	}
}

// DonationRateLimit throttles checkout endpoints per client IP. The redis
// limiter is authoritative when configured; the in-memory limiter is the
// single-node fallback.
func (s *Server) DonationRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		if s.donationLimiter.Enabled() {
			allowed, err := s.donationLimiter.Allow(c.Request.Context(), ip)
			if err != nil {
				// Redis being down should not block donations.
				c.Next()
				return
			}
			if !allowed {
				AbortWithError(c, ErrTooManyRequests)
				return
			}
			c.Next()
			return
		}

		if !s.checkoutLimiter.Allow(ip) {
			AbortWithError(c, ErrTooManyRequests)
			return
		}
		c.Next()
	}
}
