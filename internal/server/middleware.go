package server

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"
)

const webhookSecretHeader = "x-n8n-webhook-secret"

// AdminRequired gates the admin API on the session cookie. The cookie
// value is never inspected beyond being non-empty.
func (s *Server) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.sessions.IsAuthenticated(c) {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		c.Next()
	}
}

// WebhookSecretRequired gates webhook ingestion on the shared secret
// header.
func (s *Server) WebhookSecretRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := s.cfg.WebhookSecret
		if secret == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		provided := strings.TrimSpace(c.GetHeader(webhookSecretHeader))
		if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		c.Next()
	}
}

// PublicFormRateLimit keys the limiter by client IP.
func (s *Server) PublicFormRateLimit(limiter *rateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			AbortWithError(c, ErrTooManyRequest)
			return
		}
		c.Next()
	}
}
