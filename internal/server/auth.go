package server

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionCheck reports whether the request carries a session cookie.
func (s *Server) SessionCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"authenticated": s.sessions.IsAuthenticated(c),
	})
}

// Login compares the credentials against the configured admin pair and
// issues the session cookie on match.
func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if s.cfg.AdminUsername == "" || s.cfg.AdminPassword == "" {
		s.log.Warn("admin credentials not configured, login rejected")
		AbortWithError(c, ErrUnauthorized)
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.cfg.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.cfg.AdminPassword)) == 1
	if !userOK || !passOK {
		s.log.Info("failed admin login", zap.String("username", req.Username), zap.String("ip", c.ClientIP()))
		AbortWithError(c, ErrUnauthorized)
		return
	}

	s.sessions.Set(c, s.sessions.NewToken())
	c.JSON(http.StatusOK, gin.H{"authenticated": true})
}

func (s *Server) Logout(c *gin.Context) {
	s.sessions.Clear(c)
	c.JSON(http.StatusOK, gin.H{"authenticated": false})
}
