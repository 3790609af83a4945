package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	leadsdomain "github.com/podcastge/studio/internal/leads/domain"
)

func (s *Server) Contact(c *gin.Context) {
	var req leadsdomain.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	msg, err := s.leadsSvc.Contact(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (s *Server) Subscribe(c *gin.Context) {
	var req leadsdomain.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	sub, err := s.leadsSvc.Subscribe(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}
