package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	submissiondomain "github.com/podcastge/studio/internal/submission/domain"
)

// Submit is the public sponsorship intake.
func (s *Server) Submit(c *gin.Context) {
	var req submissiondomain.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	res, err := s.submissionSvc.Submit(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// AdminSubmissions serves three read shapes from one route:
// ?countOnly=true returns just the unread count, ?id= fetches a single
// submission, and the bare path lists everything.
func (s *Server) AdminSubmissions(c *gin.Context) {
	ctx := c.Request.Context()

	if c.Query("countOnly") == "true" {
		count, err := s.submissionSvc.UnreadCount(ctx)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"unread_count": count})
		return
	}

	if id := c.Query("id"); id != "" {
		sub, err := s.submissionSvc.Get(ctx, id)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, sub)
		return
	}

	items, err := s.submissionSvc.List(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) MarkSubmissionRead(c *gin.Context) {
	sub, err := s.submissionSvc.MarkRead(c.Request.Context(), c.Query("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (s *Server) DeleteSubmission(c *gin.Context) {
	if err := s.submissionSvc.Delete(c.Request.Context(), c.Query("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
