package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/podcastge/studio/internal/stats"
)

// YouTubeStats proxies cached channel statistics. An unconfigured
// integration answers 503; an upstream failure with nothing cached
// answers 502. A warm cache absorbs upstream failures before they
// reach here.
func (s *Server) YouTubeStats(c *gin.Context) {
	st, err := s.statsSvc.ChannelStats(c.Request.Context())
	if err != nil {
		if errors.Is(err, stats.ErrNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, errorResponse{Error: errorPayload{
				Type:    "not_configured",
				Message: "youtube integration is not configured",
			}})
			return
		}
		c.JSON(http.StatusBadGateway, errorResponse{Error: errorPayload{
			Type:    "upstream_error",
			Message: "youtube statistics are unavailable",
		}})
		return
	}
	c.JSON(http.StatusOK, st)
}
