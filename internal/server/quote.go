package server

import (
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/podcastge/studio/internal/pricing"
)

type quoteRequest struct {
	Mode           string   `json:"mode"`
	PackageID      string   `json:"package_id"`
	DurationID     string   `json:"duration_id"`
	ServiceIDs     []string `json:"service_ids"`
	EpisodeCountID string   `json:"episode_count_id"`
}

// Quote recomputes a price server-side for the given selection. An
// incomplete selection yields a zero quote, mirroring the calculator
// UI before the visitor has picked everything.
func (s *Server) Quote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	switch pricing.Mode(req.Mode) {
	case pricing.ModeSubscription:
		s.quoteSubscription(c, req)
	case pricing.ModeOneTime:
		s.quoteOneTime(c, req)
	default:
		AbortWithError(c, newValidationError("mode", "invalid", "unknown calculator mode"))
	}
}

func (s *Server) quoteSubscription(c *gin.Context, req quoteRequest) {
	ctx := c.Request.Context()

	packages, err := s.catalogSvc.Packages(ctx, false)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	durations, err := s.catalogSvc.Durations(ctx, false)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	quote := pricing.Quote{}
	pkgID, _ := snowflake.ParseString(req.PackageID)
	durID, _ := snowflake.ParseString(req.DurationID)
	for _, pkg := range packages {
		if pkg.ID != pkgID {
			continue
		}
		for _, dur := range durations {
			if dur.ID == durID {
				quote = pricing.QuoteSubscription(pkg.BasePrice, dur.Months, dur.DiscountPercent)
			}
		}
	}
	c.JSON(http.StatusOK, quote)
}

func (s *Server) quoteOneTime(c *gin.Context, req quoteRequest) {
	ctx := c.Request.Context()

	services, err := s.catalogSvc.Services(ctx, false)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	episodeCounts, err := s.catalogSvc.EpisodeCounts(ctx, false)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	selected := make(map[snowflake.ID]bool, len(req.ServiceIDs))
	for _, raw := range req.ServiceIDs {
		if id, err := snowflake.ParseString(raw); err == nil {
			selected[id] = true
		}
	}
	var prices []float64
	for _, svc := range services {
		if selected[svc.ID] {
			prices = append(prices, svc.Price)
		}
	}

	quote := pricing.Quote{}
	ecID, _ := snowflake.ParseString(req.EpisodeCountID)
	for _, ec := range episodeCounts {
		if ec.ID == ecID {
			quote = pricing.QuoteOneTime(prices, ec.Count, ec.DiscountPercent)
		}
	}
	c.JSON(http.StatusOK, quote)
}
