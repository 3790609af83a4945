package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/podcastge/studio/internal/cache"
	catalogdomain "github.com/podcastge/studio/internal/catalog/domain"
)

// Public reads serve from the tag cache; the admin mutations below
// invalidate exactly the tag they touch.

func (s *Server) PublicPackages(c *gin.Context) {
	if cached, ok := s.tags.Get(cache.TagPackages); ok {
		c.JSON(http.StatusOK, cached)
		return
	}
	items, err := s.catalogSvc.Packages(c.Request.Context(), false)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.tags.Set(cache.TagPackages, items)
	c.JSON(http.StatusOK, items)
}

func (s *Server) PublicDurations(c *gin.Context) {
	if cached, ok := s.tags.Get(cache.TagDurations); ok {
		c.JSON(http.StatusOK, cached)
		return
	}
	items, err := s.catalogSvc.Durations(c.Request.Context(), false)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.tags.Set(cache.TagDurations, items)
	c.JSON(http.StatusOK, items)
}

func (s *Server) PublicServices(c *gin.Context) {
	if cached, ok := s.tags.Get(cache.TagServices); ok {
		c.JSON(http.StatusOK, cached)
		return
	}
	items, err := s.catalogSvc.Services(c.Request.Context(), false)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.tags.Set(cache.TagServices, items)
	c.JSON(http.StatusOK, items)
}

func (s *Server) PublicEpisodeCounts(c *gin.Context) {
	if cached, ok := s.tags.Get(cache.TagEpisodeCounts); ok {
		c.JSON(http.StatusOK, cached)
		return
	}
	items, err := s.catalogSvc.EpisodeCounts(c.Request.Context(), false)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.tags.Set(cache.TagEpisodeCounts, items)
	c.JSON(http.StatusOK, items)
}

// -------- Packages --------

func (s *Server) AdminListPackages(c *gin.Context) {
	items, err := s.catalogSvc.Packages(c.Request.Context(), true)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) CreatePackage(c *gin.Context) {
	var req catalogdomain.CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	pkg, err := s.catalogSvc.CreatePackage(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.tags.Invalidate(cache.TagPackages)
	c.JSON(http.StatusCreated, pkg)
}

func (s *Server) UpdatePackage(c *gin.Context) {
	var req catalogdomain.UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	pkg, err := s.catalogSvc.UpdatePackage(c.Request.Context(), c.Query("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.tags.Invalidate(cache.TagPackages)
	c.JSON(http.StatusOK, pkg)
}

func (s *Server) DeletePackage(c *gin.Context) {
	if err := s.catalogSvc.DeletePackage(c.Request.Context(), c.Query("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	s.tags.Invalidate(cache.TagPackages)
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// -------- Durations --------

func (s *Server) AdminListDurations(c *gin.Context) {
	items, err := s.catalogSvc.Durations(c.Request.Context(), true)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) CreateDuration(c *gin.Context) {
	var req catalogdomain.CreateDurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	d, err := s.catalogSvc.CreateDuration(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.tags.Invalidate(cache.TagDurations)
	c.JSON(http.StatusCreated, d)
}

func (s *Server) UpdateDuration(c *gin.Context) {
	var req catalogdomain.UpdateDurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	d, err := s.catalogSvc.UpdateDuration(c.Request.Context(), c.Query("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.tags.Invalidate(cache.TagDurations)
	c.JSON(http.StatusOK, d)
}

func (s *Server) DeleteDuration(c *gin.Context) {
	if err := s.catalogSvc.DeleteDuration(c.Request.Context(), c.Query("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	s.tags.Invalidate(cache.TagDurations)
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// -------- One-time services --------

func (s *Server) AdminListServices(c *gin.Context) {
	items, err := s.catalogSvc.Services(c.Request.Context(), true)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) CreateService(c *gin.Context) {
	var req catalogdomain.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	svc, err := s.catalogSvc.CreateService(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.tags.Invalidate(cache.TagServices)
	c.JSON(http.StatusCreated, svc)
}

func (s *Server) UpdateService(c *gin.Context) {
	var req catalogdomain.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	svc, err := s.catalogSvc.UpdateService(c.Request.Context(), c.Query("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.tags.Invalidate(cache.TagServices)
	c.JSON(http.StatusOK, svc)
}

func (s *Server) DeleteService(c *gin.Context) {
	if err := s.catalogSvc.DeleteService(c.Request.Context(), c.Query("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	s.tags.Invalidate(cache.TagServices)
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// -------- Episode counts --------

func (s *Server) AdminListEpisodeCounts(c *gin.Context) {
	items, err := s.catalogSvc.EpisodeCounts(c.Request.Context(), true)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) CreateEpisodeCount(c *gin.Context) {
	var req catalogdomain.CreateEpisodeCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	ec, err := s.catalogSvc.CreateEpisodeCount(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.tags.Invalidate(cache.TagEpisodeCounts)
	c.JSON(http.StatusCreated, ec)
}

func (s *Server) UpdateEpisodeCount(c *gin.Context) {
	var req catalogdomain.UpdateEpisodeCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	ec, err := s.catalogSvc.UpdateEpisodeCount(c.Request.Context(), c.Query("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.tags.Invalidate(cache.TagEpisodeCounts)
	c.JSON(http.StatusOK, ec)
}

func (s *Server) DeleteEpisodeCount(c *gin.Context) {
	if err := s.catalogSvc.DeleteEpisodeCount(c.Request.Context(), c.Query("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	s.tags.Invalidate(cache.TagEpisodeCounts)
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
