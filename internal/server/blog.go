package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	blogdomain "github.com/podcastge/studio/internal/blog/domain"
	"github.com/podcastge/studio/internal/cache"
)

func (s *Server) PublicPosts(c *gin.Context) {
	if cached, ok := s.tags.Get(cache.TagPosts); ok {
		c.JSON(http.StatusOK, cached)
		return
	}
	posts, err := s.blogSvc.Posts(c.Request.Context(), false)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.tags.Set(cache.TagPosts, posts)
	c.JSON(http.StatusOK, posts)
}

func (s *Server) PublicPostBySlug(c *gin.Context) {
	post, err := s.blogSvc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

type clapRequest struct {
	Slug string `json:"slug"`
}

func (s *Server) Clap(c *gin.Context) {
	var req clapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	claps, err := s.blogSvc.Clap(c.Request.Context(), req.Slug)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"claps": claps})
}

func (s *Server) ReadClaps(c *gin.Context) {
	claps, err := s.blogSvc.Claps(c.Request.Context(), c.Query("slug"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"claps": claps})
}

// -------- Admin articles --------

func (s *Server) AdminListArticles(c *gin.Context) {
	posts, err := s.blogSvc.Posts(c.Request.Context(), true)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (s *Server) GetArticle(c *gin.Context) {
	post, err := s.blogSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (s *Server) CreateArticle(c *gin.Context) {
	var req blogdomain.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	post, err := s.blogSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.tags.Invalidate(cache.TagPosts)
	c.JSON(http.StatusCreated, post)
}

func (s *Server) UpdateArticle(c *gin.Context) {
	var req blogdomain.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	post, err := s.blogSvc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.tags.Invalidate(cache.TagPosts)
	c.JSON(http.StatusOK, post)
}
