package server

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListMedia(c *gin.Context) {
	objects, err := s.mediaSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, objects)
}

func (s *Server) DeleteMedia(c *gin.Context) {
	if err := s.mediaSvc.Delete(c.Request.Context(), c.Query("key")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// UploadMedia accepts a multipart form with a single "file" field.
func (s *Server) UploadMedia(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		AbortWithError(c, newValidationError("file", "required", "file is required"))
		return
	}

	f, err := header.Open()
	if err != nil {
		AbortWithError(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	result, err := s.mediaSvc.Upload(c.Request.Context(), header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

type webhookImageRequest struct {
	URL string `json:"url"`
}

// WebhookUploadImage ingests an image pushed by the automation pipeline.
// It accepts three payload shapes: multipart with a "file" field, a JSON
// body referencing a source URL, or raw image bytes with the filename in
// the X-Filename header.
func (s *Server) WebhookUploadImage(c *gin.Context) {
	ctx := c.Request.Context()
	contentType := c.ContentType()

	switch {
	case strings.HasPrefix(contentType, "multipart/form-data"):
		header, err := c.FormFile("file")
		if err != nil {
			AbortWithError(c, newValidationError("file", "required", "file is required"))
			return
		}
		f, err := header.Open()
		if err != nil {
			AbortWithError(c, err)
			return
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		result, err := s.mediaSvc.IngestFromBytes(ctx, header.Filename, data)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)

	case strings.HasPrefix(contentType, "application/json"):
		var req webhookImageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
		if req.URL == "" {
			AbortWithError(c, newValidationError("url", "required", "url is required"))
			return
		}
		result, err := s.mediaSvc.IngestFromURL(ctx, req.URL)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)

	default:
		data, err := io.ReadAll(io.LimitReader(c.Request.Body, 32<<20))
		if err != nil {
			AbortWithError(c, err)
			return
		}
		filename := c.GetHeader("X-Filename")
		if filename == "" {
			filename = "image"
		}
		result, err := s.mediaSvc.IngestFromBytes(ctx, filename, data)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
