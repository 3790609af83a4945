package storage

import (
	"context"
	"io"
	"time"
)

// Object is one stored media item as listed to the admin.
type Object struct {
	Key          string    `json:"key"`
	URL          string    `json:"url"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type"`
	LastModified time.Time `json:"last_modified"`
}

type Provider interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
	List(ctx context.Context, prefix string) ([]Object, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}
