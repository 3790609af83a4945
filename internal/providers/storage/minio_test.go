package storage

import (
	"testing"

	"github.com/podcastge/studio/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestPublicBaseURLPrefersConfiguredValue(t *testing.T) {
	base := publicBaseURL(config.StorageConfig{
		BaseURL:  "https://cdn.podcast.ge/media/",
		Endpoint: "localhost:9000",
		Bucket:   "studio-media",
	})
	assert.Equal(t, "https://cdn.podcast.ge/media", base)
}

func TestPublicBaseURLDerivedFromEndpointAndBucket(t *testing.T) {
	base := publicBaseURL(config.StorageConfig{
		Endpoint: "localhost:9000",
		Bucket:   "studio-media",
		UseSSL:   false,
	})
	assert.Equal(t, "http://localhost:9000/studio-media", base)

	secure := publicBaseURL(config.StorageConfig{
		Endpoint: "s3.example.com",
		Bucket:   "studio-media",
		UseSSL:   true,
	})
	assert.Equal(t, "https://s3.example.com/studio-media", secure)
}

func TestPublicURLJoinsKey(t *testing.T) {
	p := &MinioProvider{baseURL: "https://s3.example.com/studio-media"}
	assert.Equal(t, "https://s3.example.com/studio-media/uploads/123-cover.webp", p.PublicURL("uploads/123-cover.webp"))
}
