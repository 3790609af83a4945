package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/podcastge/studio/internal/config"
	"go.uber.org/zap"
)

type MinioProvider struct {
	client  *minio.Client
	bucket  string
	baseURL string
	log     *zap.Logger
}

func NewMinio(cfg *config.Config, log *zap.Logger) (*MinioProvider, error) {
	client, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
		Region: cfg.Storage.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Storage.Bucket, minio.MakeBucketOptions{Region: cfg.Storage.Region}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
		log.Info("bucket created", zap.String("bucket", cfg.Storage.Bucket))
	}

	return &MinioProvider{
		client:  client,
		bucket:  cfg.Storage.Bucket,
		baseURL: publicBaseURL(cfg.Storage),
		log:     log,
	}, nil
}

// publicBaseURL is the prefix object keys are appended to. Without an
// explicit BaseURL it falls back to the path-style bucket address on
// the configured endpoint.
func publicBaseURL(cfg config.StorageConfig) string {
	if cfg.BaseURL != "" {
		return strings.TrimRight(cfg.BaseURL, "/")
	}
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
}

func (p *MinioProvider) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	_, err := p.client.PutObject(ctx, p.bucket, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload object: %w", err)
	}
	p.log.Info("object uploaded", zap.String("key", key), zap.Int64("size", size))
	return p.PublicURL(key), nil
}

func (p *MinioProvider) List(ctx context.Context, prefix string) ([]Object, error) {
	var objects []Object
	for info := range p.client.ListObjects(ctx, p.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if info.Err != nil {
			return nil, fmt.Errorf("list objects: %w", info.Err)
		}
		objects = append(objects, Object{
			Key:          info.Key,
			URL:          p.PublicURL(info.Key),
			Size:         info.Size,
			ContentType:  info.ContentType,
			LastModified: info.LastModified,
		})
	}
	return objects, nil
}

func (p *MinioProvider) Delete(ctx context.Context, key string) error {
	if err := p.client.RemoveObject(ctx, p.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	p.log.Info("object deleted", zap.String("key", key))
	return nil
}

func (p *MinioProvider) PublicURL(key string) string {
	return p.baseURL + "/" + key
}
