package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/podcastge/studio/internal/config"
	"github.com/podcastge/studio/internal/providers/storage"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// UploadPrefix is the only key space the media endpoints may touch.
// Deletes outside it are rejected before storage is ever called.
const UploadPrefix = "uploads/"

var (
	ErrUnsupportedType = errors.New("unsupported_media_type")
	ErrForbiddenKey    = errors.New("forbidden_key")
	ErrMissingKey      = errors.New("missing_key")
	ErrEmptyPayload    = errors.New("empty_payload")
)

type UploadResult struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// IngestResult lists the variant URLs produced for one webhook image.
type IngestResult struct {
	Original  string            `json:"original,omitempty"`
	Variants  map[string]string `json:"variants"`
	Optimized bool              `json:"optimized"`
}

type Service interface {
	Upload(ctx context.Context, filename string, contentType string, data []byte) (*UploadResult, error)
	List(ctx context.Context) ([]storage.Object, error)
	Delete(ctx context.Context, key string) error
	IngestFromBytes(ctx context.Context, filename string, data []byte) (*IngestResult, error)
	IngestFromURL(ctx context.Context, sourceURL string) (*IngestResult, error)
}

type Params struct {
	fx.In

	Config  *config.Config
	Log     *zap.Logger
	Storage storage.Provider
}

type mediaService struct {
	cfg     *config.Config
	log     *zap.Logger
	storage storage.Provider
	http    *http.Client
	now     func() time.Time
}

func New(p Params) Service {
	return &mediaService{
		cfg:     p.Config,
		log:     p.Log,
		storage: p.Storage,
		http:    &http.Client{Timeout: 30 * time.Second},
		now:     time.Now,
	}
}

// Upload validates the MIME type, converts to WebP, and stores the
// result in object storage under a timestamped key.
func (s *mediaService) Upload(ctx context.Context, filename string, contentType string, data []byte) (*UploadResult, error) {
	if !AllowedType(contentType) {
		return nil, ErrUnsupportedType
	}
	if len(data) == 0 {
		return nil, ErrEmptyPayload
	}

	optimized, err := Optimize(data)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s%d-%s.webp", UploadPrefix, s.now().Unix(), sanitizeFilename(filename))
	url, err := s.storage.Upload(ctx, key, bytes.NewReader(optimized), int64(len(optimized)), "image/webp")
	if err != nil {
		s.log.Error("media upload", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return &UploadResult{Key: key, URL: url}, nil
}

func (s *mediaService) List(ctx context.Context) ([]storage.Object, error) {
	return s.storage.List(ctx, UploadPrefix)
}

func (s *mediaService) Delete(ctx context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrMissingKey
	}
	if !strings.HasPrefix(key, UploadPrefix) || strings.Contains(key, "..") {
		return ErrForbiddenKey
	}
	return s.storage.Delete(ctx, key)
}

// IngestFromBytes writes the webhook image's size variants to local
// disk. If optimization fails the original bytes are written as-is:
// a badly encoded image still gets published.
func (s *mediaService) IngestFromBytes(ctx context.Context, filename string, data []byte) (*IngestResult, error) {
	if len(data) == 0 {
		return nil, ErrEmptyPayload
	}

	base := fmt.Sprintf("%d-%s", s.now().Unix(), sanitizeFilename(filename))
	dir := s.cfg.Media.LocalDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}

	variants, err := Variants(data)
	if err != nil {
		s.log.Warn("image optimization failed, storing original", zap.String("file", filename), zap.Error(err))
		name := base + filepath.Ext(filename)
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return nil, err
		}
		return &IngestResult{
			Original:  s.publicMediaURL(name),
			Variants:  map[string]string{},
			Optimized: false,
		}, nil
	}

	result := &IngestResult{Variants: make(map[string]string), Optimized: true}
	for _, v := range variants {
		name := fmt.Sprintf("%s-%s%s", base, v.Name, v.FileExt)
		if err := os.WriteFile(filepath.Join(dir, name), v.Data, 0o644); err != nil {
			return nil, fmt.Errorf("write variant %s: %w", v.Name, err)
		}
		result.Variants[v.Name] = s.publicMediaURL(name)
	}
	return result, nil
}

// IngestFromURL fetches a remote image and runs it through the same
// variant pipeline.
func (s *mediaService) IngestFromURL(ctx context.Context, sourceURL string) (*IngestResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch source image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch source image: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, err
	}

	name := filepath.Base(sourceURL)
	if name == "." || name == "/" {
		name = uuid.NewString()
	}
	return s.IngestFromBytes(ctx, name, data)
}

func (s *mediaService) publicMediaURL(name string) string {
	base := strings.TrimRight(s.cfg.PublicBaseURL, "/")
	rel := strings.TrimPrefix(s.cfg.Media.LocalDir, "public")
	return base + rel + "/" + name
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// sanitizeFilename strips the extension and any character unsafe in an
// object key or URL path segment.
func sanitizeFilename(filename string) string {
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	name = unsafeChars.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-")
	if name == "" {
		name = "image"
	}
	return strings.ToLower(name)
}

var Module = fx.Module("media.service",
	fx.Provide(New),
)
