package media

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/podcastge/studio/internal/config"
	"github.com/podcastge/studio/internal/providers/storage"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type storageFake struct {
	uploads []string
	deletes []string
	objects []storage.Object
}

func (f *storageFake) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	f.uploads = append(f.uploads, key)
	return "https://cdn.podcast.ge/" + key, nil
}

func (f *storageFake) List(ctx context.Context, prefix string) ([]storage.Object, error) {
	return f.objects, nil
}

func (f *storageFake) Delete(ctx context.Context, key string) error {
	f.deletes = append(f.deletes, key)
	return nil
}

func (f *storageFake) PublicURL(key string) string {
	return "https://cdn.podcast.ge/" + key
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 64, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func setupService(t *testing.T, fake *storageFake) *mediaService {
	t.Helper()
	return &mediaService{
		cfg: &config.Config{
			PublicBaseURL: "https://podcast.ge",
			Media:         config.MediaConfig{LocalDir: filepath.Join(t.TempDir(), "blog-images")},
		},
		log:     zap.NewNop(),
		storage: fake,
		now:     func() time.Time { return time.Unix(1700000000, 0) },
	}
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	fake := &storageFake{}
	svc := setupService(t, fake)

	_, err := svc.Upload(context.Background(), "doc.pdf", "application/pdf", []byte("%PDF"))
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.Empty(t, fake.uploads)
}

func TestUploadConvertsToWebP(t *testing.T) {
	fake := &storageFake{}
	svc := setupService(t, fake)

	res, err := svc.Upload(context.Background(), "Cover Art (Final).png", "image/png", testPNG(t, 100, 80))
	assert.NoError(t, err)
	assert.Equal(t, "uploads/1700000000-cover-art-final.webp", res.Key)
	assert.Equal(t, "https://cdn.podcast.ge/uploads/1700000000-cover-art-final.webp", res.URL)
	assert.Equal(t, []string{"uploads/1700000000-cover-art-final.webp"}, fake.uploads)
}

func TestDeleteOutsidePrefixNeverHitsStorage(t *testing.T) {
	fake := &storageFake{}
	svc := setupService(t, fake)

	assert.ErrorIs(t, svc.Delete(context.Background(), "secrets/db-backup.sql"), ErrForbiddenKey)
	assert.ErrorIs(t, svc.Delete(context.Background(), "uploads/../secrets/x"), ErrForbiddenKey)
	assert.ErrorIs(t, svc.Delete(context.Background(), ""), ErrMissingKey)
	assert.Empty(t, fake.deletes)

	assert.NoError(t, svc.Delete(context.Background(), "uploads/1700000000-cover.webp"))
	assert.Equal(t, []string{"uploads/1700000000-cover.webp"}, fake.deletes)
}

func TestIngestWritesVariants(t *testing.T) {
	svc := setupService(t, &storageFake{})

	res, err := svc.IngestFromBytes(context.Background(), "hero.png", testPNG(t, 1200, 900))
	assert.NoError(t, err)
	assert.True(t, res.Optimized)
	assert.Len(t, res.Variants, 4)

	for _, name := range []string{"thumbnail", "medium", "large", "fallback"} {
		url, ok := res.Variants[name]
		assert.True(t, ok, name)
		assert.True(t, strings.HasPrefix(url, "https://podcast.ge/"), url)
	}

	entries, err := os.ReadDir(svc.cfg.Media.LocalDir)
	assert.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestIngestDegradesToOriginalOnBadImage(t *testing.T) {
	svc := setupService(t, &storageFake{})

	res, err := svc.IngestFromBytes(context.Background(), "broken.jpg", []byte("not an image at all"))
	assert.NoError(t, err)
	assert.False(t, res.Optimized)
	assert.NotEmpty(t, res.Original)
	assert.Empty(t, res.Variants)

	entries, _ := os.ReadDir(svc.cfg.Media.LocalDir)
	assert.Len(t, entries, 1)
}

func TestIngestEmptyPayload(t *testing.T) {
	svc := setupService(t, &storageFake{})

	_, err := svc.IngestFromBytes(context.Background(), "empty.png", nil)
	assert.ErrorIs(t, err, ErrEmptyPayload)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "cover-art", sanitizeFilename("Cover Art.png"))
	assert.Equal(t, "image", sanitizeFilename("../../../.png"))
	assert.Equal(t, "my-file-2", sanitizeFilename("my file (2).JPEG"))
}

func TestOptimizeNeverUpscales(t *testing.T) {
	small := testPNG(t, 50, 50)
	out, err := Optimize(small)
	assert.NoError(t, err)

	decoded, err := decodeWebPBounds(out)
	assert.NoError(t, err)
	assert.Equal(t, 50, decoded.Dx())
	assert.Equal(t, 50, decoded.Dy())
}

func TestOptimizeFitsLargeImage(t *testing.T) {
	large := testPNG(t, 3200, 1600)
	out, err := Optimize(large)
	assert.NoError(t, err)

	decoded, err := decodeWebPBounds(out)
	assert.NoError(t, err)
	assert.Equal(t, 1600, decoded.Dx())
	assert.Equal(t, 800, decoded.Dy())
}

func decodeWebPBounds(data []byte) (image.Rectangle, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return image.Rectangle{}, err
	}
	return img.Bounds(), nil
}
