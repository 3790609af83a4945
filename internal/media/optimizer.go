package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

const (
	maxDimension = 1600
	webpQuality  = 82
)

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

func AllowedType(contentType string) bool {
	return allowedTypes[contentType]
}

// Optimize decodes the image, fits it inside the bounding box without
// upscaling, and re-encodes as WebP.
func Optimize(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return encodeWebP(fit(img, maxDimension))
}

// Variant is one named size produced for webhook-ingested images.
type Variant struct {
	Name     string
	MaxEdge  int
	Data     []byte
	FileExt  string
	MimeType string
}

var variantSizes = []struct {
	name    string
	maxEdge int
}{
	{"thumbnail", 400},
	{"medium", 800},
	{"large", 1600},
}

// Variants produces the named WebP sizes plus a full-size JPEG
// fallback for clients without WebP support.
func Variants(data []byte) ([]Variant, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	var out []Variant
	for _, size := range variantSizes {
		encoded, err := encodeWebP(fit(img, size.maxEdge))
		if err != nil {
			return nil, err
		}
		out = append(out, Variant{
			Name:     size.name,
			MaxEdge:  size.maxEdge,
			Data:     encoded,
			FileExt:  ".webp",
			MimeType: "image/webp",
		})
	}

	var jpegBuf bytes.Buffer
	if err := imaging.Encode(&jpegBuf, fit(img, maxDimension), imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("encode jpeg fallback: %w", err)
	}
	out = append(out, Variant{
		Name:     "fallback",
		MaxEdge:  maxDimension,
		Data:     jpegBuf.Bytes(),
		FileExt:  ".jpg",
		MimeType: "image/jpeg",
	})
	return out, nil
}

func fit(img image.Image, maxEdge int) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() <= maxEdge && bounds.Dy() <= maxEdge {
		return img
	}
	return imaging.Fit(img, maxEdge, maxEdge, imaging.Lanczos)
}

func encodeWebP(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}
