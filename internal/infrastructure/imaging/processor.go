// Package imaging validates and normalizes uploaded recipe photos.
// Oversized photos are downscaled and re-encoded as JPEG before they are
// stored; small ones pass through untouched.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"

	"github.com/denizsemerci/egeli-betty/internal/infrastructure/config"
	apperrors "github.com/denizsemerci/egeli-betty/pkg/errors"
)

// Result is a processed image ready for storage.
type Result struct {
	Data        []byte
	ContentType string
	Ext         string
}

// Processor applies the upload rules from configuration.
type Processor struct {
	cfg    config.UploadConfig
	logger *zap.Logger
}

// NewProcessor creates an image processor
func NewProcessor(cfg *config.Config, logger *zap.Logger) *Processor {
	return &Processor{
		cfg:    cfg.Upload,
		logger: logger.Named("imaging"),
	}
}

// Process validates the image and re-encodes it when it exceeds the
// re-encode threshold. Direct uploads carry a lower size cap because they
// skip re-encoding entirely.
func (p *Processor) Process(filename string, data []byte, direct bool) (*Result, error) {
	contentType := http.DetectContentType(data)
	if !p.allowed(contentType) {
		return nil, apperrors.NewUnsupportedImageError(filename)
	}

	if direct {
		if int64(len(data)) > p.cfg.MaxDirectFileSize {
			return nil, apperrors.NewImageTooLargeError(filename, int(p.cfg.MaxDirectFileSize>>20))
		}
		return &Result{Data: data, ContentType: contentType, Ext: extFor(contentType)}, nil
	}

	if int64(len(data)) > p.cfg.MaxFileSize {
		return nil, apperrors.NewImageTooLargeError(filename, int(p.cfg.MaxFileSize>>20))
	}

	if int64(len(data)) <= p.cfg.ReencodeThreshold {
		return &Result{Data: data, ContentType: contentType, Ext: extFor(contentType)}, nil
	}

	img, err := decode(data, contentType)
	if err != nil {
		return nil, apperrors.NewUnsupportedImageError(filename).WithCause(err)
	}

	img = p.downscale(img)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.cfg.JPEGQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}

	p.logger.Debug("Re-encoded image",
		zap.String("filename", filename),
		zap.Int("original_bytes", len(data)),
		zap.Int("encoded_bytes", buf.Len()),
	)

	return &Result{Data: buf.Bytes(), ContentType: "image/jpeg", Ext: ".jpg"}, nil
}

// downscale resizes the image to the configured max width, keeping the
// aspect ratio. Images already narrow enough are returned as is.
func (p *Processor) downscale(img image.Image) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	if width <= p.cfg.MaxWidth {
		return img
	}

	height := bounds.Dy() * p.cfg.MaxWidth / width
	dst := image.NewRGBA(image.Rect(0, 0, p.cfg.MaxWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func (p *Processor) allowed(contentType string) bool {
	for _, t := range p.cfg.AllowedTypes {
		if t == contentType {
			return true
		}
	}
	return false
}

func decode(data []byte, contentType string) (image.Image, error) {
	r := bytes.NewReader(data)
	switch contentType {
	case "image/png":
		return png.Decode(r)
	case "image/jpeg":
		return jpeg.Decode(r)
	case "image/webp":
		return webp.Decode(r)
	default:
		return nil, fmt.Errorf("unsupported content type %q", contentType)
	}
}

func extFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

// DecodeDataURL parses a base64 data URL of the form
// data:image/png;base64,... and returns the raw bytes. Draft images are
// held as data URLs until the draft is published.
func DecodeDataURL(url string) ([]byte, error) {
	if !strings.HasPrefix(url, "data:") {
		return nil, fmt.Errorf("not a data url")
	}

	idx := strings.Index(url, ",")
	if idx < 0 {
		return nil, fmt.Errorf("malformed data url")
	}
	meta, payload := url[5:idx], url[idx+1:]

	if !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("data url is not base64 encoded")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode data url: %w", err)
	}
	return data, nil
}

// IsDataURL reports whether the image reference still holds inline data
// instead of a stored object URL.
func IsDataURL(url string) bool {
	return strings.HasPrefix(url, "data:")
}
