package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/denizsemerci/egeli-betty/internal/infrastructure/config"
	apperrors "github.com/denizsemerci/egeli-betty/pkg/errors"
)

func newProcessor(t *testing.T, mutate func(*config.UploadConfig)) *Processor {
	t.Helper()
	cfg := &config.Config{}
	cfg.Upload = config.UploadConfig{
		MaxFileSize:       10 << 20,
		MaxDirectFileSize: 5 << 20,
		ReencodeThreshold: 1 << 20,
		MaxWidth:          1920,
		JPEGQuality:       85,
		AllowedTypes:      []string{"image/png", "image/jpeg", "image/webp"},
	}
	if mutate != nil {
		mutate(&cfg.Upload)
	}
	return NewProcessor(cfg, zap.NewNop())
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// noisyPNGBytes fills every pixel with deterministic pseudo-random values
// so the PNG stays close to its raw size. Gradients compress too well to
// exercise the size caps.
func noisyPNGBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	rng := rand.New(rand.NewSource(42))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{
				R: uint8(rng.Intn(256)),
				G: uint8(rng.Intn(256)),
				B: uint8(rng.Intn(256)),
				A: 255,
			})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcessPassThroughSmall(t *testing.T) {
	p := newProcessor(t, nil)
	data := pngBytes(t, 100, 80)

	res, err := p.Process("foto.png", data, false)
	require.NoError(t, err)
	assert.Equal(t, data, res.Data)
	assert.Equal(t, "image/png", res.ContentType)
	assert.Equal(t, ".png", res.Ext)
}

func TestProcessRejectsUnsupportedType(t *testing.T) {
	p := newProcessor(t, nil)

	_, err := p.Process("dosya.gif", []byte("GIF89a whatever"), false)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeUnsupportedImage, apperrors.AsAppError(err).Code)
}

func TestProcessRejectsOversized(t *testing.T) {
	p := newProcessor(t, func(u *config.UploadConfig) {
		u.MaxFileSize = 1 << 10
	})
	data := noisyPNGBytes(t, 200, 200)
	require.Greater(t, len(data), 1<<10)

	_, err := p.Process("foto.png", data, false)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeImageTooLarge, apperrors.AsAppError(err).Code)
}

func TestProcessDirectUsesLowerCap(t *testing.T) {
	p := newProcessor(t, func(u *config.UploadConfig) {
		u.MaxDirectFileSize = 1 << 10
	})
	data := noisyPNGBytes(t, 200, 200)
	require.Greater(t, len(data), 1<<10)

	_, err := p.Process("foto.png", data, true)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeImageTooLarge, apperrors.AsAppError(err).Code)

	// the same file passes the non-direct path untouched
	res, err := p.Process("foto.png", data, false)
	require.NoError(t, err)
	assert.Equal(t, data, res.Data)
}

func TestProcessReencodesLargeImages(t *testing.T) {
	p := newProcessor(t, func(u *config.UploadConfig) {
		u.ReencodeThreshold = 64
		u.MaxWidth = 50
	})

	res, err := p.Process("foto.png", pngBytes(t, 200, 100), false)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", res.ContentType)
	assert.Equal(t, ".jpg", res.Ext)

	img, err := jpeg.Decode(bytes.NewReader(res.Data))
	require.NoError(t, err)
	assert.Equal(t, 50, img.Bounds().Dx())
	assert.Equal(t, 25, img.Bounds().Dy())
}

func TestProcessKeepsNarrowImagesUnscaled(t *testing.T) {
	p := newProcessor(t, func(u *config.UploadConfig) {
		u.ReencodeThreshold = 64
	})

	res, err := p.Process("foto.png", pngBytes(t, 120, 90), false)
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(res.Data))
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
}

func TestDecodeDataURL(t *testing.T) {
	payload := []byte("hello")
	url := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

	data, err := DecodeDataURL(url)
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	_, err = DecodeDataURL("https://example.com/foto.png")
	assert.Error(t, err)

	_, err = DecodeDataURL("data:image/png;base64")
	assert.Error(t, err)
}

func TestIsDataURL(t *testing.T) {
	assert.True(t, IsDataURL("data:image/png;base64,AAAA"))
	assert.False(t, IsDataURL("https://cdn.example.com/foto.jpg"))
}
