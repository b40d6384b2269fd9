package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/denizsemerci/egeli-betty/internal/infrastructure/config"
)

func newLocal(t *testing.T) *LocalStorage {
	t.Helper()
	cfg := &config.Config{}
	cfg.Storage.LocalPath = t.TempDir()
	cfg.Storage.PublicBaseURL = "/uploads"

	s, err := NewLocalStorage(cfg, zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestLocalUpload(t *testing.T) {
	s := newLocal(t)
	ctx := context.Background()

	url, err := s.Upload(ctx, "recipes/1700000000-abc.jpg", strings.NewReader("jpegdata"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/recipes/1700000000-abc.jpg", url)

	data, err := os.ReadFile(filepath.Join(s.root, "recipes", "1700000000-abc.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpegdata", string(data))
}

func TestLocalDelete(t *testing.T) {
	s := newLocal(t)
	ctx := context.Background()

	_, err := s.Upload(ctx, "recipes/x.jpg", strings.NewReader("x"), "image/jpeg")
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "recipes/x.jpg"))
	_, err = os.Stat(filepath.Join(s.root, "recipes", "x.jpg"))
	assert.True(t, os.IsNotExist(err))

	// deleting again is not an error
	assert.NoError(t, s.Delete(ctx, "recipes/x.jpg"))
}
