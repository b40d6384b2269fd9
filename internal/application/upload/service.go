// Package upload accepts raw admin image uploads and lands them in the
// object store.
package upload

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/denizsemerci/egeli-betty/internal/infrastructure/imaging"
	"github.com/denizsemerci/egeli-betty/internal/ports/inbound"
	"github.com/denizsemerci/egeli-betty/internal/ports/outbound"
	apperrors "github.com/denizsemerci/egeli-betty/pkg/errors"
)

// Service implements the image upload use case
type Service struct {
	processor *imaging.Processor
	storage   outbound.FileStorage
	logger    *zap.Logger
}

// NewService creates a new upload service
func NewService(processor *imaging.Processor, storage outbound.FileStorage, logger *zap.Logger) inbound.UploadService {
	return &Service{
		processor: processor,
		storage:   storage,
		logger:    logger.Named("upload-service"),
	}
}

// UploadImage validates and re-encodes the image, then stores it under a
// collision-free key. The key carries a millisecond timestamp so listings
// of the bucket stay roughly chronological.
func (s *Service) UploadImage(ctx context.Context, cmd inbound.UploadImageCommand) (*inbound.UploadResultDTO, error) {
	if len(cmd.Data) == 0 {
		return nil, apperrors.NewBadRequestError("Dosya boş")
	}

	result, err := s.processor.Process(cmd.Filename, cmd.Data, cmd.Direct)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("recipes/%d-%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], result.Ext)
	url, err := s.storage.Upload(ctx, key, bytes.NewReader(result.Data), result.ContentType)
	if err != nil {
		return nil, apperrors.TranslateStoreError(err)
	}

	s.logger.Info("Image uploaded",
		zap.String("key", key),
		zap.String("content_type", result.ContentType),
		zap.Int("size", len(result.Data)),
	)

	return &inbound.UploadResultDTO{
		URL:  url,
		Key:  key,
		Size: len(result.Data),
	}, nil
}
