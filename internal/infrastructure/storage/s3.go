// Package storage provides the object stores holding recipe images.
// S3 is the production backend; a local filesystem store serves
// development.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"go.uber.org/zap"

	"github.com/denizsemerci/egeli-betty/internal/infrastructure/config"
	"github.com/denizsemerci/egeli-betty/internal/ports/outbound"
)

// S3Storage implements FileStorage on an S3 compatible bucket.
type S3Storage struct {
	uploader *s3manager.Uploader
	client   *s3.S3
	bucket   string
	baseURL  string
	logger   *zap.Logger
}

// NewS3Storage creates the S3 storage backend. The session is built once
// at startup; credentials fall back to the default AWS chain when not set
// in configuration.
func NewS3Storage(cfg *config.Config, logger *zap.Logger) (*S3Storage, error) {
	awsCfg := &aws.Config{
		Region: aws.String(cfg.Storage.Region),
	}
	if cfg.Storage.AccessKeyID != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(
			cfg.Storage.AccessKeyID,
			cfg.Storage.SecretAccessKey,
			"",
		)
	}
	if cfg.Storage.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Storage.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(cfg.Storage.ForcePathStyle)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create aws session: %w", err)
	}

	baseURL := cfg.Storage.PublicBaseURL
	if baseURL == "" || baseURL == "/uploads" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Storage.Bucket, cfg.Storage.Region)
	}

	return &S3Storage{
		uploader: s3manager.NewUploader(sess),
		client:   s3.New(sess),
		bucket:   cfg.Storage.Bucket,
		baseURL:  strings.TrimRight(baseURL, "/"),
		logger:   logger.Named("storage"),
	}, nil
}

// Upload stores the object and returns its public URL.
func (s *S3Storage) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.logger.Error("S3 upload failed",
			zap.String("bucket", s.bucket),
			zap.String("key", key),
			zap.Error(err),
		)
		return "", err
	}

	url := fmt.Sprintf("%s/%s", s.baseURL, key)
	s.logger.Info("Uploaded object",
		zap.String("key", key),
		zap.String("url", url),
	)
	return url, nil
}

// Delete removes an object from the bucket.
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		s.logger.Error("S3 delete failed",
			zap.String("bucket", s.bucket),
			zap.String("key", key),
			zap.Error(err),
		)
	}
	return err
}

var _ outbound.FileStorage = (*S3Storage)(nil)
