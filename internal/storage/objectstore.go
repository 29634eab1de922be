package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/spec-kit/document-service/internal/config"
)

// ObjectStore abstracts binary storage for document files.
type ObjectStore interface {
	Upload(ctx context.Context, fileName string, reader io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, key string) error
}

// MinioStore stores document binaries in an S3-compatible bucket.
type MinioStore struct {
	client *minio.Client
	cfg    config.StorageConfig
	logger *zap.Logger
}

// NewMinioStore connects to the configured endpoint and ensures the bucket exists.
func NewMinioStore(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create object storage client: %w", err)
	}

	store := &MinioStore{client: client, cfg: cfg, logger: logger}
	if err := store.ensureBucket(ctx); err != nil {
		logger.Warn("unable to verify storage bucket", zap.Error(err))
	}
	return store, nil
}

func (s *MinioStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return err
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return err
		}
		s.logger.Info("created storage bucket", zap.String("bucket", s.cfg.Bucket))
	}
	return nil
}

// Upload writes the object under a unique key and returns its retrievable URL.
func (s *MinioStore) Upload(ctx context.Context, fileName string, reader io.Reader, size int64, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := fmt.Sprintf("%s_%s", uuid.NewString(), fileName)

	if _, err := s.client.PutObject(ctx, s.cfg.Bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return s.objectURL(key), nil
}

// Remove deletes the object for the given key.
func (s *MinioStore) Remove(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.cfg.Bucket, key, minio.RemoveObjectOptions{})
}

func (s *MinioStore) objectURL(key string) string {
	scheme := "http"
	if s.cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.Endpoint, s.cfg.Bucket, key)
}
