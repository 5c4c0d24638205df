// Package minio archives rendered appeal documents in object storage.
package minio

import (
	"bytes"
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/roadpenalty/appealcore/internal/config"
	"github.com/roadpenalty/appealcore/internal/infrastructure/monitoring/logging"
	apperrors "github.com/roadpenalty/appealcore/pkg/errors"
)

// objectAPI is the slice of the minio client the store uses. Tests
// substitute a fake.
type objectAPI interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
}

// DocumentStore writes rendered appeal letters and court forms into a
// single bucket, keyed by session.
type DocumentStore struct {
	api    objectAPI
	bucket string
	logger logging.Logger
}

// NewDocumentStore connects to MinIO and ensures the configured bucket
// exists.
func NewDocumentStore(ctx context.Context, cfg config.MinIOConfig, logger logging.Logger) (*DocumentStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDocumentStore, "create minio client")
	}
	return newDocumentStore(ctx, client, cfg.Bucket, logger)
}

func newDocumentStore(ctx context.Context, api objectAPI, bucket string, logger logging.Logger) (*DocumentStore, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	exists, err := api.BucketExists(ctx, bucket)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDocumentStore, "check bucket")
	}
	if !exists {
		if err := api.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeDocumentStore, "create bucket")
		}
	}
	return &DocumentStore{api: api, bucket: bucket, logger: logger.Named("document_store")}, nil
}

// Put stores one document and returns its object URI.
func (s *DocumentStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.api.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeDocumentStore, "store document").WithDetail("key=" + key)
	}
	uri := "s3://" + s.bucket + "/" + key
	s.logger.Debug("archived document",
		logging.String("key", key),
		logging.Int("bytes", len(data)),
	)
	return uri, nil
}
