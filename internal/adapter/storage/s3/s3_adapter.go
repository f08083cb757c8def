package s3

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/FrFaber2025/school-uniform-exchange/internal/platform/logger"
)

// PhotoStorage uploads listing photos to a MinIO/S3 bucket, addressing them
// by opaque object key.
type PhotoStorage struct {
	client *minio.Client
	bucket string
	logger logger.Logger
}

func NewPhotoStorage(endpoint, accessKey, secretKey, bucket string, useSSL bool, log logger.Logger) (*PhotoStorage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for %s: %w", endpoint, err)
	}

	err = client.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{})
	if err != nil {
		exists, errExists := client.BucketExists(context.Background(), bucket)
		if errExists != nil || !exists {
			return nil, fmt.Errorf("failed to make/verify bucket %s: %w", bucket, err)
		}
	}

	return &PhotoStorage{client: client, bucket: bucket, logger: log}, nil
}

// Upload stores the photo under a generated key and returns that key.
func (s *PhotoStorage) Upload(ctx context.Context, originalFileName string, data []byte) (string, error) {
	ext := filepath.Ext(originalFileName)
	objectKey := fmt.Sprintf("photos/%s%s", uuid.NewString(), ext)

	_, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: http.DetectContentType(data),
	})
	if err != nil {
		s.logger.Errorf("photo upload failed: bucket=%s key=%s: %v", s.bucket, objectKey, err)
		return "", fmt.Errorf("failed to upload object %s to bucket %s: %w", objectKey, s.bucket, err)
	}

	s.logger.Infof("photo uploaded: key=%s size=%d", objectKey, len(data))
	return objectKey, nil
}

// URL builds the direct URL for a stored object key.
func (s *PhotoStorage) URL(objectKey string) string {
	return fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, objectKey)
}
