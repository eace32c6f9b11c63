package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	nanoid "github.com/jaevor/go-nanoid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"seller-panel.backend/internal/config"
)

// bucketClient is the subset of *minio.Client the store needs
type bucketClient interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

var newMinioClient = func(cfg config.StorageConfig) (bucketClient, error) {
	return minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
}

// MinioStore uploads seller files to an S3-compatible bucket
type MinioStore struct {
	client  bucketClient
	bucket  string
	baseURL string
	newID   func() string
}

// NewMinioStore connects to the configured endpoint
func NewMinioStore(cfg config.StorageConfig) (*MinioStore, error) {
	client, err := newMinioClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return newStore(client, cfg)
}

func newStore(client bucketClient, cfg config.StorageConfig) (*MinioStore, error) {
	newID, err := nanoid.Standard(21)
	if err != nil {
		return nil, err
	}
	return &MinioStore{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: publicBaseURL(cfg),
		newID:   newID,
	}, nil
}

// EnsureBucket creates the bucket when it does not exist yet
func (s *MinioStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	return nil
}

// Put stores content under folder with a random object name and returns its public URL
func (s *MinioStore) Put(ctx context.Context, folder, fileName, contentType string, size int64, content io.Reader) (string, error) {
	key := path.Join(folder, s.newID()+strings.ToLower(filepath.Ext(fileName)))
	opts := minio.PutObjectOptions{ContentType: contentType}
	if _, err := s.client.PutObject(ctx, s.bucket, key, content, size, opts); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return s.baseURL + "/" + key, nil
}

// Remove deletes the object behind a URL returned by Put
func (s *MinioStore) Remove(ctx context.Context, url string) error {
	key, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok || key == "" {
		return fmt.Errorf("url %s is not in bucket %s", url, s.bucket)
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

func publicBaseURL(cfg config.StorageConfig) string {
	if cfg.PublicURL != "" {
		return strings.TrimRight(cfg.PublicURL, "/")
	}
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
}
