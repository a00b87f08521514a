package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// BackupService snapshots the recipe folder to S3-compatible storage.
// The folder itself is already synced between devices by whatever tool
// owns it; backups exist to survive a bad sync or an accidental delete
// propagating everywhere.
type BackupService struct {
	client     *minio.Client
	bucketName string
	region     string
}

// SnapshotResult describes a completed backup run
type SnapshotResult struct {
	Prefix    string    `json:"prefix"`
	FileCount int       `json:"file_count"`
	TotalSize int64     `json:"total_size"`
	StartedAt time.Time `json:"started_at"`
}

// NewBackupService creates a new S3 backup service
func NewBackupService(endpoint, accessKey, secretKey, bucketName, region string, useSSL bool) (*BackupService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	return &BackupService{
		client:     client,
		bucketName: bucketName,
		region:     region,
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist
func (s *BackupService) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = s.client.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{
			Region: s.region,
		})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// SnapshotFolder uploads every recipe JSON file in dir under a
// timestamped prefix. Non-JSON files and subdirectories are skipped.
func (s *BackupService) SnapshotFolder(ctx context.Context, dir string) (*SnapshotResult, error) {
	started := time.Now()
	prefix := fmt.Sprintf("snapshots/%s", started.UTC().Format("20060102-150405"))

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe folder: %w", err)
	}

	result := &SnapshotResult{Prefix: prefix, StartedAt: started}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", entry.Name(), err)
		}

		info, err := file.Stat()
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to stat %s: %w", entry.Name(), err)
		}

		key := prefix + "/" + entry.Name()
		_, err = s.client.PutObject(ctx, s.bucketName, key, file, info.Size(), minio.PutObjectOptions{
			ContentType: "application/json",
		})
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to upload %s: %w", entry.Name(), err)
		}

		result.FileCount++
		result.TotalSize += info.Size()
	}

	return result, nil
}

// UploadExport stores a rendered export (text/HTML shopping list) and
// returns its object key
func (s *BackupService) UploadExport(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucketName, key, strings.NewReader(string(data)), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload export: %w", err)
	}
	return nil
}

// GetPresignedURL generates a time-limited download URL for an object
func (s *BackupService) GetPresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	url, err := s.client.PresignedGetObject(ctx, s.bucketName, key, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return url.String(), nil
}

// GetBucketName returns the bucket name
func (s *BackupService) GetBucketName() string {
	return s.bucketName
}
