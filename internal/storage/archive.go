// Package storage archives uploaded files to S3-compatible object storage.
package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"

	"github.com/iamyashsharma43/SENTIFY/internal/config"
	"github.com/iamyashsharma43/SENTIFY/internal/constants"
)

// Archiver keeps a copy of an uploaded file before it is removed from disk.
type Archiver interface {
	// Archive uploads the file at path and returns the object name.
	Archive(ctx context.Context, kind, path, originalName, contentType string) (string, error)
}

// objectPutter is the subset of *minio.Client used by MinIOArchive.
type objectPutter interface {
	FPutObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// MinIOArchive stores uploads in a MinIO (or any S3-compatible) bucket.
type MinIOArchive struct {
	client objectPutter
	bucket string
	now    func() time.Time
}

// NewMinIOArchive connects to the configured endpoint and makes sure the bucket exists.
func NewMinIOArchive(ctx context.Context, cfg *config.ArchiveSettings) (*MinIOArchive, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	bucket := cfg.Bucket
	if bucket == "" {
		bucket = constants.DefaultArchiveBucket
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		log.Info().Str("bucket", bucket).Msg("Created upload archive bucket")
	}

	return newMinIOArchive(client, bucket), nil
}

func newMinIOArchive(client objectPutter, bucket string) *MinIOArchive {
	return &MinIOArchive{client: client, bucket: bucket, now: time.Now}
}

// Archive implements Archiver.
func (a *MinIOArchive) Archive(ctx context.Context, kind, path, originalName, contentType string) (string, error) {
	objectName := a.objectName(kind, originalName)

	info, err := a.client.FPutObject(ctx, a.bucket, objectName, path, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: map[string]string{"original-name": filepath.Base(originalName)},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	log.Debug().
		Str("bucket", a.bucket).
		Str("object", objectName).
		Int64("size", info.Size).
		Msg("Upload archived")

	return objectName, nil
}

// objectName builds {kind}/{yyyy}/{mm}/{dd}/{uuid}{ext}.
func (a *MinIOArchive) objectName(kind, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%s/%s/%s%s", kind, a.now().UTC().Format("2006/01/02"), uuid.NewString(), ext)
}

// NopArchiver discards every archive request. It is used when archiving is disabled.
type NopArchiver struct{}

// Archive implements Archiver.
func (NopArchiver) Archive(context.Context, string, string, string, string) (string, error) {
	return "", nil
}
