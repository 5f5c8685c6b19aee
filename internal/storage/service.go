// Package storage archives composed outreach messages in S3-compatible
// object storage and hands out short-lived download links.
package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"leadboard_backend/platform/config"
	"leadboard_backend/platform/logger"
)

// downloadURLTTL bounds how long a handed-out message link stays valid.
const downloadURLTTL = 24 * time.Hour

// MessageArchive stores composed message texts in a MinIO bucket.
type MessageArchive struct {
	client *minio.Client
	bucket string
	log    *logger.Logger
}

// NewMessageArchive creates the archive. The caller should only construct
// one when MinIO is configured.
func NewMessageArchive(cfg config.StorageConfig, log *logger.Logger) (*MessageArchive, error) {
	if !cfg.IsMinIOEnabled() {
		return nil, fmt.Errorf("minio is not configured")
	}

	client, err := minio.New(cfg.GetMinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinIOAccessKey(), cfg.GetMinIOSecretKey(), ""),
		Secure: cfg.GetMinIOUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &MessageArchive{client: client, bucket: cfg.GetMinioBucketMessages(), log: log}, nil
}

// EnsureBucket creates the message bucket when it does not exist yet.
func (a *MessageArchive) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", a.bucket, err)
	}
	if !exists {
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket %s: %w", a.bucket, err)
		}
	}
	return nil
}

// StoreMessage uploads the text under a collision-free key and returns a
// presigned download URL.
func (a *MessageArchive) StoreMessage(ctx context.Context, filename, body string) (string, error) {
	key := uniqueKey(filename)
	reader := strings.NewReader(body)

	_, err := a.client.PutObject(ctx, a.bucket, key, reader, int64(reader.Len()), minio.PutObjectOptions{
		ContentType: "text/plain; charset=utf-8",
	})
	if err != nil {
		return "", fmt.Errorf("upload message %s: %w", key, err)
	}

	presigned, err := a.client.PresignedGetObject(ctx, a.bucket, key, downloadURLTTL, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign message %s: %w", key, err)
	}

	a.log.Info("message archived", "bucket", a.bucket, "key", key)
	return presigned.String(), nil
}

// uniqueKey prefixes the filename with a date folder and a short random id
// so repeated compositions never overwrite each other.
func uniqueKey(filename string) string {
	return fmt.Sprintf("%s/%s_%s", time.Now().Format("2006-01-02"), uuid.New().String()[:8], filename)
}
