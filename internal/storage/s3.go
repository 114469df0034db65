// Package storage uploads local files to S3-compatible object storage and
// hands back public URLs.
package storage

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"vidtube/internal/config"
)

// Uploader accepts a local file path and returns the public URL of the
// stored object. The caller owns the local file either way.
type Uploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
}

type S3Uploader struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

var _ Uploader = (*S3Uploader)(nil)

// NewS3Uploader builds a client for any S3-compatible endpoint (AWS, R2,
// minio). Path-style addressing is required by most non-AWS endpoints.
func NewS3Uploader(ctx context.Context, cfg config.S3) (*S3Uploader, error) {
	if cfg.Bucket == "" || cfg.AccessKey == "" || cfg.SecretKey == "" || cfg.PublicBaseURL == "" {
		return nil, fmt.Errorf("incomplete s3 config: bucket, access_key, secret_key and public_base_url must be set")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = true
	})

	return &S3Uploader{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

// Upload stores the file under a uuid-based key and returns its public URL.
func (u *S3Uploader) Upload(ctx context.Context, localPath string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", localPath, err)
	}
	defer func() {
		_ = f.Close()
	}()

	ext := strings.ToLower(filepath.Ext(localPath))
	if ext == "" {
		ext = ".bin"
	}
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := fmt.Sprintf("uploads/%s%s", uuid.NewString(), ext)

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", localPath, err)
	}

	return u.publicBaseURL + "/" + key, nil
}
