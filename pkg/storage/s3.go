package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	pkglogger "github.com/damoang/pcmall-backend/pkg/logger"
)

// Uploader stores binary objects and returns their public URL
type Uploader interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string, size int64) (*UploadResult, error)
	Delete(ctx context.Context, key string) error
}

// S3Client wraps the AWS S3 client for S3/R2/MinIO compatible storage
type S3Client struct {
	client   *s3.Client
	bucket   string
	cdnURL   string // optional CDN base URL
	basePath string // prefix for all objects (e.g. "uploads/")
}

// S3Config holds S3-compatible storage configuration
type S3Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	CDNURL          string
	BasePath        string
	ForcePathStyle  bool // true for MinIO/R2
}

// NewS3Client creates a new S3-compatible storage client
func NewS3Client(cfg S3Config) (*S3Client, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3: bucket is required")
	}

	client := s3.New(s3.Options{
		Region:       cfg.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		UsePathStyle: cfg.ForcePathStyle,
	}, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	pkglogger.GetLogger().Info().
		Str("bucket", cfg.Bucket).
		Str("endpoint", cfg.Endpoint).
		Msg("S3 storage client initialized")

	return &S3Client{
		client:   client,
		bucket:   cfg.Bucket,
		cdnURL:   strings.TrimRight(cfg.CDNURL, "/"),
		basePath: cfg.BasePath,
	}, nil
}

// UploadResult contains the result of a file upload
type UploadResult struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// Upload uploads a file to S3-compatible storage
func (c *S3Client) Upload(ctx context.Context, key string, body io.Reader, contentType string, size int64) (*UploadResult, error) {
	fullKey := c.basePath + key

	input := &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(fullKey),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
		CacheControl:  aws.String("public, max-age=31536000, immutable"),
	}

	if _, err := c.client.PutObject(ctx, input); err != nil {
		return nil, fmt.Errorf("s3 upload failed: %w", err)
	}

	return &UploadResult{
		Key:         fullKey,
		URL:         c.PublicURL(fullKey),
		ContentType: contentType,
		Size:        size,
	}, nil
}

// Delete removes a file from storage
func (c *S3Client) Delete(ctx context.Context, key string) error {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}

	if _, err := c.client.DeleteObject(ctx, input); err != nil {
		return fmt.Errorf("s3 delete failed: %w", err)
	}
	return nil
}

// PublicURL returns the CDN URL for a key, falling back to the bucket URL
func (c *S3Client) PublicURL(key string) string {
	if c.cdnURL != "" {
		return c.cdnURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", c.bucket, key)
}

// GenerateKey creates a unique storage key under prefix/yyyy/mm/.
// The original file name is dropped; only its lower-cased extension survives.
func GenerateKey(prefix, filename string, now time.Time) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("%s/%d/%02d/%s%s", prefix, now.Year(), now.Month(), uuid.NewString(), ext)
}
