package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/bytebrief/bytebrief/pkg/config"
)

// MaxImageSize is the upload size limit
const MaxImageSize = 5 << 20 // 5MB

var (
	// ErrTooLarge is returned for uploads over MaxImageSize
	ErrTooLarge = errors.New("image exceeds the 5MB limit")
	// ErrUnsupportedType is returned for non-image uploads
	ErrUnsupportedType = errors.New("only image uploads are accepted")
)

// ImageStore uploads post images to S3 and hands back public URLs
type ImageStore struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewImageStore creates the S3-backed image store
func NewImageStore(ctx context.Context, cfg *config.StorageConfig) (*ImageStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	base := cfg.PublicBaseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &ImageStore{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(base, "/"),
	}, nil
}

// ValidateImage enforces the size and MIME-type limits before any
// bytes reach S3.
func ValidateImage(contentType string, size int64) error {
	if size > MaxImageSize {
		return ErrTooLarge
	}
	if !strings.HasPrefix(contentType, "image/") {
		return ErrUnsupportedType
	}
	return nil
}

// Upload stores an image under a fresh uuid key and returns its
// public URL.
func (s *ImageStore) Upload(ctx context.Context, filename, contentType string, size int64, body io.Reader) (string, error) {
	if err := ValidateImage(contentType, size); err != nil {
		return "", err
	}

	key := "uploads/" + uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return "", fmt.Errorf("uploading image: %w", err)
	}

	return s.publicBaseURL + "/" + key, nil
}

// Delete removes an uploaded object by key
func (s *ImageStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}
