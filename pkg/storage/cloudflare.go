package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	internalConfig "github.com/sefazor/eventhub-backend/internal/config"
	"go.uber.org/zap"
)

// CloudflareStorage stores event pictures in an R2 bucket through the S3 API.
type CloudflareStorage struct {
	client    *s3.Client
	bucket    string
	publicURL string
	log       *zap.Logger
}

func NewCloudflareStorage(ctx context.Context, cfg internalConfig.R2Config, log *zap.Logger) (*CloudflareStorage, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = endpoint + "/" + cfg.Bucket
	}

	return &CloudflareStorage{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		log:       log.Named("r2"),
	}, nil
}

// Upload dosyayı R2'ye yükler
func (s *CloudflareStorage) Upload(ctx context.Context, key string, src io.Reader, size int64, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          src,
		ContentLength: aws.Int64(size),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("failed to upload to R2: %w", err)
	}

	s.log.Debug("object uploaded", zap.String("bucket", s.bucket), zap.String("key", key), zap.Int64("size", size))
	return nil
}

func (s *CloudflareStorage) PublicURL(key string) string {
	return s.publicURL + "/" + strings.TrimLeft(key, "/")
}
