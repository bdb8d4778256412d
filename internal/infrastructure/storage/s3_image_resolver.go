package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/decora/storefront/internal/infrastructure/config"
)

const defaultPresignExpiration = 15 * time.Minute

// S3ImageResolver presigns GET requests for image keys in one bucket.
// Presigning is local, so no request reaches S3 until the browser loads
// the image.
type S3ImageResolver struct {
	presignClient *s3.PresignClient
	bucket        string
	expiration    time.Duration
}

// NewS3ImageResolver builds a resolver against an S3 compatible endpoint
func NewS3ImageResolver(ctx context.Context, cfg config.StorageConfig) (*S3ImageResolver, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, errors.New("storage access key and secret key are required")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	var endpoint string
	if cfg.Endpoint != "" {
		endpoint, err = normalizeEndpoint(cfg.Endpoint, cfg.UseSSL)
		if err != nil {
			return nil, err
		}
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	expiration := cfg.PresignExpiration
	if expiration <= 0 {
		expiration = defaultPresignExpiration
	}
	return &S3ImageResolver{
		presignClient: s3.NewPresignClient(client),
		bucket:        cfg.Bucket,
		expiration:    expiration,
	}, nil
}

func (r *S3ImageResolver) ResolveImage(ctx context.Context, key string) (string, error) {
	if key == "" || isAbsoluteURL(key) {
		return key, nil
	}
	req, err := r.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(strings.TrimLeft(key, "/")),
	}, s3.WithPresignExpires(r.expiration))
	if err != nil {
		return "", fmt.Errorf("presign image %s: %w", key, err)
	}
	return req.URL, nil
}

func normalizeEndpoint(endpoint string, useSSL bool) (string, error) {
	if !isAbsoluteURL(endpoint) {
		if useSSL {
			endpoint = "https://" + endpoint
		} else {
			endpoint = "http://" + endpoint
		}
	}
	if _, err := url.Parse(endpoint); err != nil {
		return "", fmt.Errorf("invalid storage endpoint: %w", err)
	}
	return endpoint, nil
}

// NewImageResolver picks S3 presigning when a bucket is configured
func NewImageResolver(ctx context.Context, cfg config.StorageConfig) (ImageResolver, error) {
	if cfg.Bucket == "" {
		return NewStaticImageResolver(cfg.ImageBaseURL), nil
	}
	return NewS3ImageResolver(ctx, cfg)
}

var _ ImageResolver = (*S3ImageResolver)(nil)
