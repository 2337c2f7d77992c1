package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds the connection settings for an S3-compatible bucket.
type S3Config struct {
	KeyID     string
	Secret    string
	Endpoint  string // host, or full URL; empty uses AWS
	Region    string
	Bucket    string
	PublicURL string // prefix for object URLs; empty derives one from the endpoint
}

// S3Store puts objects into an S3-compatible bucket with path-style addressing.
type S3Store struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewS3Store creates an S3Store.
func NewS3Store(cfg S3Config) *S3Store {
	opts := s3.Options{
		Region:       cfg.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.KeyID, cfg.Secret, ""),
		UsePathStyle: true,
	}
	endpoint := cfg.Endpoint
	if endpoint != "" && !strings.Contains(endpoint, "://") {
		endpoint = "https://" + endpoint
	}
	if endpoint != "" {
		opts.BaseEndpoint = aws.String(endpoint)
	}

	public := strings.TrimRight(cfg.PublicURL, "/")
	if public == "" {
		if endpoint != "" {
			public = strings.TrimRight(endpoint, "/") + "/" + cfg.Bucket
		} else {
			public = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}
	return &S3Store{client: s3.New(opts), bucket: cfg.Bucket, publicURL: public}
}

// Put implements Store.
func (s *S3Store) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		CacheControl:  aws.String("public, max-age=3600"),
	})
	if err != nil {
		return "", fmt.Errorf("put object %q: %w", key, err)
	}
	return s.URL(key), nil
}

// URL returns the public URL of key.
func (s *S3Store) URL(key string) string {
	return s.publicURL + "/" + key
}
