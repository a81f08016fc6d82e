package utils

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Uploader struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewS3Uploader(cfg aws.Config, region, bucket, publicURL string) *S3Uploader {
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if region != "" {
			o.Region = region
		}
	})
	return &S3Uploader{client: client, bucket: bucket, publicURL: publicURL}
}

// Upload stores body under key and returns the URL it can be fetched from.
func (u *S3Uploader) Upload(ctx context.Context, key, contentType string, body []byte) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return ObjectURL(u.publicURL, u.bucket, key), nil
}

// ObjectURL prefers the public (CDN) base URL and falls back to the
// s3:// location.
func ObjectURL(publicURL, bucket, key string) string {
	if publicURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(publicURL, "/"), key)
	}
	return fmt.Sprintf("s3://%s/%s", bucket, key)
}
