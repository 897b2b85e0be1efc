package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const s3KeyPrefix = "events"

type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3ImageStore keeps images in a bucket fronted by publicBaseURL, e.g. a
// CloudFront distribution or the bucket website endpoint.
type S3ImageStore struct {
	client        S3API
	bucket        string
	publicBaseURL string
}

func NewS3ImageStore(client S3API, bucket, publicBaseURL string) *S3ImageStore {
	return &S3ImageStore{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}
}

func (s *S3ImageStore) Save(ctx context.Context, name, contentType string, body io.Reader) (string, error) {
	key := path.Join(s3KeyPrefix, path.Base(name))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image to S3: %w", err)
	}

	return s.publicBaseURL + "/" + key, nil
}

func (s *S3ImageStore) Delete(ctx context.Context, src string) error {
	if !strings.HasPrefix(src, s.publicBaseURL+"/") {
		return nil
	}

	key := strings.TrimPrefix(src, s.publicBaseURL+"/")

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete image from S3: %w", err)
	}

	return nil
}
