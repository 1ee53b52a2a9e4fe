// Package assets generates presigned object-storage URLs so clients upload
// and download event media directly against S3.
package assets

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const defaultExpires = time.Hour

// Presigner is the slice of the S3 presign client the service uses.
type Presigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type BucketService struct {
	presigner Presigner
	bucket    string
	expires   time.Duration
}

func NewBucketService(presigner Presigner, bucket string, expires time.Duration) *BucketService {
	if expires <= 0 {
		expires = defaultExpires
	}
	return &BucketService{
		presigner: presigner,
		bucket:    bucket,
		expires:   expires,
	}
}

// EventPosterKey is the object key under which an event's poster image lives.
func EventPosterKey(eventID int64) string {
	return fmt.Sprintf("events/%d/poster", eventID)
}

// UploadURL returns a presigned PUT URL for the given object key.
func (s *BucketService) UploadURL(ctx context.Context, key string) (string, error) {
	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.expires))
	if err != nil {
		return "", fmt.Errorf("presign upload: %w", err)
	}
	return req.URL, nil
}

// DownloadURL returns a presigned GET URL for the given object key.
func (s *BucketService) DownloadURL(ctx context.Context, key string) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.expires))
	if err != nil {
		return "", fmt.Errorf("presign download: %w", err)
	}
	return req.URL, nil
}
