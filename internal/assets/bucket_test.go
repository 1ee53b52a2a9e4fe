package assets

import (
	"context"
	"testing"
	"time"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePresigner struct {
	putBucket string
	putKey    string
	getBucket string
	getKey    string
}

func (f *fakePresigner) PresignPutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	f.putBucket = *params.Bucket
	f.putKey = *params.Key
	return &v4.PresignedHTTPRequest{URL: "https://bucket.example/" + *params.Key + "?put"}, nil
}

func (f *fakePresigner) PresignGetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	f.getBucket = *params.Bucket
	f.getKey = *params.Key
	return &v4.PresignedHTTPRequest{URL: "https://bucket.example/" + *params.Key + "?get"}, nil
}

func TestBucketServiceURLs(t *testing.T) {
	presigner := &fakePresigner{}
	svc := NewBucketService(presigner, "posters", time.Minute)

	key := EventPosterKey(42)
	assert.Equal(t, "events/42/poster", key)

	uploadURL, err := svc.UploadURL(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, "https://bucket.example/events/42/poster?put", uploadURL)
	assert.Equal(t, "posters", presigner.putBucket)
	assert.Equal(t, key, presigner.putKey)

	downloadURL, err := svc.DownloadURL(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, "https://bucket.example/events/42/poster?get", downloadURL)
	assert.Equal(t, "posters", presigner.getBucket)
	assert.Equal(t, key, presigner.getKey)
}
