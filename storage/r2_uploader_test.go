package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutObject struct {
	input *s3.PutObjectInput
	body  string
	etag  *string
	err   error
}

func (f *fakePutObject) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	if params.Body != nil {
		b, _ := io.ReadAll(params.Body)
		f.body = string(b)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{ETag: f.etag}, nil
}

func TestNewCloudflareR2Uploader_RequiresAllFields(t *testing.T) {
	_, err := NewCloudflareR2Uploader(context.Background(), CloudflareR2UploaderConfig{AccountID: "acc"})
	assert.ErrorIs(t, err, ErrInvalidR2Config)
}

func TestCloudflareR2Uploader_Upload(t *testing.T) {
	fake := &fakePutObject{etag: aws.String(`"abc123"`)}
	u := newCloudflareR2Uploader(fake, "scores", "https://cdn.example.com/public")

	res, err := u.Upload(context.Background(), "leaderboards/x.json", "application/json", strings.NewReader(`[]`))
	require.NoError(t, err)

	assert.Equal(t, "scores", aws.ToString(fake.input.Bucket))
	assert.Equal(t, "leaderboards/x.json", aws.ToString(fake.input.Key))
	assert.Equal(t, "application/json", aws.ToString(fake.input.ContentType))
	assert.Equal(t, `[]`, fake.body)
	assert.Equal(t, "abc123", res.ETag)
	assert.Equal(t, "https://cdn.example.com/public/leaderboards/x.json", res.Location)
}

func TestCloudflareR2Uploader_UploadError(t *testing.T) {
	fake := &fakePutObject{err: errors.New("access denied")}
	u := newCloudflareR2Uploader(fake, "scores", "https://cdn.example.com")

	_, err := u.Upload(context.Background(), "k.json", "application/json", strings.NewReader(`[]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key: k.json")
	assert.Contains(t, err.Error(), "access denied")
}

func TestCloudflareR2Uploader_GetPublicURL(t *testing.T) {
	tests := []struct {
		base string
		key  string
		want string
	}{
		{"https://cdn.example.com", "a.json", "https://cdn.example.com/a.json"},
		{"https://cdn.example.com/", "/a.json", "https://cdn.example.com/a.json"},
		{"https://cdn.example.com/files", "dir/a.json", "https://cdn.example.com/files/dir/a.json"},
		{"https://cdn.example.com", "", ""},
		{"", "a.json", ""},
	}

	for _, tc := range tests {
		u := newCloudflareR2Uploader(nil, "b", tc.base)
		assert.Equal(t, tc.want, u.GetPublicURL(tc.key), "base=%q key=%q", tc.base, tc.key)
	}
}
