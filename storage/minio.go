// Package storage holds the object-storage adapter used for task exports.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStore is the subset of object storage the services need.
type ObjectStore interface {
	Put(ctx context.Context, objectName string, data []byte, contentType string) (ObjectInfo, error)
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Bucket string `json:"bucket"`
	Key    string `json:"object"`
	Size   int64  `json:"size"`
	ETag   string `json:"etag,omitempty"`
}

// MinioOptions configures NewMinioStore.
type MinioOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MinioStore writes objects into a single MinIO/S3 bucket.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore connects to MinIO and creates the bucket if it does not exist yet.
func NewMinioStore(ctx context.Context, opts MinioOptions) (*MinioStore, error) {
	if opts.Endpoint == "" || opts.Bucket == "" {
		return nil, errors.New("minio endpoint and bucket must be set")
	}
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %q: %w", opts.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %q: %w", opts.Bucket, err)
		}
	}
	return &MinioStore{client: client, bucket: opts.Bucket}, nil
}

// Put uploads data under objectName.
func (s *MinioStore) Put(ctx context.Context, objectName string, data []byte, contentType string) (ObjectInfo, error) {
	info, err := s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("upload %s/%s: %w", s.bucket, objectName, err)
	}
	return ObjectInfo{Bucket: s.bucket, Key: objectName, Size: info.Size, ETag: info.ETag}, nil
}
