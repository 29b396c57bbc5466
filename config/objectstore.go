package config

import (
	"context"
	"time"

	"TodoAPI/storage"
)

// InitObjectStore connects to MinIO when minio_endpoint is set.
// It returns (nil, nil) otherwise; task export then answers 503.
func InitObjectStore(ctx context.Context, cfg *Config) (storage.ObjectStore, error) {
	if cfg.MinioEndpoint == "" {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	store, err := storage.NewMinioStore(ctx, storage.MinioOptions{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		UseSSL:    cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}
