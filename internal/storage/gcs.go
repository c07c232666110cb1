// Package storage archives accepted scan photos to Cloud Storage.
package storage

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type PhotoStore struct {
	client *storage.Client
	bucket string
}

// NewPhotoStore returns nil when no bucket is configured; callers treat
// a nil store as "archiving disabled".
func NewPhotoStore(ctx context.Context, bucket, credentialsFile string) (*PhotoStore, error) {
	if bucket == "" {
		return nil, nil
	}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &PhotoStore{client: client, bucket: bucket}, nil
}

// Save writes the photo under scans/<key> and returns its public URL.
func (s *PhotoStore) Save(ctx context.Context, key string, data []byte, mimeType string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("photo store is not configured")
	}
	object := fmt.Sprintf("scans/%s", key)

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	w := s.client.Bucket(s.bucket).Object(object).NewWriter(ctx)
	w.ContentType = mimeType
	w.CacheControl = "public, max-age=86400"
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, object), nil
}

func (s *PhotoStore) Close() error {
	if s == nil {
		return nil
	}
	return s.client.Close()
}
