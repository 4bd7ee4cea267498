package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/momentumafrica/momentum-api/internal/logger"
)

// BlobService stores uploaded images (avatars, post attachments) in a GCS
// bucket and hands back retrievable URLs.
type BlobService struct {
	log       *logger.Logger
	client    *storage.Client
	bucket    string
	cdnDomain string
}

// NewBlobService connects the storage client. credentialsPath may be empty,
// in which case application default credentials apply.
func NewBlobService(ctx context.Context, log *logger.Logger, bucket, credentialsPath, cdnDomain string) (*BlobService, error) {
	if bucket == "" {
		return nil, fmt.Errorf("blob bucket name required")
	}

	var client *storage.Client
	var err error
	if credentialsPath != "" {
		client, err = storage.NewClient(ctx, option.WithCredentialsFile(credentialsPath), option.WithScopes(storage.ScopeReadWrite))
	} else {
		client, err = storage.NewClient(ctx, option.WithScopes(storage.ScopeReadWrite))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &BlobService{
		log:       log.With("service", "BlobService"),
		client:    client,
		bucket:    bucket,
		cdnDomain: cdnDomain,
	}, nil
}

// Upload writes the object and returns its public URL.
func (b *BlobService) Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := b.client.Bucket(b.bucket).Object(key).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to write object %q: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object %q: %w", key, err)
	}

	return b.PublicURL(key), nil
}

// Delete removes an object. Missing objects are not an error.
func (b *BlobService) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	err := b.client.Bucket(b.bucket).Object(key).Delete(ctx)
	if err != nil && err != storage.ErrObjectNotExist {
		return fmt.Errorf("failed to delete object %q: %w", key, err)
	}
	return nil
}

// ObjectKey reverses PublicURL, reporting whether the URL points at an
// object stored in this bucket.
func (b *BlobService) ObjectKey(url string) (string, bool) {
	prefixes := []string{fmt.Sprintf("https://storage.googleapis.com/%s/", b.bucket)}
	if b.cdnDomain != "" {
		prefixes = append(prefixes, fmt.Sprintf("https://%s/", b.cdnDomain))
	}
	for _, prefix := range prefixes {
		if key, ok := strings.CutPrefix(url, prefix); ok && key != "" {
			return key, true
		}
	}
	return "", false
}

// PublicURL builds the retrievable URL for a stored key, preferring the CDN
// domain when configured.
func (b *BlobService) PublicURL(key string) string {
	if b.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", b.cdnDomain, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", b.bucket, key)
}

// Close releases the underlying client.
func (b *BlobService) Close() {
	if b.client != nil {
		_ = b.client.Close()
	}
}
