package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	storage_go "github.com/supabase-community/storage-go"
)

// SupabaseBucket stores objects in one Supabase Storage bucket.
type SupabaseBucket struct {
	client  *storage_go.Client
	bucket  string
	baseURL string
}

// NewSupabaseBucket wraps client. baseURL is the project URL used to make the
// relative signed upload URLs returned by the API absolute.
func NewSupabaseBucket(client *storage_go.Client, bucket, baseURL string) *SupabaseBucket {
	return &SupabaseBucket{client: client, bucket: bucket, baseURL: strings.TrimRight(baseURL, "/")}
}

func (b *SupabaseBucket) Upload(ctx context.Context, objectPath string, r io.Reader, contentType string) error {
	upsert := true
	_, err := b.client.UploadFile(b.bucket, objectPath, r, storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", objectPath, err)
	}
	return nil
}

func (b *SupabaseBucket) Download(ctx context.Context, objectPath string) ([]byte, error) {
	data, err := b.client.DownloadFile(b.bucket, objectPath)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", objectPath, err)
	}
	return data, nil
}

func (b *SupabaseBucket) Remove(ctx context.Context, objectPaths ...string) error {
	if len(objectPaths) == 0 {
		return nil
	}
	if _, err := b.client.RemoveFile(b.bucket, objectPaths); err != nil {
		return fmt.Errorf("failed to remove objects: %w", err)
	}
	return nil
}

func (b *SupabaseBucket) PublicURL(objectPath string) string {
	return b.client.GetPublicUrl(b.bucket, objectPath).SignedURL
}

func (b *SupabaseBucket) SignedUploadURL(ctx context.Context, objectPath string) (string, error) {
	resp, err := b.client.CreateSignedUploadUrl(b.bucket, objectPath)
	if err != nil {
		return "", fmt.Errorf("could not generate upload URL: %w", err)
	}
	uploadURL := resp.Url
	if !strings.HasPrefix(uploadURL, "http") {
		uploadURL = b.baseURL + "/" + strings.TrimLeft(uploadURL, "/")
	}
	return uploadURL, nil
}
