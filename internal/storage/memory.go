package storage

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
)

// LocalUploadToken is the token MemoryBucket puts on signed upload URLs.
const LocalUploadToken = "local"

type memoryObject struct {
	data        []byte
	contentType string
}

// MemoryBucket keeps objects in process for local development and tests.
type MemoryBucket struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string]memoryObject
}

func NewMemoryBucket(baseURL string) *MemoryBucket {
	return &MemoryBucket{baseURL: strings.TrimRight(baseURL, "/"), objects: map[string]memoryObject{}}
}

func (b *MemoryBucket) Upload(ctx context.Context, objectPath string, r io.Reader, contentType string) error {
	data, err := readAllLimited(r, MaxVideoBytes)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[objectPath] = memoryObject{data: data, contentType: contentType}
	return nil
}

func (b *MemoryBucket) Download(ctx context.Context, objectPath string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	obj, ok := b.objects[objectPath]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), obj.data...), nil
}

func (b *MemoryBucket) Remove(ctx context.Context, objectPaths ...string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, p := range objectPaths {
		delete(b.objects, p)
	}
	return nil
}

func (b *MemoryBucket) PublicURL(objectPath string) string {
	return b.baseURL + "/object/public/" + objectPath
}

func (b *MemoryBucket) SignedUploadURL(ctx context.Context, objectPath string) (string, error) {
	return b.baseURL + "/object/upload/sign/" + objectPath + "?token=" + LocalUploadToken, nil
}

// Has reports whether an object exists, along with its content type.
func (b *MemoryBucket) Has(objectPath string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	obj, ok := b.objects[objectPath]
	return obj.contentType, ok
}

// readAllLimited reads r up to limit+1 bytes so callers can detect oversize
// bodies without buffering them entirely.
func readAllLimited(r io.Reader, limit int64) ([]byte, error) {
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if n > limit {
		return nil, ErrTooLarge
	}
	return buf.Bytes(), nil
}
