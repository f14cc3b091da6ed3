// Package storage wraps the media bucket where avatars, images, videos and
// generated thumbnails live.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrTooLarge        = errors.New("file is too large")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrNotFound        = errors.New("object not found")
)

// Upload kinds accepted from clients.
const (
	KindImage  = "image"
	KindAvatar = "avatar"
	KindVideo  = "video"
)

const (
	MaxImageBytes int64 = 5 << 20
	MaxVideoBytes int64 = 100 << 20
)

// Bucket is the subset of object storage the service needs.
type Bucket interface {
	Upload(ctx context.Context, objectPath string, r io.Reader, contentType string) error
	Download(ctx context.Context, objectPath string) ([]byte, error)
	Remove(ctx context.Context, objectPaths ...string) error
	PublicURL(objectPath string) string
	// SignedUploadURL returns a URL the browser can PUT a large file to directly.
	SignedUploadURL(ctx context.Context, objectPath string) (string, error)
}

var allowed = map[string]map[string]string{
	KindImage: {
		"image/jpeg": ".jpg",
		"image/png":  ".png",
		"image/webp": ".webp",
		"image/gif":  ".gif",
	},
	KindVideo: {
		"video/mp4":       ".mp4",
		"video/webm":      ".webm",
		"video/quicktime": ".mov",
	},
}

var extAliases = map[string]string{".jpeg": ".jpg", ".qt": ".mov"}

func normalizeKind(kind string) string {
	if kind == KindAvatar {
		return KindImage
	}
	return kind
}

// ValidateUpload checks the declared content type, the file extension and the
// size limit for kind. It returns the canonical extension for the stored object.
func ValidateUpload(kind, filename, contentType string, size int64) (string, error) {
	types, ok := allowed[normalizeKind(kind)]
	if !ok {
		return "", fmt.Errorf("%w: unknown upload kind %q", ErrUnsupportedType, kind)
	}
	contentType = strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	ext, ok := types[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %s is not accepted for %s uploads", ErrUnsupportedType, contentType, kind)
	}
	if filename != "" {
		got := strings.ToLower(path.Ext(filename))
		if alias, ok := extAliases[got]; ok {
			got = alias
		}
		if got != "" && got != ext {
			return "", fmt.Errorf("%w: extension %s does not match %s", ErrUnsupportedType, got, contentType)
		}
	}
	limit := MaxImageBytes
	if normalizeKind(kind) == KindVideo {
		limit = MaxVideoBytes
	}
	if size <= 0 {
		return "", fmt.Errorf("%w: empty file", ErrUnsupportedType)
	}
	if size > limit {
		return "", fmt.Errorf("%w: %d bytes exceeds the %d byte limit", ErrTooLarge, size, limit)
	}
	return ext, nil
}

// ObjectPath builds a unique object path inside the project's folder.
func ObjectPath(projectID uuid.UUID, kind, ext string) string {
	return fmt.Sprintf("%s/%ss/%s%s", projectID, kind, uuid.NewString(), ext)
}

// ThumbnailPath is where the generated poster of a video testimonial lives.
func ThumbnailPath(projectID, testimonialID uuid.UUID) string {
	return fmt.Sprintf("thumbnails/%s/%s.webp", projectID, testimonialID)
}

// OwnedBy reports whether objectPath was issued for projectID. Paths sent by
// clients are checked with it before being attached to a testimonial.
func OwnedBy(projectID uuid.UUID, objectPath string) bool {
	clean := path.Clean("/" + objectPath)
	if clean != "/"+objectPath {
		return false
	}
	prefix := projectID.String() + "/"
	return strings.HasPrefix(objectPath, prefix) || strings.HasPrefix(objectPath, "thumbnails/"+prefix)
}
