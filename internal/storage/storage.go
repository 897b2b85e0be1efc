// Package storage persists uploaded event images and maps them to the public
// URLs stored on event image rows.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"uprala/internal/utils"
)

// ImageStore saves images under a generated name and returns the src clients
// should use to fetch them.
type ImageStore interface {
	Save(ctx context.Context, name, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, src string) error
}

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

// SniffImage inspects the first bytes of an upload and reports its content
// type and file extension. ok is false for anything that is not an image.
func SniffImage(head []byte) (contentType, ext string, ok bool) {
	contentType = http.DetectContentType(head)
	ext, ok = imageExtensions[contentType]
	return contentType, ext, ok
}

// ObjectName builds a collision-resistant file name for an upload.
func ObjectName(ext string, now time.Time) string {
	return fmt.Sprintf("%d-%s%s", now.UnixMilli(), utils.FileToken(), ext)
}
