package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// LocalImageStore writes images to a directory that the server also exposes
// under urlPrefix.
type LocalImageStore struct {
	root      string
	urlPrefix string
}

func NewLocalImageStore(root, urlPrefix string) (*LocalImageStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media root %s: %w", root, err)
	}

	return &LocalImageStore{
		root:      root,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
	}, nil
}

func (s *LocalImageStore) Save(ctx context.Context, name, contentType string, body io.Reader) (string, error) {
	name = filepath.Base(name)

	f, err := os.OpenFile(filepath.Join(s.root, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %w", err)
	}

	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("failed to write media file: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close media file: %w", err)
	}

	return s.urlPrefix + "/" + name, nil
}

// Delete removes the file behind src. Sources outside the media prefix and
// files that are already gone are ignored.
func (s *LocalImageStore) Delete(ctx context.Context, src string) error {
	if !strings.HasPrefix(src, s.urlPrefix+"/") {
		return nil
	}

	name := filepath.Base(strings.TrimPrefix(src, s.urlPrefix+"/"))
	err := os.Remove(filepath.Join(s.root, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete media file: %w", err)
	}

	return nil
}

// URLPrefix is the route the media directory is served under.
func (s *LocalImageStore) URLPrefix() string {
	return s.urlPrefix
}

// Handler serves the media directory. Directory listings are not exposed.
func (s *LocalImageStore) Handler() http.Handler {
	files := http.FileServer(http.Dir(s.root))
	return http.StripPrefix(s.urlPrefix+"/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	}))
}
