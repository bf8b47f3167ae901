package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// uploadsPrefix is the serving path for locally stored media
const uploadsPrefix = "/uploads/"

// localStore keeps media files on the local filesystem under a public
// directory, served by the HTTP tier at /uploads
type localStore struct {
	dir string
}

// NewLocalStore returns a media store writing under dir
func NewLocalStore(dir string) Store {
	return &localStore{dir: dir}
}

func (l *localStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	path := filepath.Join(l.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return uploadsPrefix + name, nil
}

func (l *localStore) Delete(ctx context.Context, url string) error {
	// Only touch URLs we produced; remote URLs belong to another backend
	if !strings.HasPrefix(url, uploadsPrefix) {
		return nil
	}

	name := filepath.Base(strings.TrimPrefix(url, uploadsPrefix))
	if err := os.Remove(filepath.Join(l.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", name, err)
	}
	return nil
}

func (l *localStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(l.dir, filepath.Base(name)))
}
