package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage stores files on the local filesystem under a single
// directory and serves them from the application's own HTTP server.
type LocalStorage struct {
	baseURL string
	dir     string
}

func NewLocalStorage(baseURL, dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorage{
		baseURL: strings.TrimRight(baseURL, "/"),
		dir:     dir,
	}, nil
}

func (s *LocalStorage) Save(ctx context.Context, key string, r io.Reader) (string, error) {
	fullPath := filepath.Join(s.dir, filepath.Base(key))
	f, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return s.URLFor(key), nil
}

func (s *LocalStorage) Open(key string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.dir, filepath.Base(key)))
}

func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *LocalStorage) URLFor(key string) string {
	return fmt.Sprintf("%s/image/machinery/%s", s.baseURL, filepath.Base(key))
}
