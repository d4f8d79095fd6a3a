package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// LocalProvider stores uploads on the local filesystem under a base path
type LocalProvider struct {
	basePath string
	logger   *logrus.Logger
}

// NewLocalProvider creates a local filesystem provider, creating the base
// path when missing
func NewLocalProvider(basePath string, logger *logrus.Logger) (*LocalProvider, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path is required for local storage")
	}
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base path: %w", err)
	}
	return &LocalProvider{basePath: basePath, logger: logger}, nil
}

func (p *LocalProvider) fullPath(path string) string {
	return filepath.Join(p.basePath, filepath.Clean("/"+path))
}

// Store writes content under path
func (p *LocalProvider) Store(ctx context.Context, path string, content io.Reader) error {
	fullPath := p.fullPath(path)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, content); err != nil {
		return fmt.Errorf("failed to write content: %w", err)
	}

	p.logger.WithField("path", path).Info("Stored file on local filesystem")
	return nil
}

// Open streams a stored file
func (p *LocalProvider) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	file, err := os.Open(p.fullPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// Delete removes a stored file
func (p *LocalProvider) Delete(ctx context.Context, path string) error {
	if err := os.Remove(p.fullPath(path)); err != nil {
		if os.IsNotExist(err) {
			return nil // Already deleted
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Exists checks whether a file is present
func (p *LocalProvider) Exists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(p.fullPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check file existence: %w", err)
	}
	return true, nil
}
