package documents

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/marklab/annotator/internal/models"
)

// FilesystemStore implements Store on a local directory tree. Writes go to
// a temp file in the target directory followed by a rename, so readers only
// ever see the fully-old or fully-new document.
type FilesystemStore struct {
	basePath string
}

// NewFilesystemStore creates a filesystem-backed document store rooted at basePath
func NewFilesystemStore(basePath string) (*FilesystemStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("creating document storage directory: %w", err)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("resolving document storage path: %w", err)
	}

	return &FilesystemStore{basePath: absPath}, nil
}

// Exists reports whether a document file is present for the key
func (fs *FilesystemStore) Exists(ctx context.Context, key string) (bool, error) {
	path, err := fs.resolve(key)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("checking document %s: %w", key, err)
	}
	return true, nil
}

// Read loads and parses the document for the key
func (fs *FilesystemStore) Read(ctx context.Context, key string) (*models.Document, error) {
	path, err := fs.resolve(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading document %s: %w", key, err)
	}

	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing document %s: %w", key, err)
	}
	return &doc, nil
}

// Write atomically replaces the document for the key. The document is
// written to a temp file next to the target and renamed into place; the
// temp file is removed on failure.
func (fs *FilesystemStore) Write(ctx context.Context, key string, doc *models.Document) error {
	path, err := fs.resolve(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating document directory: %w", err)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding document %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".doc-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp document: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp document: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing document %s: %w", key, err)
	}
	return nil
}

// resolve maps a document key onto the base path, rejecting keys that
// escape it.
func (fs *FilesystemStore) resolve(key string) (string, error) {
	cleaned := filepath.Clean(filepath.Join(fs.basePath, key))
	if cleaned != fs.basePath && !strings.HasPrefix(cleaned, fs.basePath+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid document key: %s", key)
	}
	return cleaned, nil
}
