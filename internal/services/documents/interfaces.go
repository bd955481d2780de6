package documents

import (
	"context"
	"errors"

	"github.com/marklab/annotator/internal/models"
)

var (
	// ErrNotFound is returned when no document exists for a key. Callers
	// treat this as "no annotations yet", not a failure.
	ErrNotFound = errors.New("document not found")
)

// Store is the persistence gateway for annotation documents, one document
// per video. Write must be atomic: a reader never observes a partially
// written document.
type Store interface {
	// Exists reports whether a document is present for the key
	Exists(ctx context.Context, key string) (bool, error)

	// Read loads the document for the key, or ErrNotFound
	Read(ctx context.Context, key string) (*models.Document, error)

	// Write atomically replaces the document for the key
	Write(ctx context.Context, key string, doc *models.Document) error
}
