package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when no document exists at the path.
var ErrNotFound = errors.New("document not found")

// DocumentStore addresses documents by slash-separated paths that alternate
// collection and document ids, e.g. "users/{uid}/prospects/{id}".
//
// Every call is a single round trip. There is no cross-document transaction:
// read-then-write sequences built on top of it are last-write-wins.
type DocumentStore interface {
	Get(ctx context.Context, path string, dst any) error
	Exists(ctx context.Context, path string) (bool, error)
	// Set overwrites the whole document.
	Set(ctx context.Context, path string, doc any) error
	// Merge creates the document if needed and overwrites only the given
	// top-level fields.
	Merge(ctx context.Context, path string, fields map[string]any) error
	// List returns the documents directly inside a collection, ordered by id.
	List(ctx context.Context, collection string) ([]Document, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type Document struct {
	ID     string
	Path   string
	decode func(dst any) error
}

func NewDocument(path string, decode func(dst any) error) Document {
	return Document{ID: LastSegment(path), Path: path, decode: decode}
}

// DataTo decodes the document body into dst.
func (d Document) DataTo(dst any) error {
	if d.decode == nil {
		return fmt.Errorf("document %s has no data", d.Path)
	}
	return d.decode(dst)
}

func segments(path string) []string {
	return strings.Split(strings.Trim(path, "/"), "/")
}

// ValidateDocumentPath checks that path names a document (even segment count).
func ValidateDocumentPath(path string) error {
	parts := segments(path)
	if len(parts)%2 != 0 || hasBadSegment(parts) {
		return fmt.Errorf("invalid document path %q", path)
	}
	return nil
}

// ValidateCollectionPath checks that path names a collection (odd segment count).
func ValidateCollectionPath(path string) error {
	parts := segments(path)
	if len(parts)%2 != 1 || hasBadSegment(parts) {
		return fmt.Errorf("invalid collection path %q", path)
	}
	return nil
}

func hasBadSegment(parts []string) bool {
	for _, p := range parts {
		if p == "" || p == "." || p == ".." {
			return true
		}
	}
	return false
}

// ParentCollection returns the collection path that contains the document path.
func ParentCollection(path string) string {
	parts := segments(path)
	return strings.Join(parts[:len(parts)-1], "/")
}

func LastSegment(path string) string {
	parts := segments(path)
	return parts[len(parts)-1]
}
