package repository

import (
	"context"
	"errors"
	"fmt"

	"salestrack/database"
)

// findOptional decodes the document at path, or returns nil when it is absent.
func findOptional[T any](ctx context.Context, store database.DocumentStore, path string) (*T, error) {
	var v T
	err := store.Get(ctx, path, &v)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return &v, nil
}

// Entry is a decoded document together with its id.
type Entry[T any] struct {
	ID    string
	Value T
}

func listAs[T any](ctx context.Context, store database.DocumentStore, collection string) ([]Entry[T], error) {
	docs, err := store.List(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}

	entries := make([]Entry[T], 0, len(docs))
	for _, doc := range docs {
		var v T
		if err := doc.DataTo(&v); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", doc.Path, err)
		}
		entries = append(entries, Entry[T]{ID: doc.ID, Value: v})
	}
	return entries, nil
}
