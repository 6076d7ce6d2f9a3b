package database

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MemoryStore keeps documents as JSON in a map. It backs tests and the
// "memory" driver for local runs; nothing survives a restart.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func normalize(path string) string {
	return strings.Trim(path, "/")
}

func (s *MemoryStore) Get(ctx context.Context, path string, dst any) error {
	if err := ValidateDocumentPath(path); err != nil {
		return err
	}

	s.mu.RLock()
	data, ok := s.docs[normalize(path)]
	s.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	return json.Unmarshal(data, dst)
}

func (s *MemoryStore) Exists(ctx context.Context, path string) (bool, error) {
	if err := ValidateDocumentPath(path); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.docs[normalize(path)]
	return ok, nil
}

func (s *MemoryStore) Set(ctx context.Context, path string, doc any) error {
	if err := ValidateDocumentPath(path); err != nil {
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document %s: %w", path, err)
	}

	s.mu.Lock()
	s.docs[normalize(path)] = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Merge(ctx context.Context, path string, fields map[string]any) error {
	if err := ValidateDocumentPath(path); err != nil {
		return err
	}
	key := normalize(path)

	s.mu.Lock()
	defer s.mu.Unlock()

	current := map[string]json.RawMessage{}
	if data, ok := s.docs[key]; ok {
		if err := json.Unmarshal(data, &current); err != nil {
			return fmt.Errorf("failed to decode document %s: %w", path, err)
		}
	}
	for field, value := range fields {
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to encode field %s of %s: %w", field, path, err)
		}
		current[field] = encoded
	}

	data, err := json.Marshal(current)
	if err != nil {
		return err
	}
	s.docs[key] = data
	return nil
}

func (s *MemoryStore) List(ctx context.Context, collection string) ([]Document, error) {
	if err := ValidateCollectionPath(collection); err != nil {
		return nil, err
	}
	parent := normalize(collection)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var paths []string
	for p := range s.docs {
		if ParentCollection(p) == parent {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	docs := make([]Document, 0, len(paths))
	for _, p := range paths {
		data := s.docs[p]
		docs = append(docs, NewDocument(p, func(dst any) error {
			return json.Unmarshal(data, dst)
		}))
	}
	return docs, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Len reports how many documents are stored.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
