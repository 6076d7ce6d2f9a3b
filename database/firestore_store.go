package database

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore talks to Cloud Firestore, whose native model already is the
// collection/document tree the paths describe.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore uses Application Default Credentials
// (GOOGLE_APPLICATION_CREDENTIALS or the metadata server).
func NewFirestoreStore(ctx context.Context, projectID string) (*FirestoreStore, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}
	return &FirestoreStore{client: client}, nil
}

func (s *FirestoreStore) doc(path string) (*firestore.DocumentRef, error) {
	if err := ValidateDocumentPath(path); err != nil {
		return nil, err
	}
	ref := s.client.Doc(normalize(path))
	if ref == nil {
		return nil, fmt.Errorf("invalid document path %q", path)
	}
	return ref, nil
}

func (s *FirestoreStore) Get(ctx context.Context, path string, dst any) error {
	ref, err := s.doc(path)
	if err != nil {
		return err
	}

	snap, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return snap.DataTo(dst)
}

func (s *FirestoreStore) Exists(ctx context.Context, path string) (bool, error) {
	ref, err := s.doc(path)
	if err != nil {
		return false, err
	}

	snap, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return snap.Exists(), nil
}

func (s *FirestoreStore) Set(ctx context.Context, path string, doc any) error {
	ref, err := s.doc(path)
	if err != nil {
		return err
	}
	_, err = ref.Set(ctx, doc)
	return err
}

func (s *FirestoreStore) Merge(ctx context.Context, path string, fields map[string]any) error {
	ref, err := s.doc(path)
	if err != nil {
		return err
	}
	_, err = ref.Set(ctx, fields, firestore.MergeAll)
	return err
}

func (s *FirestoreStore) List(ctx context.Context, collection string) ([]Document, error) {
	if err := ValidateCollectionPath(collection); err != nil {
		return nil, err
	}

	iter := s.client.Collection(normalize(collection)).Documents(ctx)
	defer iter.Stop()

	var docs []Document
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterating %s: %w", collection, err)
		}
		docs = append(docs, NewDocument(normalize(collection)+"/"+snap.Ref.ID, snap.DataTo))
	}
	return docs, nil
}

func (s *FirestoreStore) Ping(ctx context.Context) error {
	iter := s.client.Collection(CollectionUsers).Limit(1).Documents(ctx)
	defer iter.Stop()

	if _, err := iter.Next(); err != nil && err != iterator.Done {
		return err
	}
	return nil
}

func (s *FirestoreStore) Close(ctx context.Context) error {
	return s.client.Close()
}
