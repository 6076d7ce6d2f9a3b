package repository

import (
	"context"
	"fmt"
	"time"

	"salestrack/database"
	"salestrack/models"
)

type CredentialRepository interface {
	// GetByEmail returns database.ErrNotFound for unknown addresses.
	GetByEmail(ctx context.Context, email string) (*models.Credential, error)
	Exists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, cred *models.Credential) error
	UpdatePasswordHash(ctx context.Context, email, hash string, at time.Time) error
}

type credentialRepository struct {
	store database.DocumentStore
}

func NewCredentialRepository(store database.DocumentStore) CredentialRepository {
	return &credentialRepository{store: store}
}

func (r *credentialRepository) GetByEmail(ctx context.Context, email string) (*models.Credential, error) {
	var cred models.Credential
	if err := r.store.Get(ctx, database.CredentialPath(email), &cred); err != nil {
		return nil, err
	}
	return &cred, nil
}

func (r *credentialRepository) Exists(ctx context.Context, email string) (bool, error) {
	return r.store.Exists(ctx, database.CredentialPath(email))
}

func (r *credentialRepository) Create(ctx context.Context, cred *models.Credential) error {
	if err := r.store.Set(ctx, database.CredentialPath(cred.Email), cred); err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}
	return nil
}

func (r *credentialRepository) UpdatePasswordHash(ctx context.Context, email, hash string, at time.Time) error {
	return r.store.Merge(ctx, database.CredentialPath(email), map[string]any{
		"passwordHash": hash,
		"updatedAt":    at,
	})
}
