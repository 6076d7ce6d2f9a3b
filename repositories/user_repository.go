package repository

import (
	"context"
	"fmt"

	"salestrack/database"
	"salestrack/models"
)

type UserRepository interface {
	// GetByID returns database.ErrNotFound for unknown ids.
	GetByID(ctx context.Context, uid string) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, uid string, fields map[string]any) error
}

type userRepository struct {
	store database.DocumentStore
}

func NewUserRepository(store database.DocumentStore) UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) GetByID(ctx context.Context, uid string) (*models.User, error) {
	var user models.User
	if err := r.store.Get(ctx, database.UserPath(uid), &user); err != nil {
		return nil, err
	}
	if user.UID == "" {
		user.UID = uid
	}
	return &user, nil
}

func (r *userRepository) GetAll(ctx context.Context) ([]models.User, error) {
	entries, err := listAs[models.User](ctx, r.store, database.CollectionUsers)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, len(entries))
	for _, e := range entries {
		if e.Value.UID == "" {
			e.Value.UID = e.ID
		}
		users = append(users, e.Value)
	}
	return users, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.store.Set(ctx, database.UserPath(user.UID), user); err != nil {
		return fmt.Errorf("failed to create user %s: %w", user.UID, err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, uid string, fields map[string]any) error {
	if err := r.store.Merge(ctx, database.UserPath(uid), fields); err != nil {
		return fmt.Errorf("failed to update user %s: %w", uid, err)
	}
	return nil
}
