package repository

import (
	"context"
	"errors"

	"github.com/lumenhq/lumen-api/internal/models"
	"github.com/lumenhq/lumen-api/internal/storage"
)

// Uniqueness violations surfaced by Create.
var (
	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already registered")
)

// UserRepository defines persistence operations for identity records.
type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, idOrEmail string) (models.User, error)
	Create(ctx context.Context, user models.User) error
	Update(ctx context.Context, idOrEmail string, apply func(*models.User) error) (models.User, error)
}

type userRepository struct {
	store *storage.Store
}

// NewUserRepository instantiates a blob-backed repository.
func NewUserRepository(store *storage.Store) UserRepository {
	return &userRepository{store: store}
}

func loadUsers(tx *storage.Txn) ([]models.User, error) {
	var users []models.User
	if err := tx.Load(storage.KeyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.store.View(ctx, func(tx *storage.Txn) error {
		var loadErr error
		users, loadErr = loadUsers(tx)
		return loadErr
	})
	return users, err
}

func (r *userRepository) Get(ctx context.Context, idOrEmail string) (models.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return models.User{}, err
	}

	for _, user := range users {
		if user.Matches(idOrEmail) {
			return user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

// Create enforces email and username uniqueness within the write transaction.
func (r *userRepository) Create(ctx context.Context, user models.User) error {
	return r.store.Update(ctx, func(tx *storage.Txn) error {
		users, err := loadUsers(tx)
		if err != nil {
			return err
		}

		for _, existing := range users {
			if existing.Email == user.Email {
				return ErrEmailTaken
			}
			if existing.Username == user.Username {
				return ErrUsernameTaken
			}
		}

		users = append(users, user)
		return tx.Save(storage.KeyUsers, users)
	})
}

// Update merges profile changes and, when the updated identity matches the
// persisted session, refreshes the session copy in the same transaction.
func (r *userRepository) Update(ctx context.Context, idOrEmail string, apply func(*models.User) error) (models.User, error) {
	var updated models.User
	err := r.store.Update(ctx, func(tx *storage.Txn) error {
		users, err := loadUsers(tx)
		if err != nil {
			return err
		}

		for i := range users {
			if !users[i].Matches(idOrEmail) {
				continue
			}
			if err := apply(&users[i]); err != nil {
				return err
			}
			updated = users[i]
			if err := tx.Save(storage.KeyUsers, users); err != nil {
				return err
			}

			var session models.User
			if err := tx.Load(storage.KeyCurrentUser, &session); err != nil {
				return err
			}
			if session.Email != "" && session.Email == updated.Email {
				return tx.Save(storage.KeyCurrentUser, updated)
			}
			return nil
		}
		return storage.ErrNotFound
	})
	return updated, err
}
