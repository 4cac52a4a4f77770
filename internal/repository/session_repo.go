package repository

import (
	"context"

	"github.com/lumenhq/lumen-api/internal/models"
	"github.com/lumenhq/lumen-api/internal/storage"
)

// SessionRepository persists the authenticated identity (a full denormalized
// user copy, not a reference) and the UI search history.
type SessionRepository interface {
	CurrentUser(ctx context.Context) (models.User, error)
	SetCurrentUser(ctx context.Context, user models.User) error
	ClearCurrentUser(ctx context.Context) error
	RecentSearches(ctx context.Context) ([]string, error)
	SaveRecentSearches(ctx context.Context, terms []string) error
	ClearRecentSearches(ctx context.Context) error
}

type sessionRepository struct {
	store *storage.Store
}

// NewSessionRepository instantiates a blob-backed repository.
func NewSessionRepository(store *storage.Store) SessionRepository {
	return &sessionRepository{store: store}
}

func (r *sessionRepository) CurrentUser(ctx context.Context) (models.User, error) {
	var user models.User
	err := r.store.View(ctx, func(tx *storage.Txn) error {
		return tx.Load(storage.KeyCurrentUser, &user)
	})
	if err != nil {
		return models.User{}, err
	}
	if user.Email == "" {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

func (r *sessionRepository) SetCurrentUser(ctx context.Context, user models.User) error {
	return r.store.Update(ctx, func(tx *storage.Txn) error {
		return tx.Save(storage.KeyCurrentUser, user)
	})
}

func (r *sessionRepository) ClearCurrentUser(ctx context.Context) error {
	return r.store.Update(ctx, func(tx *storage.Txn) error {
		return tx.Delete(storage.KeyCurrentUser)
	})
}

func (r *sessionRepository) RecentSearches(ctx context.Context) ([]string, error) {
	var terms []string
	err := r.store.View(ctx, func(tx *storage.Txn) error {
		return tx.Load(storage.KeyRecentSearches, &terms)
	})
	return terms, err
}

func (r *sessionRepository) SaveRecentSearches(ctx context.Context, terms []string) error {
	return r.store.Update(ctx, func(tx *storage.Txn) error {
		return tx.Save(storage.KeyRecentSearches, terms)
	})
}

func (r *sessionRepository) ClearRecentSearches(ctx context.Context) error {
	return r.store.Update(ctx, func(tx *storage.Txn) error {
		return tx.Delete(storage.KeyRecentSearches)
	})
}
