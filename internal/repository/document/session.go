package document

import (
	"context"
	"fmt"

	"github.com/Rafa37412/CeFoods/internal/entity"
	"github.com/Rafa37412/CeFoods/internal/kv"
	"github.com/Rafa37412/CeFoods/internal/repository"
)

type sessionRepository struct {
	store kv.Store
}

// NewSessionRepository creates a SessionRepository over the current-session document.
func NewSessionRepository(store kv.Store) repository.SessionRepository {
	return &sessionRepository{store: store}
}

func (r *sessionRepository) Load(ctx context.Context) (entity.Session, bool, error) {
	s, _, err := kv.Load[entity.Session](ctx, r.store, KeySession)
	if err != nil {
		return entity.Session{}, false, err
	}
	return s, s.AccountID != "", nil
}

func (r *sessionRepository) Save(ctx context.Context, session entity.Session) error {
	_, err := kv.Update(ctx, r.store, KeySession, func(s *entity.Session) error {
		*s = session
		return nil
	})
	return err
}

func (r *sessionRepository) Clear(ctx context.Context) error {
	return deleteKey(ctx, r.store, KeySession)
}

func deleteKey(ctx context.Context, store kv.Store, key string) error {
	doc, err := store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", key, err)
	}
	if !doc.Exists() {
		return nil
	}
	if err := store.Commit(ctx, kv.Delete(key, doc.Version)); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
