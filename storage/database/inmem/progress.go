package inmemdb

import (
	"context"

	"github.com/radianlabs/precalc/core/progress"
)

type progressRepository struct {
	db *progressTable
}

var _ progress.Repository = (*progressRepository)(nil) // interface compliance check

func NewProgressRepository(db *DB) *progressRepository {
	return &progressRepository{db: db.progress}
}

func (repo *progressRepository) GetProgress(ctx context.Context, userID, lessonPath string) ([]byte, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if raw, ok := repo.db.table[userID][lessonPath]; ok {
		cp := make([]byte, len(raw))
		copy(cp, raw)
		return cp, nil
	}
	return nil, progress.ErrNotFound
}

func (repo *progressRepository) UpsertProgress(ctx context.Context, userID, lessonPath string, raw []byte) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if repo.db.table[userID] == nil {
		repo.db.table[userID] = make(map[string][]byte)
	}
	cp := make([]byte, len(raw))
	copy(cp, raw)
	repo.db.table[userID][lessonPath] = cp
	return nil
}

func (repo *progressRepository) DeleteProgress(ctx context.Context, userID, lessonPath string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[userID][lessonPath]; !ok {
		return progress.ErrNotFound
	}
	delete(repo.db.table[userID], lessonPath)
	return nil
}

func (repo *progressRepository) GetNavigation(ctx context.Context, userID string) (progress.NavigationState, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if state, ok := repo.db.navigation[userID]; ok {
		return state, nil
	}
	return progress.NavigationState{}, progress.ErrNotFound
}

func (repo *progressRepository) UpsertNavigation(ctx context.Context, userID string, state progress.NavigationState) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.navigation[userID] = state
	return nil
}
