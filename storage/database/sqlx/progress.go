package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/radianlabs/precalc/core/progress"
)

type progressRepository struct {
	db *sqlx.DB
}

var _ progress.Repository = (*progressRepository)(nil) // interface compliance check

func NewProgressRepository(db *sqlx.DB) *progressRepository {
	return &progressRepository{db: db}
}

func (repo progressRepository) GetProgress(ctx context.Context, userID, lessonPath string) ([]byte, error) {
	var raw []byte
	err := repo.db.GetContext(ctx, &raw,
		`SELECT progress FROM lesson_progress WHERE user_id = $1 AND lesson_path = $2`,
		userID, lessonPath,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, progress.ErrNotFound
		}
		return nil, errors.Wrap(err, "getting lesson progress")
	}
	return raw, nil
}

func (repo progressRepository) UpsertProgress(ctx context.Context, userID, lessonPath string, raw []byte) error {
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO lesson_progress (user_id, lesson_path, progress, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id, lesson_path)
		DO UPDATE SET progress = EXCLUDED.progress, updated_at = now()`,
		userID, lessonPath, raw,
	)
	return errors.Wrap(err, "upserting lesson progress")
}

func (repo progressRepository) DeleteProgress(ctx context.Context, userID, lessonPath string) error {
	res, err := repo.db.ExecContext(ctx,
		`DELETE FROM lesson_progress WHERE user_id = $1 AND lesson_path = $2`,
		userID, lessonPath,
	)
	if err != nil {
		return errors.Wrap(err, "deleting lesson progress")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return progress.ErrNotFound
	}
	return nil
}

func (repo progressRepository) GetNavigation(ctx context.Context, userID string) (progress.NavigationState, error) {
	var row struct {
		View       string      `db:"view"`
		LessonPath null.String `db:"lesson_path"`
	}
	err := repo.db.GetContext(ctx, &row,
		`SELECT view, lesson_path FROM navigation_state WHERE user_id = $1`, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return progress.NavigationState{}, progress.ErrNotFound
		}
		return progress.NavigationState{}, errors.Wrap(err, "getting navigation state")
	}
	return progress.NavigationState{View: row.View, LessonPath: row.LessonPath.String}, nil
}

func (repo progressRepository) UpsertNavigation(ctx context.Context, userID string, state progress.NavigationState) error {
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO navigation_state (user_id, view, lesson_path, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id)
		DO UPDATE SET view = EXCLUDED.view, lesson_path = EXCLUDED.lesson_path, updated_at = now()`,
		userID, state.View, null.NewString(state.LessonPath, state.LessonPath != ""),
	)
	return errors.Wrap(err, "upserting navigation state")
}
