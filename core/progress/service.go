package progress

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/radianlabs/precalc/core/lesson"
)

var ErrNotFound = errors.New("progress not found")

// BlockedError reports a refused page advance. It is an advancement gate,
// not a failure: the viewer shows the reason and stays on the page.
type BlockedError struct {
	Reason string
}

func (e *BlockedError) Error() string { return e.Reason }

// IsBlocked reports whether err is an advancement gate.
func IsBlocked(err error) bool {
	_, ok := errors.Cause(err).(*BlockedError)
	return ok
}

// NavigationState remembers the student's last-open view so the client
// can restore it on login.
type NavigationState struct {
	View       string `json:"view"`
	LessonPath string `json:"lessonPath,omitempty"`
}

// Repository persists progress snapshots and navigation state.
// Implementations return ErrNotFound when nothing is stored for a key.
type Repository interface {
	GetProgress(ctx context.Context, userID, lessonPath string) ([]byte, error)
	UpsertProgress(ctx context.Context, userID, lessonPath string, raw []byte) error
	DeleteProgress(ctx context.Context, userID, lessonPath string) error

	GetNavigation(ctx context.Context, userID string) (NavigationState, error)
	UpsertNavigation(ctx context.Context, userID string, state NavigationState) error
}

// Service owns the lesson-viewer progress state machine: loading and
// clamping persisted snapshots, gating page advancement on required
// blocks and storing every state change whole.
type Service struct {
	repo      Repository
	lessonSvc *lesson.Service
}

func NewService(repo Repository, lessonSvc *lesson.Service) *Service {
	return &Service{repo: repo, lessonSvc: lessonSvc}
}

// GraphKey names a graphing block within a lesson for the completion
// status map; blocks have no author-supplied id so position is the key.
func GraphKey(pageIndex, blockIndex int) string {
	return fmt.Sprintf("desmos-%d-%d", pageIndex, blockIndex)
}

// Load returns the stored snapshot for the (user, lesson) pair, or the
// page-zero empty state when nothing valid is stored. The lesson must
// exist; its page count bounds the restored page index.
func (s *Service) Load(ctx context.Context, userID, lessonPath string) (LessonProgress, error) {
	maxPageIndex, err := s.maxPageIndex(lessonPath)
	if err != nil {
		return LessonProgress{}, err
	}

	raw, err := s.repo.GetProgress(ctx, userID, lessonPath)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return NewLessonProgress(), nil
		}
		return LessonProgress{}, errors.Wrap(err, "loading progress")
	}
	return Decode(raw, maxPageIndex), nil
}

// Save validates and stores a full snapshot, last write wins. The stored
// form is the canonical re-encoding of the decoded value, so malformed
// fields never survive a round trip.
func (s *Service) Save(ctx context.Context, userID, lessonPath string, raw []byte) (LessonProgress, error) {
	maxPageIndex, err := s.maxPageIndex(lessonPath)
	if err != nil {
		return LessonProgress{}, err
	}

	p := Decode(raw, maxPageIndex)
	return p, s.store(ctx, userID, lessonPath, p)
}

// Advance moves the viewer to the next page if the current page's
// required blocks are complete, returning a BlockedError otherwise.
func (s *Service) Advance(ctx context.Context, userID, lessonPath string) (LessonProgress, error) {
	doc, err := s.lessonSvc.Get(lessonPath)
	if err != nil {
		return LessonProgress{}, err
	}

	p, err := s.Load(ctx, userID, lessonPath)
	if err != nil {
		return LessonProgress{}, err
	}

	if ok, reason := CanAdvance(doc, p); !ok {
		return p, &BlockedError{Reason: reason}
	}

	p.PageIndex++
	return p, s.store(ctx, userID, lessonPath, p)
}

// Retreat moves the viewer to the previous page; on page zero it is a
// no-op.
func (s *Service) Retreat(ctx context.Context, userID, lessonPath string) (LessonProgress, error) {
	p, err := s.Load(ctx, userID, lessonPath)
	if err != nil {
		return LessonProgress{}, err
	}
	if p.PageIndex == 0 {
		return p, nil
	}

	p.PageIndex--
	return p, s.store(ctx, userID, lessonPath, p)
}

// Reset discards the stored snapshot for the (user, lesson) pair.
func (s *Service) Reset(ctx context.Context, userID, lessonPath string) error {
	if err := s.repo.DeleteProgress(ctx, userID, lessonPath); err != nil && errors.Cause(err) != ErrNotFound {
		return errors.Wrap(err, "resetting progress")
	}
	return nil
}

// Navigation returns the student's last-open view, defaulting to an
// empty state when none is stored.
func (s *Service) Navigation(ctx context.Context, userID string) (NavigationState, error) {
	state, err := s.repo.GetNavigation(ctx, userID)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return NavigationState{}, nil
		}
		return NavigationState{}, errors.Wrap(err, "loading navigation state")
	}
	return state, nil
}

// SetNavigation stores the student's last-open view.
func (s *Service) SetNavigation(ctx context.Context, userID string, state NavigationState) error {
	return errors.Wrap(s.repo.UpsertNavigation(ctx, userID, state), "saving navigation state")
}

// CanAdvance applies the advancement gate for the progress' current
// page: every question block flagged as required must have a cached
// correct result, and every graphing block flagged as required must have
// recorded a student graph.
func CanAdvance(doc lesson.Document, p LessonProgress) (bool, string) {
	if p.PageIndex >= len(doc.Pages)-1 {
		return false, "already on the last page"
	}
	if p.PageIndex < 0 || p.PageIndex >= len(doc.Pages) {
		return false, "no such page"
	}

	for i, block := range doc.Pages[p.PageIndex].Blocks {
		switch block.Type {
		case lesson.BlockQuestion:
			if block.RequireCorrectBeforeAdvance && !p.QuestionResults[block.ID].IsCorrect {
				return false, "answer the required question correctly before moving on"
			}
		case lesson.BlockDesmos:
			if block.RequireStudentGraphBeforeAdvance && !p.GraphStatus[GraphKey(p.PageIndex, i)] {
				return false, "add your own graph before moving on"
			}
		}
	}
	return true, ""
}

func (s *Service) maxPageIndex(lessonPath string) (int, error) {
	count, err := s.lessonSvc.PageCount(lessonPath)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, nil
	}
	return count - 1, nil
}

func (s *Service) store(ctx context.Context, userID, lessonPath string, p LessonProgress) error {
	raw, err := p.Encode()
	if err != nil {
		return errors.Wrap(err, "encoding progress")
	}
	return errors.Wrap(s.repo.UpsertProgress(ctx, userID, lessonPath, raw), "saving progress")
}
