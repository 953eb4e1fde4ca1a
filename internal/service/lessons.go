package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/mokykis/internal/domain/entities"
	"github.com/aliskhannn/mokykis/internal/domain/statelogic"
)

var (
	ErrUnknownLesson = errors.New("unknown lesson")
	ErrLessonLocked  = errors.New("lesson is locked")
)

// LessonStatus is one step of the lesson path.
type LessonStatus struct {
	Lesson    entities.Lesson
	Unlocked  bool
	Completed bool
}

// LessonService walks the lesson path in content order. A lesson opens once
// the one before it is completed.
type LessonService struct {
	progress *ProgressService
	content  ContentRepository
	logger   *zap.Logger
}

func NewLessonService(progress *ProgressService, content ContentRepository, logger *zap.Logger) *LessonService {
	return &LessonService{progress: progress, content: content, logger: logger}
}

// Path returns every lesson with its lock and completion state.
func (s *LessonService) Path(ctx context.Context) ([]LessonStatus, error) {
	state, err := s.progress.LoadState(ctx)
	if err != nil {
		return nil, err
	}

	lessons := s.content.GetAll()
	out := make([]LessonStatus, 0, len(lessons))
	for i, l := range lessons {
		out = append(out, LessonStatus{
			Lesson:    l,
			Unlocked:  statelogic.IsLessonUnlocked(state.LessonsCompleted, i),
			Completed: state.HasCompletedLesson(l.ID),
		})
	}
	return out, nil
}

// Complete records a lesson result. Lessons missing from the content or
// still locked are refused and nothing is saved.
func (s *LessonService) Complete(ctx context.Context, lessonID, accuracy int, passed bool) (*entities.UserState, Outcome, error) {
	idx := s.indexOf(lessonID)
	if idx < 0 {
		return nil, Outcome{}, fmt.Errorf("%w: %d", ErrUnknownLesson, lessonID)
	}

	return s.progress.Mutate(ctx, func(u *Update) error {
		if !statelogic.IsLessonUnlocked(u.State().LessonsCompleted, idx) {
			return fmt.Errorf("%w: %d", ErrLessonLocked, lessonID)
		}
		if !passed {
			return nil
		}
		if u.RecordLesson(lessonID, accuracy) {
			s.logger.Info("lesson completed", zap.Int("lesson_id", lessonID), zap.Int("accuracy", accuracy))
		}
		return nil
	})
}

func (s *LessonService) indexOf(lessonID int) int {
	for i, l := range s.content.GetAll() {
		if l.ID == lessonID {
			return i
		}
	}
	return -1
}
