package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/aliskhannn/mokykis/internal/domain/entities"
	"github.com/aliskhannn/mokykis/internal/domain/srs"
	"github.com/aliskhannn/mokykis/internal/domain/statelogic"
)

// ProgressService funnels every state change through one
// load, mutate, drain events, save cycle.
type ProgressService struct {
	mu        sync.Mutex
	repo      StateRepository
	clock     Clock
	observers []EventObserver
	logger    *zap.Logger
}

func NewProgressService(repo StateRepository, clock Clock, logger *zap.Logger) *ProgressService {
	return &ProgressService{repo: repo, clock: clock, logger: logger}
}

// Subscribe registers an observer. Observers run in registration order.
func (s *ProgressService) Subscribe(o EventObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

func (s *ProgressService) Clock() Clock {
	return s.clock
}

// Mutate loads the state, rolls the day over, runs fn, delivers queued events
// and saves once. Nothing is saved when fn or an observer fails.
func (s *ProgressService) Mutate(ctx context.Context, fn func(u *Update) error) (*entities.UserState, Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	state, err := s.repo.Load(ctx, now)
	if err != nil {
		return nil, Outcome{}, err
	}
	if statelogic.ResetDailyXPIfNeeded(state, now) {
		s.logger.Debug("day rolled over",
			zap.String("today", state.LastActiveDate),
			zap.Int("streak", state.StreakCount),
			zap.Int("freezes_used", state.StreakFreezesUsed),
		)
	}

	u := newUpdate(state, now)
	if fn != nil {
		if err := fn(u); err != nil {
			return nil, Outcome{}, err
		}
	}
	if err := u.drain(s.observers); err != nil {
		return nil, Outcome{}, fmt.Errorf("deliver events: %w", err)
	}

	if err := s.repo.Save(ctx, state); err != nil {
		return nil, Outcome{}, err
	}
	return state, u.outcome, nil
}

// LoadState returns the migrated state after the daily rollover and persists
// it.
func (s *ProgressService) LoadState(ctx context.Context) (*entities.UserState, error) {
	state, _, err := s.Mutate(ctx, nil)
	return state, err
}

// SaveState persists state verbatim.
func (s *ProgressService) SaveState(ctx context.Context, state *entities.UserState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Save(ctx, state)
}

// AwardXP grants activity XP and updates the streak.
func (s *ProgressService) AwardXP(ctx context.Context, amount int) (*entities.UserState, Outcome, error) {
	return s.Mutate(ctx, func(u *Update) error {
		u.GrantXP(amount, SourceActivity)
		return nil
	})
}

// CompleteLesson records a passed lesson once. A pass counts toward lesson
// quests even when the lesson was already completed before.
func (s *ProgressService) CompleteLesson(ctx context.Context, lessonID, accuracy int, passed bool) (*entities.UserState, Outcome, error) {
	return s.Mutate(ctx, func(u *Update) error {
		if !passed {
			return nil
		}

		if u.RecordLesson(lessonID, accuracy) {
			s.logger.Info("lesson completed", zap.Int("lesson_id", lessonID), zap.Int("accuracy", accuracy))
		}
		return nil
	})
}

// AddSrsItem creates an item due now unless it already exists and returns
// the stored item.
func (s *ProgressService) AddSrsItem(ctx context.Context, id string, kind entities.ItemKind) (entities.SrsItem, error) {
	state, _, err := s.Mutate(ctx, func(u *Update) error {
		u.AddSrsItem(id, kind)
		return nil
	})
	if err != nil {
		return entities.SrsItem{}, err
	}
	return state.SrsItems[id], nil
}

// UpdateSrsItem records a review answer, creating the item if needed.
func (s *ProgressService) UpdateSrsItem(ctx context.Context, id string, correct bool) (entities.SrsItem, error) {
	var item entities.SrsItem
	_, _, err := s.Mutate(ctx, func(u *Update) error {
		item = u.ReviewItem(id, correct)
		return nil
	})
	return item, err
}

// GetDueSrsItems returns items due now, most urgent first.
func (s *ProgressService) GetDueSrsItems(ctx context.Context) ([]entities.SrsItem, error) {
	state, err := s.LoadState(ctx)
	if err != nil {
		return nil, err
	}
	due := srs.DueItems(srs.Values(state.SrsItems), s.clock())
	srs.SortByUrgency(due)
	return due, nil
}
