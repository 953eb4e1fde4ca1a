package service

import (
	"context"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/mokykis/internal/domain/entities"
)

const (
	DailySentenceLimit       = 10
	SentenceLearnXP          = 5
	SentenceReviewXPPerRight = 3

	weeklyReviewMinLearned = 10
	weeklyReviewInterval   = 7 * 24 * time.Hour
)

var ErrDailySentenceLimit = errors.New("daily sentence limit reached")

// SentenceService tracks daily sentence learning and weekly reviews.
type SentenceService struct {
	progress *ProgressService
	logger   *zap.Logger
}

func NewSentenceService(progress *ProgressService, logger *zap.Logger) *SentenceService {
	return &SentenceService{progress: progress, logger: logger}
}

func resetSentenceDay(sp *entities.SentenceProgress, today string) {
	if sp.LastLearningDate != today {
		sp.DailyCount = 0
		sp.LastLearningDate = today
	}
}

// MarkLearned records sentence id as learned today, awards XP and schedules
// it for review. Learning an already learned sentence changes nothing.
func (s *SentenceService) MarkLearned(ctx context.Context, id int) (*entities.UserState, Outcome, error) {
	return s.progress.Mutate(ctx, func(u *Update) error {
		state := u.State()
		sp := &state.Sentences
		resetSentenceDay(sp, entities.DateKey(u.Now()))

		if state.HasLearnedSentence(id) {
			return nil
		}
		if sp.DailyCount >= DailySentenceLimit {
			return ErrDailySentenceLimit
		}

		sp.Learned = append(sp.Learned, id)
		sp.DailyCount++
		u.AddSrsItem(entities.SentenceItemID(id), entities.KindSentence)
		u.GrantXP(SentenceLearnXP, SourceActivity)

		s.logger.Info("sentence learned", zap.Int("sentence_id", id), zap.Int("daily_count", sp.DailyCount))
		return nil
	})
}

// RemainingToday returns how many sentences can still be learned today.
func (s *SentenceService) RemainingToday(ctx context.Context) (int, error) {
	state, err := s.progress.LoadState(ctx)
	if err != nil {
		return 0, err
	}
	if state.Sentences.LastLearningDate != state.LastActiveDate {
		return DailySentenceLimit, nil
	}
	return max(DailySentenceLimit-state.Sentences.DailyCount, 0), nil
}

// NeedsWeeklyReview reports whether a sentence review is due.
func (s *SentenceService) NeedsWeeklyReview(ctx context.Context) (bool, error) {
	state, err := s.progress.LoadState(ctx)
	if err != nil {
		return false, err
	}
	return needsWeeklyReview(state.Sentences, s.progress.Clock()()), nil
}

func needsWeeklyReview(sp entities.SentenceProgress, now time.Time) bool {
	if len(sp.Learned) == 0 {
		return false
	}
	if sp.WeeklyReviewDate == nil {
		return len(sp.Learned) >= weeklyReviewMinLearned
	}
	return now.Sub(*sp.WeeklyReviewDate) >= weeklyReviewInterval
}

// CompleteReview stores the score of a sentence review session and awards XP
// per correct answer.
func (s *SentenceService) CompleteReview(ctx context.Context, correct, total int) (entities.ReviewScore, Outcome, error) {
	correct = max(correct, 0)
	total = max(total, correct)

	var score entities.ReviewScore
	_, outcome, err := s.progress.Mutate(ctx, func(u *Update) error {
		now := u.Now()
		score = entities.ReviewScore{Date: now, Correct: correct, Total: total}
		if total > 0 {
			score.Accuracy = int(math.Round(float64(correct) * 100 / float64(total)))
		}

		sp := &u.State().Sentences
		sp.ReviewScores = append(sp.ReviewScores, score)
		sp.WeeklyReviewDate = &now
		u.GrantXP(correct*SentenceReviewXPPerRight, SourceActivity)
		return nil
	})
	return score, outcome, err
}
