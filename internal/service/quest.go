package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/aliskhannn/mokykis/internal/domain/entities"
	"github.com/aliskhannn/mokykis/internal/domain/quest"
)

// QuestService tracks daily quests. It observes progress events and pays out
// quest rewards and the daily bonus.
type QuestService struct {
	progress *ProgressService
	logger   *zap.Logger
}

// NewQuestService creates the service and subscribes it to progress events.
func NewQuestService(progress *ProgressService, logger *zap.Logger) *QuestService {
	s := &QuestService{progress: progress, logger: logger}
	progress.Subscribe(s)
	return s
}

// Observe advances quests matching the event type.
func (s *QuestService) Observe(u *Update, ev Event) error {
	s.advance(u, ev.Type, ev.Amount)
	return nil
}

func (s *QuestService) advance(u *Update, typ entities.QuestType, amount int) {
	daily := &u.State().DailyQuests
	quest.Ensure(daily, entities.DateKey(u.Now()))

	res := quest.Advance(daily, typ, amount)
	for _, q := range res.Completed {
		s.logger.Info("quest completed", zap.String("quest_id", q.ID), zap.Int("reward_xp", q.RewardXP))
		u.outcome.CompletedQuests = append(u.outcome.CompletedQuests, q)
		u.GrantXP(q.RewardXP, SourceQuest)
	}

	if quest.ClaimBonus(daily) {
		s.logger.Info("daily quest bonus claimed", zap.Int("bonus_xp", quest.DailyBonusXP))
		u.outcome.BonusClaimed = true
		u.GrantXP(quest.DailyBonusXP, SourceQuest)
	}
}

// EnsureDailyQuests regenerates today's quests when needed and returns them.
func (s *QuestService) EnsureDailyQuests(ctx context.Context) (entities.DailyQuests, error) {
	state, _, err := s.progress.Mutate(ctx, func(u *Update) error {
		if quest.Ensure(&u.State().DailyQuests, entities.DateKey(u.Now())) {
			s.logger.Debug("daily quests generated", zap.String("date", u.State().DailyQuests.Date))
		}
		return nil
	})
	if err != nil {
		return entities.DailyQuests{}, err
	}
	return state.DailyQuests, nil
}

// UpdateProgress reports amount of activity of type typ.
func (s *QuestService) UpdateProgress(ctx context.Context, typ entities.QuestType, amount int) (*entities.UserState, Outcome, error) {
	return s.progress.Mutate(ctx, func(u *Update) error {
		u.Emit(Event{Type: typ, Amount: amount, Source: SourceActivity})
		return nil
	})
}

// RecordReviewWord counts one reviewed word.
func (s *QuestService) RecordReviewWord(ctx context.Context) (*entities.UserState, Outcome, error) {
	return s.UpdateProgress(ctx, entities.QuestReview, 1)
}
