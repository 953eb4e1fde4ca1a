package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/mokykis/internal/domain/achievement"
	"github.com/aliskhannn/mokykis/internal/domain/entities"
)

var ErrUnknownAchievement = errors.New("unknown achievement")

// AchievementService unlocks catalog achievements. It re-evaluates after
// activity events; its own bonus XP does not trigger another pass.
type AchievementService struct {
	progress *ProgressService
	catalog  *achievement.Catalog
	logger   *zap.Logger
}

func NewAchievementService(progress *ProgressService, catalog *achievement.Catalog, logger *zap.Logger) *AchievementService {
	s := &AchievementService{progress: progress, catalog: catalog, logger: logger}
	progress.Subscribe(s)
	return s
}

func (s *AchievementService) Observe(u *Update, ev Event) error {
	if ev.Source == SourceAchievement {
		return nil
	}
	_, err := s.unlock(u)
	return err
}

// unlock evaluates every condition against one snapshot, then appends the
// new ids and grants their bonuses.
func (s *AchievementService) unlock(u *Update) ([]achievement.Definition, error) {
	state := u.State()
	eligible, err := s.catalog.Eligible(achievement.StatsOf(state), state.Achievements)
	if err != nil {
		return nil, fmt.Errorf("evaluate achievements: %w", err)
	}

	for _, def := range eligible {
		state.Achievements = append(state.Achievements, def.ID)
		u.outcome.Unlocked = append(u.outcome.Unlocked, def)
		s.logger.Info("achievement unlocked", zap.String("achievement_id", def.ID), zap.Int("reward_xp", def.RewardXP))
		u.GrantXP(def.RewardXP, SourceAchievement)
	}
	return eligible, nil
}

// CheckAchievements runs an explicit evaluation pass.
func (s *AchievementService) CheckAchievements(ctx context.Context) ([]achievement.Definition, error) {
	var unlocked []achievement.Definition
	_, _, err := s.progress.Mutate(ctx, func(u *Update) error {
		var err error
		unlocked, err = s.unlock(u)
		return err
	})
	return unlocked, err
}

// Describe returns the definition with id and whether it is unlocked.
func (s *AchievementService) Describe(ctx context.Context, id string) (achievement.Definition, bool, error) {
	def, ok := s.catalog.Find(id)
	if !ok {
		return achievement.Definition{}, false, fmt.Errorf("%w: %s", ErrUnknownAchievement, id)
	}
	state, err := s.progress.LoadState(ctx)
	if err != nil {
		return achievement.Definition{}, false, err
	}
	return def, state.HasAchievement(id), nil
}

// Unlocked returns the unlocked definitions in catalog order.
func (s *AchievementService) Unlocked(ctx context.Context) ([]achievement.Definition, error) {
	return s.filter(ctx, true)
}

// Locked returns the definitions not unlocked yet.
func (s *AchievementService) Locked(ctx context.Context) ([]achievement.Definition, error) {
	return s.filter(ctx, false)
}

func (s *AchievementService) filter(ctx context.Context, unlocked bool) ([]achievement.Definition, error) {
	state, err := s.progress.LoadState(ctx)
	if err != nil {
		return nil, err
	}
	return filterDefinitions(s.catalog.Definitions(), state, unlocked), nil
}

func filterDefinitions(defs []achievement.Definition, state *entities.UserState, unlocked bool) []achievement.Definition {
	out := make([]achievement.Definition, 0, len(defs))
	for _, d := range defs {
		if state.HasAchievement(d.ID) == unlocked {
			out = append(out, d)
		}
	}
	return out
}
