package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/mokykis/internal/domain/achievement"
	"github.com/aliskhannn/mokykis/internal/domain/entities"
	"github.com/aliskhannn/mokykis/internal/repository"
	"github.com/aliskhannn/mokykis/internal/storage"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

type testEnv struct {
	ctx          context.Context
	clock        *fakeClock
	store        *storage.MemoryStore
	repo         *repository.StateRepository
	progress     *ProgressService
	quests       *QuestService
	achievements *AchievementService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := zap.NewNop()
	clock := &fakeClock{now: time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)}
	store := storage.NewMemoryStore()
	repo := repository.NewStateRepository(store, "", nil)
	progress := NewProgressService(repo, clock.Now, log)

	catalog, err := achievement.DefaultCatalog()
	require.NoError(t, err)

	return &testEnv{
		ctx:          context.Background(),
		clock:        clock,
		store:        store,
		repo:         repo,
		progress:     progress,
		quests:       NewQuestService(progress, log),
		achievements: NewAchievementService(progress, catalog, log),
	}
}

func (e *testEnv) state(t *testing.T) *entities.UserState {
	t.Helper()
	state, err := e.repo.Load(e.ctx, e.clock.Now())
	require.NoError(t, err)
	return state
}

func questByID(t *testing.T, daily entities.DailyQuests, id string) entities.QuestInstance {
	t.Helper()
	for _, q := range daily.Quests {
		if q.ID == id {
			return q
		}
	}
	t.Fatalf("quest %s not found", id)
	return entities.QuestInstance{}
}

func definitionIDs(defs []achievement.Definition) []string {
	out := make([]string, 0, len(defs))
	for _, d := range defs {
		out = append(out, d.ID)
	}
	return out
}
