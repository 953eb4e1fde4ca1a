package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/mokykis/internal/domain/entities"
)

func TestSentences_DailyLimit(t *testing.T) {
	env := newTestEnv(t)
	sentences := NewSentenceService(env.progress, zap.NewNop())

	for id := 1; id <= DailySentenceLimit; id++ {
		_, _, err := sentences.MarkLearned(env.ctx, id)
		require.NoError(t, err)
	}

	_, _, err := sentences.MarkLearned(env.ctx, 99)
	assert.ErrorIs(t, err, ErrDailySentenceLimit)

	state := env.state(t)
	assert.Len(t, state.Sentences.Learned, DailySentenceLimit)
	assert.Equal(t, DailySentenceLimit, state.Sentences.DailyCount)
	assert.Equal(t, entities.KindSentence, state.SrsItems["sentence:7"].Kind)
	// 10 sentences at 5 XP plus the xp-20 reward
	assert.Equal(t, 60, state.XPTotal)

	left, err := sentences.RemainingToday(env.ctx)
	require.NoError(t, err)
	assert.Zero(t, left)

	env.clock.advance(24 * time.Hour)
	left, err = sentences.RemainingToday(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, DailySentenceLimit, left)

	state, _, err = sentences.MarkLearned(env.ctx, 3)
	require.NoError(t, err)
	assert.Zero(t, state.XPToday)

	state, _, err = sentences.MarkLearned(env.ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, 1, state.Sentences.DailyCount)
	assert.Equal(t, "2024-03-05", state.Sentences.LastLearningDate)
}

func TestSentences_WeeklyReview(t *testing.T) {
	env := newTestEnv(t)
	sentences := NewSentenceService(env.progress, zap.NewNop())

	need, err := sentences.NeedsWeeklyReview(env.ctx)
	require.NoError(t, err)
	assert.False(t, need)

	for id := 1; id <= 10; id++ {
		_, _, err := sentences.MarkLearned(env.ctx, id)
		require.NoError(t, err)
	}

	need, err = sentences.NeedsWeeklyReview(env.ctx)
	require.NoError(t, err)
	assert.True(t, need)

	score, outcome, err := sentences.CompleteReview(env.ctx, 8, 10)
	require.NoError(t, err)
	assert.Equal(t, 80, score.Accuracy)
	assert.GreaterOrEqual(t, outcome.XPAwarded, 8*SentenceReviewXPPerRight)

	need, err = sentences.NeedsWeeklyReview(env.ctx)
	require.NoError(t, err)
	assert.False(t, need)

	env.clock.advance(7 * 24 * time.Hour)
	need, err = sentences.NeedsWeeklyReview(env.ctx)
	require.NoError(t, err)
	assert.True(t, need)

	state := env.state(t)
	require.Len(t, state.Sentences.ReviewScores, 1)
	assert.Equal(t, 8, state.Sentences.ReviewScores[0].Correct)
}

func TestSentences_ReviewAccuracyRounds(t *testing.T) {
	env := newTestEnv(t)
	sentences := NewSentenceService(env.progress, zap.NewNop())

	score, _, err := sentences.CompleteReview(env.ctx, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 67, score.Accuracy)

	score, _, err = sentences.CompleteReview(env.ctx, 0, 0)
	require.NoError(t, err)
	assert.Zero(t, score.Accuracy)
}
