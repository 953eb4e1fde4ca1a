package migration

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/mokykis/internal/domain/entities"
)

var now = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

func TestMigrate_EmptyAndMalformed(t *testing.T) {
	def, err := json.Marshal(entities.NewUserState())
	require.NoError(t, err)

	for _, raw := range []string{"", "   ", "null", "{", "[]", "42", `"text"`, "{}"} {
		t.Run(raw, func(t *testing.T) {
			got := Migrate([]byte(raw), now)
			require.NotNil(t, got)

			out, err := json.Marshal(got)
			require.NoError(t, err)
			assert.JSONEq(t, string(def), string(out))
		})
	}
}

func TestMigrate_CurrentVersionUnchanged(t *testing.T) {
	reviewed := now.Add(-48 * time.Hour)
	state := entities.NewUserState()
	state.XPTotal = 420
	state.XPToday = 15
	state.StreakCount = 4
	state.LastActiveDate = "2024-06-10"
	state.LastGoalMetDate = "2024-06-10"
	state.LessonsCompleted = []entities.LessonCompletion{{ID: 1, CompletedAt: reviewed, Accuracy: 90}}
	state.SrsItems["labas"] = entities.SrsItem{
		ID: "labas", Kind: entities.KindWord, Ease: 2.6, Interval: 3,
		DueAt: reviewed.AddDate(0, 0, 3), LastReviewedAt: &reviewed, CorrectStreak: 2, Box: 3,
	}
	state.Settings.IgnoreDiacritics = true
	state.Achievements = []string{"first-lesson"}

	raw, err := json.Marshal(state)
	require.NoError(t, err)

	got := Migrate(raw, now)

	out, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(out))
}

func TestMigrate_CurrentVersionKeepsDefaultsForAbsentFields(t *testing.T) {
	got := Migrate([]byte(`{"version":1,"xpTotal":7,"srsItems":null}`), now)

	assert.Equal(t, 7, got.XPTotal)
	assert.Equal(t, entities.DefaultDailyGoalXP, got.DailyGoalXP)
	assert.Equal(t, entities.DefaultReminderTime, got.Settings.ReminderTime)
	assert.NotNil(t, got.SrsItems)
}

func TestMigrate_CurrentVersionRepairsBrokenItems(t *testing.T) {
	got := Migrate([]byte(`{"version":1,"xpTotal":12,"srsItems":{
		"a":null,
		"b":{"id":"b","kind":"word"},
		"c":{"id":"c","kind":"word","ease":2.6,"interval":3,"box":3,"dueAt":"2024-06-12T09:00:00Z"}
	}}`), now)

	assert.Equal(t, 12, got.XPTotal)
	require.Len(t, got.SrsItems, 2)
	assert.NotContains(t, got.SrsItems, "a")

	b := got.SrsItems["b"]
	assert.Equal(t, "b", b.ID)
	assert.InDelta(t, 2.5, b.Ease, 1e-9)
	assert.Equal(t, 1, b.Interval)
	assert.Equal(t, 1, b.Box)

	c := got.SrsItems["c"]
	assert.InDelta(t, 2.6, c.Ease, 1e-9)
	assert.Equal(t, 3, c.Interval)
	assert.Equal(t, 3, c.Box)
}

func TestMigrate_CurrentVersionWrongTypesRecovered(t *testing.T) {
	got := Migrate([]byte(`{"version":1,"xpTotal":"55","streakCount":true,"settings":{"ignoreDiacritics":"true"}}`), now)

	assert.Equal(t, 55, got.XPTotal)
	assert.Zero(t, got.StreakCount)
	assert.True(t, got.Settings.IgnoreDiacritics)
}

func TestMigrate_FutureVersion(t *testing.T) {
	got := Migrate([]byte(`{"version":9,"xpTotal":30,"hologram":{"x":1},"srsItems":{"namas":{"ease":0.5,"interval":0,"box":12}}}`), now)

	assert.Equal(t, entities.SchemaVersion, got.Version)
	assert.Equal(t, 30, got.XPTotal)
	item := got.SrsItems["namas"]
	assert.Equal(t, 1.3, item.Ease)
	assert.Equal(t, 1, item.Interval)
	assert.Equal(t, 5, item.Box)
	assert.Equal(t, entities.KindWord, item.Kind)
	assert.Equal(t, now, item.DueAt)
}

func TestDetectVersion(t *testing.T) {
	assert.Equal(t, 0, DetectVersion(Document{}))
	assert.Equal(t, 0, DetectVersion(Document{"version": "abc"}))
	assert.Equal(t, 0, DetectVersion(Document{"version": true}))
	assert.Equal(t, 0, DetectVersion(Document{"version": -3.0}))
	assert.Equal(t, 1, DetectVersion(Document{"version": 1.0}))
	assert.Equal(t, 2, DetectVersion(Document{"version": "2"}))
}

const legacyBlob = `{
  "streak": 3,
  "lastStudyDate": "2024-06-09T18:30:00.000Z",
  "totalXP": 260,
  "dailyXP": 20,
  "lessonsCompleted": [
    {"id": 1, "completedAt": "2024-06-01T10:00:00.000Z", "score": 100},
    {"id": 2, "completedAt": "2024-06-02T10:00:00.000Z", "score": 75},
    {"id": 2, "completedAt": "2024-06-03T10:00:00.000Z", "score": 50},
    "garbage"
  ],
  "currentLesson": 3,
  "vocabulary": {
    "labas": {"strength": 1.4, "lastReviewed": "2024-06-08T09:00:00.000Z", "timesReviewed": 3},
    "ačiū": {"strength": 1, "lastReviewed": "2024-06-09T09:00:00.000Z", "timesReviewed": 1},
    "senas": {"strength": 5, "lastReviewed": "2024-01-01T00:00:00.000Z", "timesReviewed": 40},
    "keistas": {"strength": "?"}
  },
  "achievements": ["first-lesson", "first-lesson", 5],
  "onboardingCompleted": true,
  "dailyQuests": {"date": "Sun Jun 09 2024", "quests": [{"id": "xp-20", "progress": 20}], "bonusClaimed": true},
  "sentences": {
    "learned": [4, 7],
    "lastLearningDate": "Sun Jun 09 2024",
    "dailyCount": 2,
    "weeklyReviewDate": null,
    "reviewScores": [{"date": "2024-06-05T10:00:00.000Z", "correct": 8, "total": 10, "accuracy": 80}]
  },
  "settings": {"dailyGoal": 100, "soundEnabled": false, "notificationsEnabled": false, "reminderTime": "08:30"}
}`

func TestMigrate_Legacy(t *testing.T) {
	got := Migrate([]byte(legacyBlob), now)

	assert.Equal(t, entities.SchemaVersion, got.Version)
	assert.Equal(t, 260, got.XPTotal)
	assert.Equal(t, 20, got.XPToday)
	assert.Equal(t, 100, got.DailyGoalXP)
	assert.Equal(t, 3, got.StreakCount)
	assert.Equal(t, "2024-06-09", got.LastActiveDate)
	assert.Equal(t, "2024-06-09", got.LastGoalMetDate)
	assert.True(t, got.OnboardingCompleted)
	assert.Equal(t, []string{"first-lesson"}, got.Achievements)

	require.Len(t, got.LessonsCompleted, 2)
	assert.Equal(t, 100, got.LessonsCompleted[0].Accuracy)
	assert.Equal(t, 75, got.LessonsCompleted[1].Accuracy)

	assert.False(t, got.Settings.SoundEffects)
	assert.False(t, got.Settings.NotificationsEnabled)
	assert.Equal(t, "08:30", got.Settings.ReminderTime)
	assert.False(t, got.Settings.AutoUseStreakFreeze)

	assert.Empty(t, got.DailyQuests.Quests)
	assert.False(t, got.DailyQuests.BonusClaimed)

	assert.Equal(t, []int{4, 7}, got.Sentences.Learned)
	assert.Equal(t, "2024-06-09", got.Sentences.LastLearningDate)
	assert.Equal(t, 2, got.Sentences.DailyCount)
	assert.Nil(t, got.Sentences.WeeklyReviewDate)
	require.Len(t, got.Sentences.ReviewScores, 1)
	assert.Equal(t, 80, got.Sentences.ReviewScores[0].Accuracy)
}

func TestMigrate_LegacyVocabularyLadder(t *testing.T) {
	got := Migrate([]byte(legacyBlob), now)

	labas := got.SrsItems["labas"]
	require.NotNil(t, labas.LastReviewedAt)
	assert.Equal(t, entities.KindWord, labas.Kind)
	assert.Equal(t, 7, labas.Interval)
	assert.Equal(t, 2, labas.CorrectStreak)
	assert.Equal(t, 3, labas.Box)
	assert.Equal(t, 2.5, labas.Ease)
	assert.True(t, labas.DueAt.Equal(labas.LastReviewedAt.AddDate(0, 0, 7)))

	aciu := got.SrsItems["ačiū"]
	assert.Equal(t, 1, aciu.Interval)
	assert.Zero(t, aciu.CorrectStreak)
	assert.Equal(t, 1, aciu.Box)

	senas := got.SrsItems["senas"]
	assert.Equal(t, 120, senas.Interval)
	assert.Equal(t, 5, senas.Box)

	keistas := got.SrsItems["keistas"]
	assert.Nil(t, keistas.LastReviewedAt)
	assert.Equal(t, 1, keistas.Interval)
	assert.True(t, keistas.DueAt.Equal(now))

	for _, id := range []string{"sentence:4", "sentence:7"} {
		item, ok := got.SrsItems[id]
		require.True(t, ok, id)
		assert.Equal(t, entities.KindSentence, item.Kind)
		assert.True(t, item.DueAt.Equal(now))
	}
}

func TestMigrate_LegacyDateUsesUserZone(t *testing.T) {
	vilnius := time.FixedZone("UTC+03:00", 3*3600)
	got := Migrate([]byte(`{"streak":0,"lastStudyDate":"2024-06-09T22:30:00Z"}`), now.In(vilnius))

	assert.Equal(t, "2024-06-10", got.LastActiveDate)
	assert.Empty(t, got.LastGoalMetDate)
}

func TestMigrate_LegacyThenCurrentIsStable(t *testing.T) {
	first := Migrate([]byte(legacyBlob), now)
	raw, err := json.Marshal(first)
	require.NoError(t, err)

	second := Migrate(raw, now)
	out, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(out))
}
