package migration

import (
	"time"

	"github.com/spf13/cast"

	"github.com/aliskhannn/mokykis/internal/domain/entities"
	"github.com/aliskhannn/mokykis/internal/domain/srs"
)

// legacyDayLayout is the "Mon Jan 02 2006" form some old fields were saved in.
const legacyDayLayout = "Mon Jan 02 2006"

func intOr(v any, def int) int {
	if v == nil {
		return def
	}
	if _, isBool := v.(bool); isBool {
		return def
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return def
	}
	return n
}

func floatOr(v any, def float64) float64 {
	if v == nil {
		return def
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return def
	}
	return f
}

func boolOr(v any, def bool) bool {
	if v == nil {
		return def
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return def
	}
	return b
}

func stringOr(v any, def string) string {
	s, ok := v.(string)
	if !ok {
		return def
	}
	return s
}

func toTime(v any, loc *time.Location) (time.Time, bool) {
	if v == nil {
		return time.Time{}, false
	}
	if s, ok := v.(string); ok {
		if s == "" {
			return time.Time{}, false
		}
		if t, err := time.ParseInLocation(legacyDayLayout, s, loc); err == nil {
			return t, true
		}
	}
	if _, isNum := v.(float64); isNum {
		return time.Time{}, false
	}
	t, err := cast.ToTimeInDefaultLocationE(v, loc)
	if err != nil || t.IsZero() {
		return time.Time{}, false
	}
	return t, true
}

func timePtr(v any, loc *time.Location) *time.Time {
	t, ok := toTime(v, loc)
	if !ok {
		return nil
	}
	return &t
}

// dateKey accepts a date key or any timestamp and returns a date key in loc.
func dateKey(v any, loc *time.Location) string {
	s, ok := v.(string)
	if !ok || s == "" {
		return ""
	}
	if _, ok := entities.ParseDateKey(s); ok {
		return s
	}
	if t, ok := toTime(s, loc); ok {
		return entities.DateKey(t.In(loc))
	}
	return ""
}

func objectOf(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func listOf(v any) []any {
	l, _ := v.([]any)
	return l
}

// decodeLenient rebuilds a state field by field. Anything missing or of the
// wrong type keeps its default; numeric fields are clamped into range.
func decodeLenient(doc Document, now time.Time) *entities.UserState {
	loc := now.Location()
	state := entities.NewUserState()

	state.XPTotal = intOr(doc["xpTotal"], state.XPTotal)
	state.XPToday = max(intOr(doc["xpToday"], state.XPToday), 0)
	if goal := intOr(doc["dailyGoalXP"], state.DailyGoalXP); goal > 0 {
		state.DailyGoalXP = goal
	}
	state.StreakCount = max(intOr(doc["streakCount"], 0), 0)
	state.LastActiveDate = dateKey(doc["lastActiveDate"], loc)
	state.LastGoalMetDate = dateKey(doc["lastGoalMetDate"], loc)
	state.OnboardingCompleted = boolOr(doc["onboardingCompleted"], false)
	state.StreakFreezeCost = intOr(doc["streakFreezeCost"], state.StreakFreezeCost)
	state.StreakFreezesUsed = max(intOr(doc["streakFreezesUsed"], 0), 0)

	state.LessonsCompleted = decodeLessons(listOf(doc["lessonsCompleted"]), now)
	state.SrsItems = decodeItems(objectOf(doc["srsItems"]), now)
	state.Settings = decodeSettings(objectOf(doc["settings"]))
	state.DailyQuests = decodeQuests(objectOf(doc["dailyQuests"]), loc)
	state.Sentences = decodeSentences(objectOf(doc["sentences"]), now)

	seen := map[string]bool{}
	for _, raw := range listOf(doc["achievements"]) {
		id, ok := raw.(string)
		if !ok || id == "" || seen[id] {
			continue
		}
		seen[id] = true
		state.Achievements = append(state.Achievements, id)
	}

	return state
}

func decodeLessons(list []any, now time.Time) []entities.LessonCompletion {
	out := make([]entities.LessonCompletion, 0, len(list))
	seen := map[int]bool{}
	for _, raw := range list {
		l := objectOf(raw)
		if l == nil {
			continue
		}
		id, err := cast.ToIntE(l["id"])
		if err != nil || l["id"] == nil || seen[id] {
			continue
		}
		seen[id] = true

		completedAt := now
		if t, ok := toTime(l["completedAt"], now.Location()); ok {
			completedAt = t
		}
		out = append(out, entities.LessonCompletion{
			ID:          id,
			CompletedAt: completedAt,
			Accuracy:    min(max(intOr(l["accuracy"], 0), 0), 100),
		})
	}
	return out
}

// itemsInRange reports whether every item is keyed by its id and holds its
// scheduling fields within bounds.
func itemsInRange(items map[string]entities.SrsItem) bool {
	for key, it := range items {
		if it.ID != key || it.Ease < srs.MinEase || it.Interval < 1 || it.Box < 1 || it.Box > srs.MaxBox {
			return false
		}
	}
	return true
}

func decodeItems(m map[string]any, now time.Time) map[string]entities.SrsItem {
	out := make(map[string]entities.SrsItem, len(m))
	for key, raw := range m {
		it := objectOf(raw)
		if it == nil {
			continue
		}

		item := srs.CreateItem(key, entities.KindForID(key), now)
		if kind := entities.ItemKind(stringOr(it["kind"], "")); kind == entities.KindWord || kind == entities.KindSentence {
			item.Kind = kind
		}
		item.Ease = max(floatOr(it["ease"], srs.DefaultEase), srs.MinEase)
		item.Interval = max(intOr(it["interval"], 1), 1)
		item.CorrectStreak = max(intOr(it["correctStreak"], 0), 0)
		item.IncorrectCount = max(intOr(it["incorrectCount"], 0), 0)
		item.Box = min(max(intOr(it["box"], 1), 1), srs.MaxBox)
		item.LastReviewedAt = timePtr(it["lastReviewedAt"], now.Location())

		switch due, ok := toTime(it["dueAt"], now.Location()); {
		case ok:
			item.DueAt = due
		case item.LastReviewedAt != nil:
			item.DueAt = item.LastReviewedAt.AddDate(0, 0, item.Interval)
		}
		out[key] = item
	}
	return out
}

func decodeSettings(m map[string]any) entities.Settings {
	s := entities.DefaultSettings()
	if m == nil {
		return s
	}
	s.SoundEffects = boolOr(m["soundEffects"], s.SoundEffects)
	s.NotificationsEnabled = boolOr(m["notificationsEnabled"], s.NotificationsEnabled)
	s.IgnoreDiacritics = boolOr(m["ignoreDiacritics"], s.IgnoreDiacritics)
	s.AutoUseStreakFreeze = boolOr(m["autoUseStreakFreeze"], s.AutoUseStreakFreeze)
	if rt := stringOr(m["reminderTime"], ""); rt != "" {
		if _, _, err := entities.ParseReminderTime(rt); err == nil {
			s.ReminderTime = rt
		}
	}
	return s
}

func decodeQuests(m map[string]any, loc *time.Location) entities.DailyQuests {
	dq := entities.DailyQuests{Quests: []entities.QuestInstance{}}
	if m == nil {
		return dq
	}
	dq.Date = dateKey(m["date"], loc)
	dq.BonusClaimed = boolOr(m["bonusClaimed"], false)

	for _, raw := range listOf(m["quests"]) {
		q := objectOf(raw)
		id := stringOr(q["id"], "")
		if q == nil || id == "" {
			continue
		}
		target := max(intOr(q["target"], 1), 1)
		dq.Quests = append(dq.Quests, entities.QuestInstance{
			ID:          id,
			Title:       stringOr(q["title"], ""),
			Description: stringOr(q["description"], ""),
			Type:        entities.QuestType(stringOr(q["type"], "")),
			Target:      target,
			RewardXP:    max(intOr(q["rewardXP"], 0), 0),
			Progress:    min(max(intOr(q["progress"], 0), 0), target),
			Completed:   boolOr(q["completed"], false),
		})
	}
	return dq
}

func decodeSentences(m map[string]any, now time.Time) entities.SentenceProgress {
	sp := entities.SentenceProgress{Learned: []int{}, ReviewScores: []entities.ReviewScore{}}
	if m == nil {
		return sp
	}
	loc := now.Location()

	seen := map[int]bool{}
	for _, raw := range listOf(m["learned"]) {
		if raw == nil {
			continue
		}
		id, err := cast.ToIntE(raw)
		if err != nil || seen[id] {
			continue
		}
		seen[id] = true
		sp.Learned = append(sp.Learned, id)
	}
	sp.LastLearningDate = dateKey(m["lastLearningDate"], loc)
	sp.DailyCount = max(intOr(m["dailyCount"], 0), 0)
	sp.WeeklyReviewDate = timePtr(m["weeklyReviewDate"], loc)

	for _, raw := range listOf(m["reviewScores"]) {
		r := objectOf(raw)
		if r == nil {
			continue
		}
		date, ok := toTime(r["date"], loc)
		if !ok {
			date = now
		}
		sp.ReviewScores = append(sp.ReviewScores, entities.ReviewScore{
			Date:     date,
			Correct:  max(intOr(r["correct"], 0), 0),
			Total:    max(intOr(r["total"], 0), 0),
			Accuracy: min(max(intOr(r["accuracy"], 0), 0), 100),
		})
	}
	return sp
}
