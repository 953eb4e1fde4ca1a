package migration

import (
	"time"

	"github.com/spf13/cast"

	"github.com/aliskhannn/mokykis/internal/domain/entities"
	"github.com/aliskhannn/mokykis/internal/domain/srs"
)

// legacyLadder is the fixed review interval list of the unversioned format,
// indexed by timesReviewed-1.
var legacyLadder = []int{1, 3, 7, 14, 30, 60, 120}

func legacyInterval(timesReviewed int) int {
	idx := min(max(timesReviewed-1, 0), len(legacyLadder)-1)
	return legacyLadder[idx]
}

// legacyToV1 maps the unversioned document onto schema 1 keys. Legacy daily
// quests are dropped; they regenerate on the next read.
func legacyToV1(doc Document, now time.Time) Document {
	out := Document{"version": 1}

	carry := func(from, to string) {
		if v, ok := doc[from]; ok && v != nil {
			out[to] = v
		}
	}
	carry("totalXP", "xpTotal")
	carry("dailyXP", "xpToday")
	carry("streak", "streakCount")
	carry("achievements", "achievements")
	carry("onboardingCompleted", "onboardingCompleted")

	if t, ok := toTime(doc["lastStudyDate"], now.Location()); ok {
		key := entities.DateKey(t.In(now.Location()))
		out["lastActiveDate"] = key
		if intOr(doc["streak"], 0) > 0 {
			out["lastGoalMetDate"] = key
		}
	}

	if settings, ok := doc["settings"].(map[string]any); ok {
		next := Document{}
		if v, ok := settings["dailyGoal"]; ok {
			out["dailyGoalXP"] = v
		}
		if v, ok := settings["soundEnabled"]; ok {
			next["soundEffects"] = v
		}
		for _, k := range []string{"notificationsEnabled", "reminderTime"} {
			if v, ok := settings[k]; ok {
				next[k] = v
			}
		}
		out["settings"] = next
	}

	if list, ok := doc["lessonsCompleted"].([]any); ok {
		lessons := make([]any, 0, len(list))
		for _, raw := range list {
			l, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			lessons = append(lessons, Document{
				"id":          l["id"],
				"completedAt": l["completedAt"],
				"accuracy":    l["score"],
			})
		}
		out["lessonsCompleted"] = lessons
	}

	items := Document{}
	if vocab, ok := doc["vocabulary"].(map[string]any); ok {
		for word, raw := range vocab {
			entry, _ := raw.(map[string]any)
			items[word] = legacyWordItem(word, entry, now)
		}
	}

	if sentences, ok := doc["sentences"].(map[string]any); ok {
		next := Document{}
		for _, k := range []string{"learned", "dailyCount", "weeklyReviewDate", "reviewScores"} {
			if v, ok := sentences[k]; ok {
				next[k] = v
			}
		}
		if t, ok := toTime(sentences["lastLearningDate"], now.Location()); ok {
			next["lastLearningDate"] = entities.DateKey(t.In(now.Location()))
		}
		out["sentences"] = next

		if learned, ok := sentences["learned"].([]any); ok {
			for _, raw := range learned {
				id, err := cast.ToIntE(raw)
				if err != nil {
					continue
				}
				key := entities.SentenceItemID(id)
				if _, exists := items[key]; !exists {
					items[key] = itemDoc(srs.CreateItem(key, entities.KindSentence, now))
				}
			}
		}
	}
	out["srsItems"] = items

	return out
}

func legacyWordItem(word string, entry map[string]any, now time.Time) Document {
	item := srs.CreateItem(word, entities.KindWord, now)

	times := intOr(entry["timesReviewed"], 0)
	item.Interval = legacyInterval(times)
	item.CorrectStreak = max(times-1, 0)
	item.Box = min(item.CorrectStreak+1, srs.MaxBox)

	if last, ok := toTime(entry["lastReviewed"], now.Location()); ok {
		item.LastReviewedAt = &last
		item.DueAt = last.AddDate(0, 0, item.Interval)
	}
	return itemDoc(item)
}

func itemDoc(item entities.SrsItem) Document {
	doc := Document{
		"id":             item.ID,
		"kind":           string(item.Kind),
		"ease":           item.Ease,
		"interval":       item.Interval,
		"dueAt":          item.DueAt,
		"correctStreak":  item.CorrectStreak,
		"incorrectCount": item.IncorrectCount,
		"box":            item.Box,
	}
	if item.LastReviewedAt != nil {
		doc["lastReviewedAt"] = *item.LastReviewedAt
	}
	return doc
}
