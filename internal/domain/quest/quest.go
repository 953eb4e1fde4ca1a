// Package quest defines the daily quest templates and the rules that advance
// a day's quest set.
package quest

import "github.com/aliskhannn/mokykis/internal/domain/entities"

// DailyBonusXP is granted once when every quest of the day is completed.
const DailyBonusXP = 15

// Template describes a quest regenerated every day.
type Template struct {
	ID          string
	Title       string
	Description string
	Type        entities.QuestType
	Target      int
	RewardXP    int
}

// Templates is the fixed daily quest list.
var Templates = []Template{
	{
		ID:          "lessons-1",
		Title:       "Complete a Lesson",
		Description: "Finish 1 lesson today",
		Type:        entities.QuestLessons,
		Target:      1,
		RewardXP:    5,
	},
	{
		ID:          "xp-20",
		Title:       "Earn XP",
		Description: "Gain 20 XP today",
		Type:        entities.QuestXP,
		Target:      20,
		RewardXP:    10,
	},
	{
		ID:          "review-5",
		Title:       "Review Words",
		Description: "Review 5 words",
		Type:        entities.QuestReview,
		Target:      5,
		RewardXP:    5,
	},
}

// Instances creates zero-progress quests from the templates.
func Instances() []entities.QuestInstance {
	out := make([]entities.QuestInstance, 0, len(Templates))
	for _, t := range Templates {
		out = append(out, entities.QuestInstance{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Type:        t.Type,
			Target:      t.Target,
			RewardXP:    t.RewardXP,
		})
	}
	return out
}

// Ensure regenerates the set with zero progress and an open bonus when it
// belongs to another day or is empty. It reports whether anything changed.
func Ensure(daily *entities.DailyQuests, today string) bool {
	if daily.Date == today && len(daily.Quests) > 0 {
		return false
	}
	daily.Date = today
	daily.Quests = Instances()
	daily.BonusClaimed = false
	return true
}

// Result reports what one Advance call changed.
type Result struct {
	Updated   bool                     // at least one quest matched
	Completed []entities.QuestInstance // quests that reached their target now
}

// Advance adds amount to every incomplete quest of type typ. Progress stays
// within [0, target]; reaching the target completes the quest once.
func Advance(daily *entities.DailyQuests, typ entities.QuestType, amount int) Result {
	var res Result
	for i := range daily.Quests {
		q := &daily.Quests[i]
		if q.Type != typ || q.Completed {
			continue
		}

		q.Progress = min(max(q.Progress+amount, 0), q.Target)
		if q.Progress >= q.Target {
			q.Completed = true
			res.Completed = append(res.Completed, *q)
		}
		res.Updated = true
	}
	return res
}

// ClaimBonus marks the daily bonus as claimed when every quest is complete
// and the bonus is still open. It reports whether the bonus was claimed now.
func ClaimBonus(daily *entities.DailyQuests) bool {
	if daily.BonusClaimed || !daily.AllCompleted() {
		return false
	}
	daily.BonusClaimed = true
	return true
}
