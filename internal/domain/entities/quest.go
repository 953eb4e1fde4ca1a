package entities

// QuestType names the activity a quest counts.
type QuestType string

const (
	QuestXP      QuestType = "xp"      // XP earned
	QuestLessons QuestType = "lessons" // lessons passed
	QuestReview  QuestType = "review"  // words reviewed
)

// QuestInstance is one of today's quests with its progress.
type QuestInstance struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        QuestType `json:"type"`
	Target      int       `json:"target"`
	RewardXP    int       `json:"rewardXP"`
	Progress    int       `json:"progress"` // 0..Target
	Completed   bool      `json:"completed"`
}

// DailyQuests is the quest set generated for Date.
type DailyQuests struct {
	Date         string          `json:"date"` // date key the set belongs to
	Quests       []QuestInstance `json:"quests"`
	BonusClaimed bool            `json:"bonusClaimed"`
}

// AllCompleted reports whether a non-empty set is fully completed.
func (d *DailyQuests) AllCompleted() bool {
	if len(d.Quests) == 0 {
		return false
	}
	for _, q := range d.Quests {
		if !q.Completed {
			return false
		}
	}
	return true
}
