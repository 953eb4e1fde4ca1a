// Package entities contains the persisted state schema and value types shared
// across the engine.
package entities

import "time"

// SchemaVersion is the version stamped on every state the engine writes.
const SchemaVersion = 1

const (
	DefaultDailyGoalXP      = 50  // daily XP target before onboarding picks one
	DefaultStreakFreezeCost = 100 // XP spent per auto-covered missed day
	DefaultReminderTime     = "19:00"
)

// UserState is the single persisted root object. It is stored as one JSON
// blob under a fixed key.
type UserState struct {
	Version             int                `json:"version"`
	XPTotal             int                `json:"xpTotal"`             // cumulative XP, only lowered by streak-freeze spend
	XPToday             int                `json:"xpToday"`             // XP earned on LastActiveDate
	DailyGoalXP         int                `json:"dailyGoalXP"`         // target XP for a day
	StreakCount         int                `json:"streakCount"`         // consecutive active days
	LastActiveDate      string             `json:"lastActiveDate"`      // date key, "" when never active
	LastGoalMetDate     string             `json:"lastGoalMetDate"`     // date key, "" when the streak is broken
	LessonsCompleted    []LessonCompletion `json:"lessonsCompleted"`    // append-only, unique by id
	SrsItems            map[string]SrsItem `json:"srsItems"`            // keyed by word text or "sentence:<id>"
	Settings            Settings           `json:"settings"`            // user preferences
	DailyQuests         DailyQuests        `json:"dailyQuests"`         // today's quest set
	Sentences           SentenceProgress   `json:"sentences"`           // sentence learning tracker
	OnboardingCompleted bool               `json:"onboardingCompleted"` // onboarding flow finished
	Achievements        []string           `json:"achievements"`        // unlocked achievement ids, append-only
	StreakFreezeCost    int                `json:"streakFreezeCost"`
	StreakFreezesUsed   int                `json:"streakFreezesUsed"`
}

// LessonCompletion records a passed lesson.
type LessonCompletion struct {
	ID          int       `json:"id"`
	CompletedAt time.Time `json:"completedAt"`
	Accuracy    int       `json:"accuracy"` // percent, 0-100
}

// Settings holds the recognised user options.
type Settings struct {
	SoundEffects         bool   `json:"soundEffects"`
	NotificationsEnabled bool   `json:"notificationsEnabled"`
	ReminderTime         string `json:"reminderTime"` // "HH:MM" in the user's zone
	IgnoreDiacritics     bool   `json:"ignoreDiacritics"`
	AutoUseStreakFreeze  bool   `json:"autoUseStreakFreeze"`
}

// SentenceProgress tracks the daily sentence learning flow.
type SentenceProgress struct {
	Learned          []int         `json:"learned"`          // learned sentence ids
	LastLearningDate string        `json:"lastLearningDate"` // date key of DailyCount
	DailyCount       int           `json:"dailyCount"`       // sentences learned on LastLearningDate
	WeeklyReviewDate *time.Time    `json:"weeklyReviewDate"` // last weekly review, nil if never
	ReviewScores     []ReviewScore `json:"reviewScores"`
}

// ReviewScore is the result of one sentence review session.
type ReviewScore struct {
	Date     time.Time `json:"date"`
	Correct  int       `json:"correct"`
	Total    int       `json:"total"`
	Accuracy int       `json:"accuracy"`
}

// DefaultSettings returns the settings a fresh state starts with.
func DefaultSettings() Settings {
	return Settings{
		SoundEffects:         true,
		NotificationsEnabled: true,
		ReminderTime:         DefaultReminderTime,
	}
}

// NewUserState builds the default state created on first load.
func NewUserState() *UserState {
	return &UserState{
		Version:          SchemaVersion,
		DailyGoalXP:      DefaultDailyGoalXP,
		LessonsCompleted: []LessonCompletion{},
		SrsItems:         map[string]SrsItem{},
		Settings:         DefaultSettings(),
		DailyQuests:      DailyQuests{Quests: []QuestInstance{}},
		Sentences: SentenceProgress{
			Learned:      []int{},
			ReviewScores: []ReviewScore{},
		},
		Achievements:     []string{},
		StreakFreezeCost: DefaultStreakFreezeCost,
	}
}

// Normalize replaces nil maps so the state can be mutated safely after a
// decode that carried explicit nulls.
func (s *UserState) Normalize() {
	if s.SrsItems == nil {
		s.SrsItems = map[string]SrsItem{}
	}
}

// HasCompletedLesson reports whether a completion for id is recorded.
func (s *UserState) HasCompletedLesson(id int) bool {
	for _, l := range s.LessonsCompleted {
		if l.ID == id {
			return true
		}
	}
	return false
}

// HasAchievement reports whether the achievement id is unlocked.
func (s *UserState) HasAchievement(id string) bool {
	for _, a := range s.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// HasLearnedSentence reports whether the sentence id was learned.
func (s *UserState) HasLearnedSentence(id int) bool {
	for _, l := range s.Sentences.Learned {
		if l == id {
			return true
		}
	}
	return false
}

// CountItems returns how many SRS items of the given kind exist.
func (s *UserState) CountItems(kind ItemKind) int {
	n := 0
	for _, it := range s.SrsItems {
		if it.Kind == kind {
			n++
		}
	}
	return n
}
