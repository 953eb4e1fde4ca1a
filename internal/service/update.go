package service

import (
	"time"

	"github.com/aliskhannn/mokykis/internal/domain/achievement"
	"github.com/aliskhannn/mokykis/internal/domain/entities"
	"github.com/aliskhannn/mokykis/internal/domain/srs"
	"github.com/aliskhannn/mokykis/internal/domain/statelogic"
)

// RewardSource tells observers where granted XP came from.
type RewardSource int

const (
	SourceActivity RewardSource = iota // lessons, reviews, sentences
	SourceAchievement
	SourceQuest
)

func (s RewardSource) String() string {
	switch s {
	case SourceActivity:
		return "activity"
	case SourceAchievement:
		return "achievement"
	case SourceQuest:
		return "quest"
	default:
		return "unknown"
	}
}

// Event is progress that observers react to after a mutation.
type Event struct {
	Type   entities.QuestType
	Amount int
	Source RewardSource
}

// EventObserver reacts to events queued during a mutation. It may change the
// state through u and queue further events.
type EventObserver interface {
	Observe(u *Update, ev Event) error
}

// Outcome summarises the side effects of one mutation.
type Outcome struct {
	XPAwarded       int
	CompletedQuests []entities.QuestInstance
	BonusClaimed    bool
	Unlocked        []achievement.Definition
}

// Update is the mutation context handed to callers of ProgressService.Mutate.
// Events emitted on it are delivered FIFO once the caller returns.
type Update struct {
	state   *entities.UserState
	now     time.Time
	queue   []Event
	outcome Outcome
}

func newUpdate(state *entities.UserState, now time.Time) *Update {
	return &Update{state: state, now: now}
}

func (u *Update) State() *entities.UserState { return u.state }

func (u *Update) Now() time.Time { return u.now }

func (u *Update) Emit(ev Event) {
	u.queue = append(u.queue, ev)
}

// GrantXP adds XP and advances the streak. XP not granted by a quest counts
// toward xp quests; quest rewards never do, so reward chains end.
func (u *Update) GrantXP(amount int, source RewardSource) {
	if amount == 0 {
		return
	}
	statelogic.ApplyXP(u.state, amount, u.now)
	statelogic.UpdateStreakForGoal(u.state, u.now)
	u.outcome.XPAwarded += amount

	if source != SourceQuest {
		u.Emit(Event{Type: entities.QuestXP, Amount: amount, Source: source})
	}
}

// AddSrsItem creates the item when missing. It reports whether it was added.
func (u *Update) AddSrsItem(id string, kind entities.ItemKind) bool {
	if _, ok := u.state.SrsItems[id]; ok {
		return false
	}
	u.state.SrsItems[id] = srs.CreateItem(id, kind, u.now)
	return true
}

// RecordLesson stores a passed lesson once and emits a lessons event either
// way. It reports whether the completion is new.
func (u *Update) RecordLesson(lessonID, accuracy int) bool {
	u.Emit(Event{Type: entities.QuestLessons, Amount: 1, Source: SourceActivity})
	if u.state.HasCompletedLesson(lessonID) {
		return false
	}
	u.state.LessonsCompleted = append(u.state.LessonsCompleted, entities.LessonCompletion{
		ID:          lessonID,
		CompletedAt: u.now,
		Accuracy:    min(max(accuracy, 0), 100),
	})
	return true
}

// ReviewItem records an answer for id, creating the item first if needed.
func (u *Update) ReviewItem(id string, correct bool) entities.SrsItem {
	item, ok := u.state.SrsItems[id]
	if !ok {
		item = srs.CreateItem(id, entities.KindForID(id), u.now)
	}
	item = srs.UpdateItem(item, correct, u.now)
	u.state.SrsItems[id] = item
	return item
}

func (u *Update) drain(observers []EventObserver) error {
	for len(u.queue) > 0 {
		ev := u.queue[0]
		u.queue = u.queue[1:]
		for _, o := range observers {
			if err := o.Observe(u, ev); err != nil {
				return err
			}
		}
	}
	return nil
}
