// Package statelogic holds the pure daily-cycle rules: day rollover, XP
// accounting, streak updates and lesson unlocking. Functions mutate the state
// they are given and never touch storage.
package statelogic

import (
	"time"

	"github.com/aliskhannn/mokykis/internal/domain/entities"
)

// MissedDays returns the number of fully skipped calendar days strictly
// between lastKey and todayKey. It is 0 when lastKey is empty, unparseable or
// not before today.
func MissedDays(lastKey, todayKey string) int {
	days, ok := entities.DaysBetween(lastKey, todayKey)
	if !ok {
		return 0
	}
	return max(days-1, 0)
}

// ResetDailyXPIfNeeded rolls the state over to now's day. Missed days break a
// running streak unless streak freezes cover every one of them. It reports
// whether a rollover happened; a second call on the same day is a no-op.
func ResetDailyXPIfNeeded(state *entities.UserState, now time.Time) bool {
	today := entities.DateKey(now)
	if state.LastActiveDate == today {
		return false
	}

	missed := MissedDays(state.LastActiveDate, today)
	if state.StreakCount > 0 && missed > 0 {
		cost := state.StreakFreezeCost
		if cost <= 0 {
			cost = entities.DefaultStreakFreezeCost
		}

		for missed > 0 && state.Settings.AutoUseStreakFreeze && state.XPTotal >= cost {
			state.XPTotal -= cost
			state.StreakFreezesUsed++
			missed--
		}

		if missed > 0 {
			state.StreakCount = 0
			state.LastGoalMetDate = ""
		} else {
			state.LastGoalMetDate = entities.YesterdayKey(now)
		}
	}

	state.XPToday = 0
	state.LastActiveDate = today
	return true
}

// ApplyXP rolls the day over if needed and adds amount to both counters.
// Any integer is accepted.
func ApplyXP(state *entities.UserState, amount int, now time.Time) {
	ResetDailyXPIfNeeded(state, now)
	state.XPTotal += amount
	state.XPToday += amount
}

// UpdateStreakForGoal extends or restarts the streak once per day. Any XP
// earned today counts as activity; the daily goal amount does not gate it.
func UpdateStreakForGoal(state *entities.UserState, now time.Time) {
	ResetDailyXPIfNeeded(state, now)

	today := entities.DateKey(now)
	if state.XPToday <= 0 || state.LastGoalMetDate == today {
		return
	}

	if state.LastGoalMetDate == entities.YesterdayKey(now) {
		state.StreakCount++
	} else {
		state.StreakCount = 1
	}
	state.LastGoalMetDate = today
}

// IsLessonUnlocked reports whether the lesson at lessonIndex can be started.
// Index 0 is always open; any other index needs a completion whose id equals
// the index. Lesson ids must therefore be sequential integers matching path
// position for this to mean "complete lesson N-1 to unlock lesson N".
func IsLessonUnlocked(completed []entities.LessonCompletion, lessonIndex int) bool {
	if lessonIndex == 0 {
		return true
	}
	for _, c := range completed {
		if c.ID == lessonIndex {
			return true
		}
	}
	return false
}

// GoalMet reports whether today's XP reached the daily goal. Display only.
func GoalMet(state *entities.UserState) bool {
	return state.DailyGoalXP > 0 && state.XPToday >= state.DailyGoalXP
}

// ProgressToGoal returns today's goal progress as a percentage capped at 100.
func ProgressToGoal(state *entities.UserState) int {
	if state.DailyGoalXP <= 0 {
		return 100
	}
	pct := state.XPToday * 100 / state.DailyGoalXP
	return min(max(pct, 0), 100)
}
