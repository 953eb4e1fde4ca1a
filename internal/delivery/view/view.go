// Package view renders engine state as plain text for the CLI and the bot.
package view

import (
	"fmt"
	"strings"

	"github.com/aliskhannn/mokykis/internal/domain/achievement"
	"github.com/aliskhannn/mokykis/internal/domain/entities"
	"github.com/aliskhannn/mokykis/internal/domain/quest"
	"github.com/aliskhannn/mokykis/internal/domain/srs"
	"github.com/aliskhannn/mokykis/internal/service"
)

const goalBarLength = 10

// ProgressBar renders current/total as a fixed width bar.
func ProgressBar(current, total, length int) string {
	if total <= 0 {
		return "[" + strings.Repeat("░", length) + "]"
	}

	filled := min(max(current*length/total, 0), length)
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", length-filled) + "]"
}

func FormatBool(b bool) string {
	if b {
		return "On"
	}
	return "Off"
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// Status renders the dashboard summary.
func Status(state *entities.UserState, due int) string {
	var sb strings.Builder

	sb.WriteString("📊 Your progress\n\n")
	fmt.Fprintf(&sb, "🔥 Streak: %d %s\n", state.StreakCount, plural(state.StreakCount, "day", "days"))
	fmt.Fprintf(&sb, "⭐ XP: %d total, %d today\n", state.XPTotal, state.XPToday)
	fmt.Fprintf(&sb, "🎯 Daily goal: %s %d/%d XP\n",
		ProgressBar(state.XPToday, state.DailyGoalXP, goalBarLength), state.XPToday, state.DailyGoalXP)
	fmt.Fprintf(&sb, "📚 Lessons completed: %d\n", len(state.LessonsCompleted))
	fmt.Fprintf(&sb, "🔁 Due for review: %d\n", due)
	if n := mastered(state.SrsItems); n > 0 {
		fmt.Fprintf(&sb, "🏆 Mastered: %d\n", n)
	}
	if state.StreakFreezesUsed > 0 {
		fmt.Fprintf(&sb, "🧊 Streak freezes used: %d\n", state.StreakFreezesUsed)
	}
	return sb.String()
}

func mastered(items map[string]entities.SrsItem) int {
	n := 0
	for _, it := range items {
		if srs.IsMastered(it) {
			n++
		}
	}
	return n
}

// Lessons renders the lesson path with lock marks.
func Lessons(path []service.LessonStatus) string {
	if len(path) == 0 {
		return "No lessons available.\n"
	}

	var sb strings.Builder
	sb.WriteString("📚 Lessons\n\n")
	for _, p := range path {
		mark := "🔒"
		switch {
		case p.Completed:
			mark = "✅"
		case p.Unlocked:
			mark = "🔓"
		}
		fmt.Fprintf(&sb, "%s %d. %s\n", mark, p.Lesson.ID, p.Lesson.Title)
	}
	return sb.String()
}

// Quests renders the day's quest list and bonus status.
func Quests(daily entities.DailyQuests) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "📋 Daily quests (%s)\n\n", daily.Date)
	for _, q := range daily.Quests {
		mark := "⬜"
		if q.Completed {
			mark = "✅"
		}
		fmt.Fprintf(&sb, "%s %s %d/%d (+%d XP)\n", mark, q.Title, q.Progress, q.Target, q.RewardXP)
	}

	if daily.BonusClaimed {
		fmt.Fprintf(&sb, "\n🎁 Daily bonus claimed (+%d XP)\n", quest.DailyBonusXP)
	} else {
		fmt.Fprintf(&sb, "\n🎁 Complete every quest for +%d XP\n", quest.DailyBonusXP)
	}
	return sb.String()
}

// Achievements lists unlocked achievements first, then the locked ones.
func Achievements(unlocked, locked []achievement.Definition) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "🏅 Achievements %d/%d\n", len(unlocked), len(unlocked)+len(locked))
	for _, d := range unlocked {
		fmt.Fprintf(&sb, "%s %s: %s\n", d.Icon, d.Title, d.Description)
	}
	if len(locked) > 0 {
		sb.WriteString("\n")
		for _, d := range locked {
			fmt.Fprintf(&sb, "🔒 %s: %s (+%d XP)\n", d.Title, d.Description, d.RewardXP)
		}
	}
	return sb.String()
}

// Achievement renders one catalog entry.
func Achievement(d achievement.Definition, unlocked bool) string {
	state := "🔒 Locked"
	if unlocked {
		state = "✅ Unlocked"
	}
	return fmt.Sprintf("%s %s\n%s\nReward: +%d XP\n%s\n", d.Icon, d.Title, d.Description, d.RewardXP, state)
}

// Settings renders user preferences with the daily goal.
func Settings(s entities.Settings, dailyGoalXP int) string {
	var sb strings.Builder

	sb.WriteString("⚙️ Settings\n\n")
	fmt.Fprintf(&sb, "🎯 Daily goal: %d XP\n", dailyGoalXP)
	fmt.Fprintf(&sb, "🔊 Sound effects: %s\n", FormatBool(s.SoundEffects))
	if s.NotificationsEnabled {
		fmt.Fprintf(&sb, "🔔 Reminders: On at %s\n", s.ReminderTime)
	} else {
		sb.WriteString("🔔 Reminders: Off\n")
	}
	fmt.Fprintf(&sb, "🔤 Ignore diacritics: %s\n", FormatBool(s.IgnoreDiacritics))
	fmt.Fprintf(&sb, "🧊 Auto streak freeze: %s\n", FormatBool(s.AutoUseStreakFreeze))
	return sb.String()
}

// Reminder renders the daily reminder message.
func Reminder(p entities.ReminderPayload) string {
	var sb strings.Builder

	if p.StreakCount > 0 {
		fmt.Fprintf(&sb, "⏰ Time for Lithuanian! Keep your %d-day streak alive.\n", p.StreakCount)
	} else {
		sb.WriteString("⏰ Time for Lithuanian! Start a new streak today.\n")
	}
	if p.DueCount > 0 {
		fmt.Fprintf(&sb, "🔁 %d %s waiting for review.\n", p.DueCount, plural(p.DueCount, "word is", "words are"))
	}
	fmt.Fprintf(&sb, "🎯 Goal: %d/%d XP", p.XPToday, p.DailyGoalXP)
	return sb.String()
}

// Outcome lists rewards earned by one action. It is empty when nothing was
// earned.
func Outcome(o service.Outcome) string {
	var lines []string
	if o.XPAwarded > 0 {
		lines = append(lines, fmt.Sprintf("⭐ +%d XP", o.XPAwarded))
	}
	for _, q := range o.CompletedQuests {
		lines = append(lines, fmt.Sprintf("✅ Quest completed: %s (+%d XP)", q.Title, q.RewardXP))
	}
	if o.BonusClaimed {
		lines = append(lines, fmt.Sprintf("🎁 Daily bonus: +%d XP", quest.DailyBonusXP))
	}
	for _, d := range o.Unlocked {
		lines = append(lines, fmt.Sprintf("%s Achievement unlocked: %s (+%d XP)", d.Icon, d.Title, d.RewardXP))
	}
	return strings.Join(lines, "\n")
}
