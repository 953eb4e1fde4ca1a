// Package srs implements the spaced repetition scheduler: a simplified SM-2
// where ease drifts gradually and a miss fully resets the item to box 1.
package srs

import (
	"math"
	"sort"
	"time"

	"github.com/aliskhannn/mokykis/internal/domain/entities"
)

const (
	DefaultEase = 2.5
	MinEase     = 1.3
	MaxBox      = 5

	easeGain    = 0.1
	easePenalty = 0.2
)

// CreateItem returns a fresh item due immediately.
func CreateItem(id string, kind entities.ItemKind, now time.Time) entities.SrsItem {
	return entities.SrsItem{
		ID:       id,
		Kind:     kind,
		Ease:     DefaultEase,
		Interval: 1,
		DueAt:    now,
		Box:      1,
	}
}

// UpdateItem returns item rescheduled after an answer. The argument is not
// modified.
//
// Correct answers grow the interval by streak tier: 1 day, then 3 days, then
// the previous interval multiplied by the new ease. Wrong answers reset the
// interval, box and streak.
func UpdateItem(item entities.SrsItem, correct bool, now time.Time) entities.SrsItem {
	next := item
	if correct {
		next.CorrectStreak++
		next.Ease = math.Max(MinEase, next.Ease+easeGain)
		switch next.CorrectStreak {
		case 1:
			next.Interval = 1
		case 2:
			next.Interval = 3
		default:
			next.Interval = int(math.Round(float64(next.Interval) * next.Ease))
		}
		next.Box = min(next.Box+1, MaxBox)
	} else {
		next.IncorrectCount++
		next.CorrectStreak = 0
		next.Ease = math.Max(MinEase, next.Ease-easePenalty)
		next.Interval = 1
		next.Box = 1
	}

	reviewed := now
	next.LastReviewedAt = &reviewed
	next.DueAt = now.AddDate(0, 0, next.Interval)
	return next
}

// DueItems returns the items with DueAt at or before now, in input order.
func DueItems(items []entities.SrsItem, now time.Time) []entities.SrsItem {
	due := make([]entities.SrsItem, 0, len(items))
	for _, it := range items {
		if !it.DueAt.After(now) {
			due = append(due, it)
		}
	}
	return due
}

// SortByUrgency orders items by earliest due time, then lowest ease, then id.
func SortByUrgency(items []entities.SrsItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if !a.DueAt.Equal(b.DueAt) {
			return a.DueAt.Before(b.DueAt)
		}
		if a.Ease != b.Ease {
			return a.Ease < b.Ease
		}
		return a.ID < b.ID
	})
}

// Limit truncates items to at most n entries. n <= 0 means no limit.
func Limit(items []entities.SrsItem, n int) []entities.SrsItem {
	if n <= 0 || len(items) <= n {
		return items
	}
	return items[:n]
}

// IsMastered reports whether the item reached the top box.
func IsMastered(item entities.SrsItem) bool {
	return item.Box >= MaxBox
}

// Values flattens an item map into a slice.
func Values(items map[string]entities.SrsItem) []entities.SrsItem {
	out := make([]entities.SrsItem, 0, len(items))
	for _, it := range items {
		out = append(out, it)
	}
	return out
}
