package entities

import (
	"strconv"
	"strings"
	"time"
)

// ItemKind distinguishes vocabulary words from sentences in the review queue.
type ItemKind string

const (
	KindWord     ItemKind = "word"
	KindSentence ItemKind = "sentence"
)

const sentencePrefix = "sentence:"

// SrsItem is the spaced repetition record of one word or sentence.
//
// When LastReviewedAt is set, DueAt equals LastReviewedAt plus Interval days.
// Box and CorrectStreak move together: a miss resets them to 1 and 0.
type SrsItem struct {
	ID             string     `json:"id"`
	Kind           ItemKind   `json:"kind"`
	Ease           float64    `json:"ease"`     // ease factor, never below 1.3
	Interval       int        `json:"interval"` // days, at least 1
	DueAt          time.Time  `json:"dueAt"`
	LastReviewedAt *time.Time `json:"lastReviewedAt"` // nil until the first review
	CorrectStreak  int        `json:"correctStreak"`
	IncorrectCount int        `json:"incorrectCount"`
	Box            int        `json:"box"` // Leitner box, 1..5
}

// SentenceItemID returns the SRS key used for a sentence.
func SentenceItemID(sentenceID int) string {
	return sentencePrefix + strconv.Itoa(sentenceID)
}

// ParseSentenceItemID extracts the sentence id from an SRS key.
func ParseSentenceItemID(itemID string) (int, bool) {
	rest, ok := strings.CutPrefix(itemID, sentencePrefix)
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return id, true
}

// KindForID infers the item kind from its key.
func KindForID(itemID string) ItemKind {
	if strings.HasPrefix(itemID, sentencePrefix) {
		return KindSentence
	}
	return KindWord
}
