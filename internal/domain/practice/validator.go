// Package practice builds review exercises and checks answers.
package practice

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// AnswerValidator compares a typed or selected answer with the expected one.
type AnswerValidator struct {
	ignoreDiacritics bool
	fold             cases.Caser
}

// NewAnswerValidator creates a validator. With ignoreDiacritics set, "ačiū"
// and "aciu" compare equal.
func NewAnswerValidator(ignoreDiacritics bool) *AnswerValidator {
	return &AnswerValidator{
		ignoreDiacritics: ignoreDiacritics,
		fold:             cases.Fold(),
	}
}

// Validate reports whether given matches expected after normalization.
func (v *AnswerValidator) Validate(given, expected string) bool {
	return v.normalize(given) == v.normalize(expected)
}

func (v *AnswerValidator) normalize(s string) string {
	s = v.fold.String(strings.TrimSpace(s))
	if !v.ignoreDiacritics {
		return norm.NFC.String(s)
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return norm.NFC.String(s)
	}
	return out
}

// CheckAnswer is a one-shot Validate.
func CheckAnswer(given, expected string, ignoreDiacritics bool) bool {
	return NewAnswerValidator(ignoreDiacritics).Validate(given, expected)
}
