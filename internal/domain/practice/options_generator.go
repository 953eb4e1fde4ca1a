package practice

import (
	"fmt"
	"math/rand"

	"github.com/aliskhannn/mokykis/internal/domain/entities"
)

const distractorCount = 3

// fallbackDistractors is used when the lessons hold too few words of a type.
var fallbackDistractors = map[string][]string{
	"greeting":  {"goodbye", "please", "thank you", "sorry"},
	"phrase":    {"hello", "goodbye", "yes", "no"},
	"number":    {"one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten"},
	"noun":      {"house", "car", "book", "table", "chair", "friend", "dog", "cat"},
	"verb":      {"to eat", "to drink", "to go", "to see", "to speak", "to live"},
	"adjective": {"red", "blue", "green", "yellow", "white", "black", "big", "small"},
	"word":      {"yes", "no", "good", "bad", "big", "small"},
}

// Shuffler is satisfied by *rand.Rand.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// OptionGenerator produces multiple choice options from lesson vocabulary.
type OptionGenerator struct {
	lessons []entities.Lesson
	rng     Shuffler
}

// NewOptionGenerator creates a generator. A nil rng uses the global source.
func NewOptionGenerator(lessons []entities.Lesson, rng Shuffler) *OptionGenerator {
	return &OptionGenerator{lessons: lessons, rng: rng}
}

func (g *OptionGenerator) shuffle(s []string) {
	swap := func(i, j int) { s[i], s[j] = s[j], s[i] }
	if g.rng == nil {
		rand.Shuffle(len(s), swap)
		return
	}
	g.rng.Shuffle(len(s), swap)
}

// Options returns the correct answer plus up to three distractors of the
// same word type, shuffled.
func (g *OptionGenerator) Options(correct, wordType string) []string {
	similar := make([]string, 0)
	seen := map[string]bool{correct: true}
	for _, l := range g.lessons {
		for _, v := range l.Vocabulary {
			if v.Type != wordType || seen[v.English] {
				continue
			}
			seen[v.English] = true
			similar = append(similar, v.English)
		}
	}

	var wrong []string
	if len(similar) >= distractorCount {
		g.shuffle(similar)
		wrong = similar[:distractorCount]
	} else {
		pool, ok := fallbackDistractors[wordType]
		if !ok {
			pool = fallbackDistractors["word"]
		}
		for _, d := range pool {
			if len(wrong) == distractorCount {
				break
			}
			if d != correct {
				wrong = append(wrong, d)
			}
		}
	}

	options := append([]string{correct}, wrong...)
	g.shuffle(options)
	return options
}

// TranslationExercise builds the "what does X mean" question for a word.
func (g *OptionGenerator) TranslationExercise(word entities.VocabularyEntry, itemID string) entities.Exercise {
	return entities.Exercise{
		Type:       "translation",
		Question:   fmt.Sprintf("What does '%s' mean?", word.Lithuanian),
		Answer:     word.English,
		Options:    g.Options(word.English, word.Type),
		ReviewWord: itemID,
	}
}

// Distractors is a one-shot Options.
func Distractors(correct, wordType string, lessons []entities.Lesson, rng Shuffler) []string {
	return NewOptionGenerator(lessons, rng).Options(correct, wordType)
}
