package entities

// Lesson is static lesson content loaded from JSON. The engine only reads
// the vocabulary, for review exercises.
type Lesson struct {
	ID         int               `json:"id"`
	Title      string            `json:"title"`
	TitleLT    string            `json:"titleLT"`
	XP         int               `json:"xp"`
	Difficulty string            `json:"difficulty"`
	Vocabulary []VocabularyEntry `json:"vocabulary"`
}

// VocabularyEntry is one word of lesson vocabulary.
type VocabularyEntry struct {
	Lithuanian    string `json:"lithuanian"`
	English       string `json:"english"`
	Type          string `json:"type"` // greeting, noun, verb, ...
	Pronunciation string `json:"pronunciation,omitempty"`
}

// Exercise is a multiple choice review question.
type Exercise struct {
	Type       string   `json:"type"`
	Question   string   `json:"question"`
	Answer     string   `json:"answer"`
	Options    []string `json:"options"`
	ReviewWord string   `json:"reviewWord"` // SRS item id the exercise reviews
}

// FindWord returns the vocabulary entry whose Lithuanian text is word.
func FindWord(lessons []Lesson, word string) (VocabularyEntry, bool) {
	for _, l := range lessons {
		for _, v := range l.Vocabulary {
			if v.Lithuanian == word {
				return v, true
			}
		}
	}
	return VocabularyEntry{}, false
}
