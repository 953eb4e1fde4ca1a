package repository

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/aliskhannn/mokykis/internal/domain/entities"
)

// ContentRepository serves static lesson content.
type ContentRepository struct {
	lessons []entities.Lesson
}

// NewContentRepository loads lessons from a JSON file. A missing or broken
// file is logged and results in an empty catalog.
func NewContentRepository(path string, log *zap.Logger) *ContentRepository {
	lessons, err := loadLessons(path)
	if err != nil {
		log.Warn("lesson content unavailable", zap.String("path", path), zap.Error(err))
		lessons = []entities.Lesson{}
	}
	return &ContentRepository{lessons: lessons}
}

// NewContentRepositoryFrom wraps already loaded lessons.
func NewContentRepositoryFrom(lessons []entities.Lesson) *ContentRepository {
	return &ContentRepository{lessons: lessons}
}

func (r *ContentRepository) GetAll() []entities.Lesson {
	return r.lessons
}

// GetByID returns the lesson with id.
func (r *ContentRepository) GetByID(id int) (entities.Lesson, bool) {
	for _, l := range r.lessons {
		if l.ID == id {
			return l, true
		}
	}
	return entities.Lesson{}, false
}

func (r *ContentRepository) FindWord(word string) (entities.VocabularyEntry, bool) {
	return entities.FindWord(r.lessons, word)
}

func loadLessons(path string) ([]entities.Lesson, error) {
	if path == "" {
		return nil, fmt.Errorf("no content path configured")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		Lessons []entities.Lesson `json:"lessons"`
	}
	if err = json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lessons JSON: %w", err)
	}

	return wrapper.Lessons, nil
}
