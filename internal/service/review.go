package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/aliskhannn/mokykis/internal/domain/entities"
	"github.com/aliskhannn/mokykis/internal/domain/practice"
	"github.com/aliskhannn/mokykis/internal/domain/srs"
)

// DefaultReviewLimit caps a review session.
const DefaultReviewLimit = 10

// ReviewResult is the outcome of one answered review exercise.
type ReviewResult struct {
	Correct bool
	Item    entities.SrsItem
	Outcome Outcome
}

// ReviewService turns due vocabulary into exercises and grades answers.
type ReviewService struct {
	progress *ProgressService
	content  ContentRepository
	rng      practice.Shuffler
	logger   *zap.Logger
}

// NewReviewService creates the service. A nil rng uses the global source.
func NewReviewService(progress *ProgressService, content ContentRepository, rng practice.Shuffler, logger *zap.Logger) *ReviewService {
	return &ReviewService{progress: progress, content: content, rng: rng, logger: logger}
}

// DueWords returns due word items, most urgent first. limit <= 0 means all.
func (s *ReviewService) DueWords(ctx context.Context, limit int) ([]entities.SrsItem, error) {
	due, err := s.progress.GetDueSrsItems(ctx)
	if err != nil {
		return nil, err
	}

	words := make([]entities.SrsItem, 0, len(due))
	for _, it := range due {
		if it.Kind == entities.KindWord {
			words = append(words, it)
		}
	}
	return srs.Limit(words, limit), nil
}

// GenerateReviewExercises builds translation exercises for due words found
// in the lesson content.
func (s *ReviewService) GenerateReviewExercises(ctx context.Context, limit int) ([]entities.Exercise, error) {
	if limit <= 0 {
		limit = DefaultReviewLimit
	}

	due, err := s.DueWords(ctx, limit)
	if err != nil {
		return nil, err
	}

	exercises := make([]entities.Exercise, 0, len(due))
	lessons := s.content.GetAll()
	if len(lessons) == 0 {
		if len(due) > 0 {
			s.logger.Warn("no lesson content, skipping review exercises", zap.Int("due", len(due)))
		}
		return exercises, nil
	}

	gen := practice.NewOptionGenerator(lessons, s.rng)
	for _, it := range due {
		word, ok := s.content.FindWord(it.ID)
		if !ok {
			s.logger.Debug("due word missing from content", zap.String("item_id", it.ID))
			continue
		}
		exercises = append(exercises, gen.TranslationExercise(word, it.ID))
	}
	return exercises, nil
}

// SubmitAnswer grades the answer with the user's diacritics setting, updates
// the item and counts the review toward quests.
func (s *ReviewService) SubmitAnswer(ctx context.Context, itemID, given, expected string) (ReviewResult, error) {
	var res ReviewResult
	_, outcome, err := s.progress.Mutate(ctx, func(u *Update) error {
		res.Correct = practice.CheckAnswer(given, expected, u.State().Settings.IgnoreDiacritics)
		res.Item = u.ReviewItem(itemID, res.Correct)
		u.Emit(Event{Type: entities.QuestReview, Amount: 1, Source: SourceActivity})
		return nil
	})
	if err != nil {
		return ReviewResult{}, err
	}
	res.Outcome = outcome
	return res, nil
}
