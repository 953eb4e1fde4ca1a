package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/mokykis/internal/domain/achievement"
	"github.com/aliskhannn/mokykis/internal/domain/entities"
	"github.com/aliskhannn/mokykis/internal/service"
)

// Bot is the part of *tgbotapi.BotAPI the handler uses.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type ProgressService interface {
	LoadState(ctx context.Context) (*entities.UserState, error)
	GetDueSrsItems(ctx context.Context) ([]entities.SrsItem, error)
}

type QuestService interface {
	EnsureDailyQuests(ctx context.Context) (entities.DailyQuests, error)
}

type AchievementService interface {
	Unlocked(ctx context.Context) ([]achievement.Definition, error)
	Locked(ctx context.Context) ([]achievement.Definition, error)
}

type ReviewService interface {
	GenerateReviewExercises(ctx context.Context, limit int) ([]entities.Exercise, error)
	SubmitAnswer(ctx context.Context, itemID, given, expected string) (service.ReviewResult, error)
}

type SentenceService interface {
	RemainingToday(ctx context.Context) (int, error)
	NeedsWeeklyReview(ctx context.Context) (bool, error)
}

type SettingsService interface {
	Get(ctx context.Context) (entities.Settings, error)
	Update(ctx context.Context, fn func(*entities.Settings)) (entities.Settings, error)
	FinishOnboarding(ctx context.Context, minutes int, notifications bool) (*entities.UserState, error)
}
