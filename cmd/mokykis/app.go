package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/mokykis/internal/config"
	"github.com/aliskhannn/mokykis/internal/domain/achievement"
	"github.com/aliskhannn/mokykis/internal/domain/entities"
	"github.com/aliskhannn/mokykis/internal/infra/file"
	"github.com/aliskhannn/mokykis/internal/infra/postgres"
	"github.com/aliskhannn/mokykis/internal/infra/redis"
	"github.com/aliskhannn/mokykis/internal/infra/sqlite"
	"github.com/aliskhannn/mokykis/internal/logger"
	"github.com/aliskhannn/mokykis/internal/migration"
	"github.com/aliskhannn/mokykis/internal/repository"
	"github.com/aliskhannn/mokykis/internal/service"
	"github.com/aliskhannn/mokykis/internal/storage"
)

// app wires the services for one command run.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	loc     *time.Location
	closers []func() error

	progress     *service.ProgressService
	quests       *service.QuestService
	achievements *service.AchievementService
	lessons      *service.LessonService
	review       *service.ReviewService
	sentences    *service.SentenceService
	settings     *service.SettingsService
	reminders    *service.ReminderService
}

func newApp(ctx context.Context, cfg *config.Config, verbose bool) (*app, error) {
	log, err := logger.New(cfg, verbose)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	loc, err := entities.ParseTimezoneLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log, loc: loc}

	store, err := a.openStore(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	catalog, err := achievement.DefaultCatalog()
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("load achievements: %w", err)
	}

	repo := repository.NewStateRepository(store, cfg.Storage.Key, migration.New(log.Named("migration")))
	content := repository.NewContentRepository(cfg.ContentLessonsPath, log)

	// Quests subscribe before achievements so quest progress is settled
	// when conditions are evaluated.
	a.progress = service.NewProgressService(repo, service.ClockIn(loc), log.Named("progress"))
	a.quests = service.NewQuestService(a.progress, log.Named("quests"))
	a.achievements = service.NewAchievementService(a.progress, catalog, log.Named("achievements"))
	a.lessons = service.NewLessonService(a.progress, content, log.Named("lessons"))
	a.review = service.NewReviewService(a.progress, content, nil, log.Named("review"))
	a.sentences = service.NewSentenceService(a.progress, log.Named("sentences"))
	a.settings = service.NewSettingsService(a.progress)
	a.reminders = service.NewReminderService(a.progress, storage.NewReminderLog(), loc, log.Named("reminders"))

	log.Debug("app initialized",
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("timezone", loc.String()),
		zap.Int("lessons", len(content.GetAll())),
	)
	return a, nil
}

func (a *app) openStore(ctx context.Context) (storage.BlobStore, error) {
	switch a.cfg.Storage.Driver {
	case config.DriverFile:
		return file.NewStore(a.cfg.Storage.DataDir)

	case config.DriverSQLite:
		st, err := sqlite.Open(ctx, a.cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, st.Close)
		return st, nil

	case config.DriverPostgres:
		dsn, err := a.cfg.DB.DSN()
		if err != nil {
			return nil, err
		}
		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(a.cfg.DB.MaxConnections),
			MaxConnLifetime: a.cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.closers = append(a.closers, func() error { pool.Close(); return nil })
		return postgres.NewStateStore(ctx, pool)

	case config.DriverRedis:
		st, err := redis.NewStore(ctx, redis.Config{
			Addr:      a.cfg.Redis.Addr,
			Password:  a.cfg.Redis.Password,
			DB:        a.cfg.Redis.DB,
			KeyPrefix: a.cfg.Redis.KeyPrefix,
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, st.Close)
		return st, nil

	case config.DriverMemory:
		return storage.NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("%w: %q", config.ErrUnknownStorageDriver, a.cfg.Storage.Driver)
}

// Close releases storage connections in reverse order.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	_ = a.log.Sync()
	return errors.Join(errs...)
}
