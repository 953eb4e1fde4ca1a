package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aliskhannn/mokykis/internal/config"
	"github.com/aliskhannn/mokykis/internal/delivery/console"
	"github.com/aliskhannn/mokykis/internal/delivery/telegram"
	"github.com/aliskhannn/mokykis/internal/delivery/view"
	"github.com/aliskhannn/mokykis/internal/domain/entities"
	"github.com/aliskhannn/mokykis/internal/service"
)

type rootOptions struct {
	configDir string
	verbose   bool
	app       *app
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "mokykis",
		Short:         "Daily Lithuanian practice: XP, streaks, quests and spaced repetition",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configDir)
			if err != nil {
				return err
			}
			opts.app, err = newApp(cmd.Context(), cfg, opts.verbose)
			return err
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if opts.app == nil {
				return nil
			}
			return opts.app.Close()
		},
	}
	root.PersistentFlags().StringVar(&opts.configDir, "config", "./config", "directory holding config.yaml")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newStatusCmd(opts),
		newXPCmd(opts),
		newLessonsCmd(opts),
		newLessonCmd(opts),
		newLearnWordCmd(opts),
		newReviewCmd(opts),
		newAnswerCmd(opts),
		newQuestsCmd(opts),
		newAchievementsCmd(opts),
		newSentenceCmd(opts),
		newOnboardCmd(opts),
		newSettingsCmd(opts),
		newRemindCmd(opts),
		newBotCmd(opts),
	)
	return root
}

func printOutcome(cmd *cobra.Command, o service.Outcome) {
	if text := view.Outcome(o); text != "" {
		fmt.Fprintln(cmd.OutOrStdout(), text)
	}
}

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show streak, XP, daily goal and quests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			state, err := opts.app.progress.LoadState(ctx)
			if err != nil {
				return err
			}
			due, err := opts.app.progress.GetDueSrsItems(ctx)
			if err != nil {
				return err
			}
			daily, err := opts.app.quests.EnsureDailyQuests(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), view.Status(state, len(due)))
			fmt.Fprint(cmd.OutOrStdout(), view.Quests(daily))
			return nil
		},
	}
}

func newXPCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "xp <amount>",
		Short: "Award activity XP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.Atoi(args[0])
			if err != nil || amount < 0 {
				return fmt.Errorf("invalid XP amount %q", args[0])
			}
			_, outcome, err := opts.app.progress.AwardXP(cmd.Context(), amount)
			if err != nil {
				return err
			}
			printOutcome(cmd, outcome)
			return nil
		},
	}
}

func newLessonsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lessons",
		Short: "Show the lesson path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := opts.app.lessons.Path(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), view.Lessons(path))
			return nil
		},
	}
}

func newLessonCmd(opts *rootOptions) *cobra.Command {
	var (
		accuracy int
		failed   bool
		xp       int
	)
	cmd := &cobra.Command{
		Use:   "lesson <id>",
		Short: "Record a finished lesson",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid lesson id %q", args[0])
			}

			ctx := cmd.Context()
			_, outcome, err := opts.app.lessons.Complete(ctx, id, accuracy, !failed)
			if err != nil {
				return err
			}
			printOutcome(cmd, outcome)

			if !failed && xp > 0 {
				_, outcome, err = opts.app.progress.AwardXP(ctx, xp)
				if err != nil {
					return err
				}
				printOutcome(cmd, outcome)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&accuracy, "accuracy", 100, "lesson accuracy in percent")
	cmd.Flags().BoolVar(&failed, "failed", false, "the lesson was not passed")
	cmd.Flags().IntVar(&xp, "xp", 10, "lesson XP to award on a pass")
	return cmd
}

func newLearnWordCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "learn-word <word>...",
		Short: "Add words to the review schedule",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			for _, w := range args {
				if _, err := opts.app.progress.AddSrsItem(ctx, w, entities.KindWord); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "📖 %d word(s) scheduled for review\n", len(args))

			unlocked, err := opts.app.achievements.CheckAchievements(ctx)
			if err != nil {
				return err
			}
			printOutcome(cmd, service.Outcome{Unlocked: unlocked})
			return nil
		},
	}
}

func newReviewCmd(opts *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review due words interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			exercises, err := opts.app.review.GenerateReviewExercises(ctx, limit)
			if err != nil {
				return err
			}
			if len(exercises) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to review right now. 🌱")
				return nil
			}
			_, err = console.RunReview(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), opts.app.review, exercises)
			return err
		},
	}
	cmd.Flags().IntVar(&limit, "limit", service.DefaultReviewLimit, "maximum number of exercises")
	return cmd
}

func newAnswerCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "answer <item> <given> <expected>",
		Short: "Grade one answer for an SRS item",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := opts.app.review.SubmitAnswer(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}
			if res.Correct {
				fmt.Fprintln(cmd.OutOrStdout(), "✅ Correct!")
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "❌ The answer is: %s\n", args[2])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "next review: %s (box %d)\n", res.Item.DueAt.Format("2006-01-02 15:04"), res.Item.Box)
			printOutcome(cmd, res.Outcome)
			return nil
		},
	}
}

func newQuestsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "quests",
		Short: "Show today's quests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			daily, err := opts.app.quests.EnsureDailyQuests(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), view.Quests(daily))
			return nil
		},
	}
}

func newAchievementsCmd(opts *rootOptions) *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "achievements [id]",
		Short: "List achievements or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 1 {
				def, unlocked, err := opts.app.achievements.Describe(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), view.Achievement(def, unlocked))
				return nil
			}

			if check {
				unlocked, err := opts.app.achievements.CheckAchievements(ctx)
				if err != nil {
					return err
				}
				printOutcome(cmd, service.Outcome{Unlocked: unlocked})
			}

			unlocked, err := opts.app.achievements.Unlocked(ctx)
			if err != nil {
				return err
			}
			locked, err := opts.app.achievements.Locked(ctx)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), view.Achievements(unlocked, locked))
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "evaluate achievements before listing")
	return cmd
}

func newSentenceCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sentence",
		Short: "Sentence learning",
	}

	learn := &cobra.Command{
		Use:   "learn <id>",
		Short: "Mark a sentence as learned",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid sentence id %q", args[0])
			}
			_, outcome, err := opts.app.sentences.MarkLearned(cmd.Context(), id)
			if errors.Is(err, service.ErrDailySentenceLimit) {
				fmt.Fprintln(cmd.OutOrStdout(), "You have learned today's sentences. See you tomorrow!")
				return nil
			}
			if err != nil {
				return err
			}
			printOutcome(cmd, outcome)
			return nil
		},
	}

	review := &cobra.Command{
		Use:   "review <correct> <total>",
		Short: "Record a weekly sentence review",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			correct, err1 := strconv.Atoi(args[0])
			total, err2 := strconv.Atoi(args[1])
			if err := errors.Join(err1, err2); err != nil {
				return fmt.Errorf("invalid score: %w", err)
			}
			score, outcome, err := opts.app.sentences.CompleteReview(cmd.Context(), correct, total)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "📅 Weekly review: %d/%d (%d%%)\n", score.Correct, score.Total, score.Accuracy)
			printOutcome(cmd, outcome)
			return nil
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show sentence progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			left, err := opts.app.sentences.RemainingToday(ctx)
			if err != nil {
				return err
			}
			weekly, err := opts.app.sentences.NeedsWeeklyReview(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "📝 Sentences left today: %d/%d\n", left, service.DailySentenceLimit)
			if weekly {
				fmt.Fprintln(cmd.OutOrStdout(), "📅 Your weekly sentence review is due.")
			}
			return nil
		},
	}

	cmd.AddCommand(learn, review, status)
	return cmd
}

func newOnboardCmd(opts *rootOptions) *cobra.Command {
	var noNotifications bool
	cmd := &cobra.Command{
		Use:   "onboard <minutes>",
		Short: "Finish onboarding with a daily practice time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid minutes %q", args[0])
			}
			state, err := opts.app.settings.FinishOnboarding(cmd.Context(), minutes, !noNotifications)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "🎯 Daily goal set to %d XP\n", state.DailyGoalXP)
			return nil
		},
	}
	cmd.Flags().BoolVar(&noNotifications, "no-notifications", false, "disable daily reminders")
	return cmd
}

func newSettingsCmd(opts *rootOptions) *cobra.Command {
	var (
		goal          int
		reminder      string
		sound         bool
		notifications bool
		diacritics    bool
		autoFreeze    bool
	)
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			flags := cmd.Flags()

			if flags.Changed("goal") {
				if err := opts.app.settings.SetDailyGoal(ctx, goal); err != nil {
					return err
				}
			}

			changed := false
			for _, name := range []string{"reminder", "sound", "notifications", "ignore-diacritics", "auto-freeze"} {
				changed = changed || flags.Changed(name)
			}
			if changed {
				_, err := opts.app.settings.Update(ctx, func(s *entities.Settings) {
					if flags.Changed("reminder") {
						s.ReminderTime = strings.TrimSpace(reminder)
					}
					if flags.Changed("sound") {
						s.SoundEffects = sound
					}
					if flags.Changed("notifications") {
						s.NotificationsEnabled = notifications
					}
					if flags.Changed("ignore-diacritics") {
						s.IgnoreDiacritics = diacritics
					}
					if flags.Changed("auto-freeze") {
						s.AutoUseStreakFreeze = autoFreeze
					}
				})
				if err != nil {
					return err
				}
			}

			state, err := opts.app.progress.LoadState(ctx)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), view.Settings(state.Settings, state.DailyGoalXP))
			return nil
		},
	}
	cmd.Flags().IntVar(&goal, "goal", 0, "daily goal in XP")
	cmd.Flags().StringVar(&reminder, "reminder", "", "reminder time as HH:MM")
	cmd.Flags().BoolVar(&sound, "sound", true, "sound effects")
	cmd.Flags().BoolVar(&notifications, "notifications", true, "daily reminders")
	cmd.Flags().BoolVar(&diacritics, "ignore-diacritics", false, "accept answers without diacritics")
	cmd.Flags().BoolVar(&autoFreeze, "auto-freeze", false, "spend XP to cover missed days")
	return cmd
}

func newRemindCmd(opts *rootOptions) *cobra.Command {
	var once bool
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Run the daily reminder scheduler",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reminders := opts.app.reminders
			reminders.SetNotifier(console.NewNotifier(cmd.OutOrStdout()))

			if once {
				sent, err := reminders.SendIfDue(cmd.Context())
				if err != nil {
					return err
				}
				if !sent {
					fmt.Fprintln(cmd.OutOrStdout(), "No reminder due.")
				}
				return nil
			}
			return reminders.Start(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&once, "once", false, "check once instead of scheduling")
	return cmd
}

func newBotCmd(opts *rootOptions) *cobra.Command {
	var debug bool
	cmd := &cobra.Command{
		Use:   "bot",
		Short: "Serve the learner over Telegram with daily reminders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := opts.app
			if err := a.cfg.RequireTelegram(); err != nil {
				return err
			}

			bot, err := tgbotapi.NewBotAPI(a.cfg.Telegram.APIToken)
			if err != nil {
				return fmt.Errorf("connect telegram: %w", err)
			}
			bot.Debug = debug
			a.log.Info("authorized on telegram", zap.String("account", bot.Self.UserName))

			if _, err := bot.Request(tgbotapi.NewSetMyCommands(telegram.BotCommands()...)); err != nil {
				a.log.Warn("failed to set bot commands", zap.Error(err))
			}

			chatID := a.cfg.Telegram.ChatID
			a.reminders.SetNotifier(telegram.NewNotifier(bot, chatID))

			ctx := cmd.Context()
			errCh := make(chan error, 1)
			go func() {
				err := a.reminders.Start(ctx)
				if err != nil {
					a.log.Error("reminder scheduler failed", zap.Error(err))
				}
				errCh <- err
			}()

			handler := telegram.NewHandler(bot, chatID, a.log.Named("telegram"),
				a.progress, a.quests, a.achievements, a.review, a.sentences, a.settings)
			err = handler.Run(ctx)
			if errors.Is(err, ctx.Err()) {
				err = nil
			}
			return errors.Join(err, <-errCh)
		},
	}
	cmd.Flags().BoolVar(&debug, "debug", false, "log Telegram API traffic")
	return cmd
}
