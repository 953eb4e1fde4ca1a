package main

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/mokykis/internal/service"
)

type cli struct {
	t   *testing.T
	dir string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("APP_ENV", "test")
	t.Setenv("STORAGE_DRIVER", "file")
	t.Setenv("DATA_DIR", dir)
	t.Setenv("MOKYKIS_TIMEZONE", "UTC")
	t.Setenv("CONTENT_LESSONS_PATH", "../../assets/lessons.json")
	return &cli{t: t, dir: dir}
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", c.dir}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, out)
	return out
}

func TestCLI_XPAndStatus(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("xp", "25")
	assert.Contains(t, out, "⭐ +35 XP")
	assert.Contains(t, out, "Quest completed: Earn XP")

	out = c.mustRun("status")
	assert.Contains(t, out, "XP: 35 total, 35 today")
	assert.Contains(t, out, "Streak: 1 day")
	assert.Contains(t, out, "✅ Earn XP 20/20")
}

func TestCLI_Settings(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("settings", "--reminder", "08:30", "--ignore-diacritics", "--goal", "30")
	assert.Contains(t, out, "Reminders: On at 08:30")
	assert.Contains(t, out, "Ignore diacritics: On")
	assert.Contains(t, out, "Daily goal: 30 XP")

	_, err := c.run("settings", "--reminder", "7pm")
	assert.Error(t, err)

	out = c.mustRun("settings")
	assert.Contains(t, out, "Reminders: On at 08:30")
}

func TestCLI_Onboard(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("onboard", "15", "--no-notifications")
	assert.Contains(t, out, "Daily goal set to 75 XP")

	out = c.mustRun("remind", "--once")
	assert.Contains(t, out, "No reminder due.")
}

func TestCLI_RemindOnce(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("remind", "--once")
	assert.Contains(t, out, "Start a new streak today")
	assert.Contains(t, out, "Goal: 0/50 XP")
}

func TestCLI_ReviewAndSentences(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("review")
	assert.Contains(t, out, "Nothing to review")

	c.mustRun("learn-word", "labas")
	out = c.mustRun("answer", "labas", "hello", "hello")
	assert.Contains(t, out, "✅ Correct!")
	assert.Contains(t, out, "(box 2)")

	out = c.mustRun("sentence", "learn", "3")
	assert.Contains(t, out, "⭐ +5 XP")

	out = c.mustRun("sentence", "status")
	assert.Contains(t, out, "Sentences left today: 9/10")
}

func TestCLI_UnknownDriver(t *testing.T) {
	c := newCLI(t)
	t.Setenv("STORAGE_DRIVER", "tape")

	_, err := c.run("status")
	assert.Error(t, err)
}

func TestCLI_LessonPath(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("lessons")
	assert.Contains(t, out, "🔓 1. Greetings")
	assert.Contains(t, out, "🔒 2. Numbers")
	assert.Contains(t, out, "🔒 3. At Home")

	_, err := c.run("lesson", "3")
	assert.ErrorIs(t, err, service.ErrLessonLocked)

	_, err = c.run("lesson", "42")
	assert.ErrorIs(t, err, service.ErrUnknownLesson)

	out = c.mustRun("lesson", "1")
	assert.Contains(t, out, "Achievement unlocked: First Steps")

	out = c.mustRun("lessons")
	assert.Contains(t, out, "✅ 1. Greetings")
	assert.Contains(t, out, "🔓 2. Numbers")
	assert.Contains(t, out, "🔒 3. At Home")
}

func TestCLI_LearnWordsUnlocksVocabularyAchievement(t *testing.T) {
	c := newCLI(t)

	words := make([]string, 0, 30)
	for i := range 30 {
		words = append(words, fmt.Sprintf("zodis%d", i))
	}

	out := c.mustRun(append([]string{"learn-word"}, words...)...)
	assert.Contains(t, out, "30 word(s) scheduled")
	assert.Contains(t, out, "Achievement unlocked: Vocabulary Builder (+30 XP)")

	out = c.mustRun("achievements", "thirty-words")
	assert.Contains(t, out, "✅ Unlocked")

	_, err := c.run("achievements", "nope")
	assert.ErrorIs(t, err, service.ErrUnknownAchievement)
}
