package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/mokykis/internal/domain/entities"
	"github.com/aliskhannn/mokykis/internal/service"
)

type fakeGrader struct {
	given []string
}

func (g *fakeGrader) SubmitAnswer(_ context.Context, _, given, expected string) (service.ReviewResult, error) {
	g.given = append(g.given, given)
	res := service.ReviewResult{Correct: strings.EqualFold(given, expected)}
	if res.Correct {
		res.Outcome.XPAwarded = 2
	}
	return res, nil
}

var exercises = []entities.Exercise{
	{Question: "What does 'labas' mean?", Answer: "hello", Options: []string{"bye", "hello"}, ReviewWord: "labas"},
	{Question: "What does 'namas' mean?", Answer: "house", Options: []string{"house", "car"}, ReviewWord: "namas"},
	{Question: "What does 'taip' mean?", Answer: "yes", Options: []string{"no", "yes"}, ReviewWord: "taip"},
}

func TestRunReview(t *testing.T) {
	var out bytes.Buffer
	grader := &fakeGrader{}

	sum, err := RunReview(context.Background(), strings.NewReader("2\nHouse\n1\n"), &out, grader, exercises)
	require.NoError(t, err)

	assert.Equal(t, Summary{Correct: 2, Answered: 3, XP: 4}, sum)
	assert.Equal(t, []string{"hello", "House", "no"}, grader.given)
	assert.Contains(t, out.String(), "❌ The answer is: yes")
	assert.Contains(t, out.String(), "Review finished: 2/3 correct")
}

func TestRunReview_StopsOnEmptyLine(t *testing.T) {
	var out bytes.Buffer
	grader := &fakeGrader{}

	sum, err := RunReview(context.Background(), strings.NewReader("2\n\n"), &out, grader, exercises)
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Answered)
	assert.Len(t, grader.given, 1)
}

func TestPickOption(t *testing.T) {
	opts := []string{"a", "b"}
	assert.Equal(t, "b", pickOption("2", opts))
	assert.Equal(t, "3", pickOption("3", opts))
	assert.Equal(t, "labas", pickOption("labas", opts))
}

func TestNotifier(t *testing.T) {
	var out bytes.Buffer
	n := NewNotifier(&out)

	require.NoError(t, n.SendReminder(context.Background(), entities.ReminderPayload{DueCount: 2, DailyGoalXP: 50}))

	assert.Contains(t, out.String(), "2 words are waiting")
}
