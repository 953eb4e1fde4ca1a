package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aliskhannn/mokykis/internal/delivery/view"
	"github.com/aliskhannn/mokykis/internal/domain/entities"
	"github.com/aliskhannn/mokykis/internal/service"
)

// Grader checks one answer. *service.ReviewService implements it.
type Grader interface {
	SubmitAnswer(ctx context.Context, itemID, given, expected string) (service.ReviewResult, error)
}

// Summary counts the answers of an interactive review.
type Summary struct {
	Correct  int
	Answered int
	XP       int
}

// RunReview asks every exercise on out and reads answers from in, one per
// line. An answer is an option number or free text. An empty line or EOF
// ends the session early.
func RunReview(ctx context.Context, in io.Reader, out io.Writer, grader Grader, exercises []entities.Exercise) (Summary, error) {
	var sum Summary
	scanner := bufio.NewScanner(in)

	for i, ex := range exercises {
		fmt.Fprintf(out, "\n🔁 %d/%d %s\n", i+1, len(exercises), ex.Question)
		for n, opt := range ex.Options {
			fmt.Fprintf(out, "  %d) %s\n", n+1, opt)
		}
		fmt.Fprint(out, "> ")

		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}

		res, err := grader.SubmitAnswer(ctx, ex.ReviewWord, pickOption(line, ex.Options), ex.Answer)
		if err != nil {
			return sum, err
		}

		sum.Answered++
		sum.XP += res.Outcome.XPAwarded
		if res.Correct {
			sum.Correct++
			fmt.Fprintln(out, "✅ Correct!")
		} else {
			fmt.Fprintf(out, "❌ The answer is: %s\n", ex.Answer)
		}
		if rewards := view.Outcome(res.Outcome); rewards != "" {
			fmt.Fprintln(out, rewards)
		}
	}
	if err := scanner.Err(); err != nil {
		return sum, fmt.Errorf("read answer: %w", err)
	}

	fmt.Fprintf(out, "\n🏁 Review finished: %d/%d correct\n", sum.Correct, sum.Answered)
	return sum, nil
}

// pickOption maps "2" to the second option; anything else is the answer.
func pickOption(line string, options []string) string {
	if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(options) {
		return options[n-1]
	}
	return line
}
