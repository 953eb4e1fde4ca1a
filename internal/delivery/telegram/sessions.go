package telegram

import (
	"sync"

	"github.com/aliskhannn/mokykis/internal/domain/entities"
)

type reviewSession struct {
	exercises []entities.Exercise
	current   int
	correct   int
}

// reviewSessions keeps the running review per chat in memory. A restart
// drops them; the SRS state itself is persisted on every answer.
type reviewSessions struct {
	mu   sync.Mutex
	data map[int64]*reviewSession
}

func newReviewSessions() *reviewSessions {
	return &reviewSessions{data: make(map[int64]*reviewSession)}
}

func (s *reviewSessions) start(chatID int64, exercises []entities.Exercise) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[chatID] = &reviewSession{exercises: exercises}
}

// current returns the exercise waiting for an answer, its index and the
// session length.
func (s *reviewSessions) current(chatID int64) (entities.Exercise, int, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.data[chatID]
	if !ok || sess.current >= len(sess.exercises) {
		return entities.Exercise{}, 0, 0, false
	}
	return sess.exercises[sess.current], sess.current, len(sess.exercises), true
}

// advance records the answer to the current exercise. When it was the last
// one the session is removed and finished is true.
func (s *reviewSessions) advance(chatID int64, correct bool) (finished bool, right, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.data[chatID]
	if !ok {
		return true, 0, 0
	}
	if correct {
		sess.correct++
	}
	sess.current++

	if sess.current < len(sess.exercises) {
		return false, sess.correct, len(sess.exercises)
	}
	delete(s.data, chatID)
	return true, sess.correct, len(sess.exercises)
}
