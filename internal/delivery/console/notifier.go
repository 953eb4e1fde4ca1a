// Package console delivers engine output to a terminal.
package console

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/aliskhannn/mokykis/internal/delivery/view"
	"github.com/aliskhannn/mokykis/internal/domain/entities"
)

// Notifier prints reminders to w.
type Notifier struct {
	mu sync.Mutex
	w  io.Writer
}

func NewNotifier(w io.Writer) *Notifier {
	return &Notifier{w: w}
}

func (n *Notifier) SendReminder(_ context.Context, p entities.ReminderPayload) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, err := fmt.Fprintln(n.w, view.Reminder(p)); err != nil {
		return fmt.Errorf("write reminder: %w", err)
	}
	return nil
}
