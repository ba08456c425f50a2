package studio

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a transient user-facing message. Notifications report
// external failures and capability degradation; they never block and never
// substitute for an error return.
type Notification struct {
	ID       string
	Title    string
	Message  string
	Duration time.Duration
	Action   string // optional action label, e.g. "Retry"
	Time     time.Time
}

// defaultNotificationDuration is how long a toast lingers when the caller
// does not say otherwise.
const defaultNotificationDuration = 5 * time.Second

// notifier collects notifications for the session and optionally forwards
// them to a sink.
type notifier struct {
	pending []Notification
	sink    func(Notification)
}

func (n *notifier) push(title, message, action string) Notification {
	note := Notification{
		ID:       uuid.NewString(),
		Title:    title,
		Message:  message,
		Duration: defaultNotificationDuration,
		Action:   action,
		Time:     time.Now(),
	}
	n.pending = append(n.pending, note)
	if n.sink != nil {
		n.sink(note)
	}
	return note
}

// drain returns the pending notifications and clears the queue.
func (n *notifier) drain() []Notification {
	out := n.pending
	n.pending = nil
	return out
}
