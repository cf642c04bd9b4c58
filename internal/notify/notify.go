// Package notify is the outbound channel stores use to surface outcomes to
// whatever presentation layer is attached. Stores call it on every mutating
// operation; they never hold notification state themselves.
package notify

import "jobhub_backend/internal/logger"

type Severity string

const (
	SeverityNormal Severity = "normal"
	SeverityError  Severity = "error"
)

// Notification is a user-facing message.
type Notification struct {
	Title       string
	Description string
	Severity    Severity
}

// Notifier receives store notifications.
type Notifier interface {
	Notify(n Notification)
}

// LogNotifier writes notifications to the application log. It is the default
// sink when no presentation layer is wired in.
type LogNotifier struct{}

func (LogNotifier) Notify(n Notification) {
	if n.Severity == SeverityError {
		logger.Warn("notification", "title", n.Title, "description", n.Description)
		return
	}
	logger.Info("notification", "title", n.Title, "description", n.Description)
}

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) Notify(Notification) {}
