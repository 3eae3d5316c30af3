package reminder

import (
	"context"
	"log/slog"
)

// LogNotifier writes reminder messages to the structured log. It is the
// default delivery channel when no chat integration is configured.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier that logs messages at info level.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Send(_ context.Context, message string) error {
	n.logger.Info("reminder", slog.String("message", message))
	return nil
}
